package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for REPL-level output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	isAdmin(ctx context.Context) bool
	scope(ctx context.Context, key string) (context.Context, func())
	report(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Preferences(ctx context.Context) error
	Health(ctx context.Context) error

	Predict(ctx context.Context) error
	Weather(ctx context.Context) error
	Readings(ctx context.Context) error
	AddReading(ctx context.Context) error
	Recommendations(ctx context.Context) error
	Dashboard(ctx context.Context) error

	AdminDashboard(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Broadcast(ctx context.Context) error
	SendWeather(ctx context.Context) error
	SendPredictions(ctx context.Context) error
	Logs(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, login, forgot, reset, health, help, exit"
	helpFarmer    = "Available commands: dashboard, predict, addreading, readings, recommendations, weather, prefs, whoami, refresh, health, logout, help, exit"
	helpAdmin     = "Available commands: admin, users [role] [district], broadcast, sendweather, sendpredictions, logs [skip] [limit], whoami, refresh, prefs, health, logout, help, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit"/"quit" or cancellation of ctx.
//
// Every command runs in its own fence scope keyed by the command name and
// derived from ctx, so leaving the REPL cancels whatever is still in
// flight. Errors are reported to the user and never stop the loop.
//
// Commands that need an account are refused while logged out, and the
// admin set is refused for non-administrators before any call is made.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(fmt.Sprintf("sosens %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		run := func(fn func(context.Context) error) {
			sctx, release := a.scope(ctx, cmd)
			defer release()
			if err := fn(sctx); err != nil {
				a.report(err)
			}
		}
		authed := func(fn func(context.Context) error) {
			if !a.isLoggedIn(ctx) {
				a.report(errNotLoggedIn)
				return
			}
			run(fn)
		}
		admin := func(fn func(context.Context) error) {
			if !a.isLoggedIn(ctx) {
				a.report(errNotLoggedIn)
				return
			}
			if !a.isAdmin(ctx) {
				a.report(errAdminOnly)
				return
			}
			run(fn)
		}

		switch cmd {
		case "help":
			switch {
			case a.isAdmin(ctx):
				printlnFn(helpAdmin)
			case a.isLoggedIn(ctx):
				printlnFn(helpFarmer)
			default:
				printlnFn(helpAnonymous)
			}

		case "register":
			run(a.Register)
		case "login":
			run(a.Login)
		case "forgot":
			run(a.ForgotPassword)
		case "reset":
			run(a.ResetPassword)
		case "health":
			run(a.Health)

		case "logout":
			authed(a.Logout)
		case "whoami":
			authed(a.Whoami)
		case "refresh":
			authed(a.Refresh)
		case "prefs":
			authed(a.Preferences)
		case "predict":
			authed(a.Predict)
		case "weather":
			authed(a.Weather)
		case "readings":
			authed(a.Readings)
		case "addreading":
			authed(a.AddReading)
		case "recommendations", "recs":
			authed(a.Recommendations)
		case "dashboard":
			authed(a.Dashboard)

		case "admin":
			admin(a.AdminDashboard)
		case "users":
			admin(func(ctx context.Context) error { return a.Users(ctx, args) })
		case "broadcast":
			admin(a.Broadcast)
		case "sendweather":
			admin(a.SendWeather)
		case "sendpredictions":
			admin(a.SendPredictions)
		case "logs":
			admin(func(ctx context.Context) error { return a.Logs(ctx, args) })

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd, "(type 'help' for commands)")
		}
	}
}
