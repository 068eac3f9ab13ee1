package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus(ctx context.Context) string {
	var parts []string
	if u := a.session.CurrentUser(ctx); u != nil {
		parts = append(parts, firstName(u.FullName), string(u.Role))
	}
	if m := a.Mode(); m != ModeUnknown {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s) ", strings.Join(parts, " "))
}

func firstName(full string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(full), " ")
	return name
}

// Root reconciles the cached session with the backend, starts the
// connectivity watcher and runs the REPL until the user leaves.
func (a *App) Root(ctx context.Context) {
	a.printer.Info("Welcome to SOSENS crop advisor (type 'help' for commands)")
	a.printer.Info("%s", a.printer.Dim("Backend: "+a.config.BaseURL))

	hadSession := a.session.CurrentToken(ctx) != ""
	if hadSession {
		a.printer.Info("Checking your saved session...")
	}

	rctx, release := a.scope(ctx, "refresh")
	user, err := a.authService.Refresh(rctx)
	release()

	switch {
	case err != nil:
		a.report(err)
	case user != nil:
		a.printer.Success("Welcome back, %s", user.FullName)
	case hadSession:
		a.printer.Warning("Your session has ended, please log in again")
	}

	watchCtx, stopWatcher := context.WithCancel(ctx)
	defer stopWatcher()

	go func() {
		a.checkOnline(watchCtx)
		a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)
	}()

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsAuthenticated(ctx)
}

func (a *App) isAdmin(ctx context.Context) bool {
	return a.authService.CurrentUser(ctx).IsAdmin()
}

func (a *App) scope(ctx context.Context, key string) (context.Context, func()) {
	return a.fence.Begin(ctx, key)
}

func (a *App) report(err error) {
	msg, hint := describe(err)
	a.printer.Error("%s", msg)
	if hint != "" {
		a.printer.Info("%s", a.printer.Dim("  hint: "+hint))
	}
	a.logger.Debug(context.Background(), "command failed", "error", err)
}
