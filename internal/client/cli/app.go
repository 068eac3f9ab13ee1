package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sosens/sosens/internal/buildinfo"
	"github.com/sosens/sosens/internal/client/client"
	"github.com/sosens/sosens/internal/client/config"
	"github.com/sosens/sosens/internal/client/gateway"
	"github.com/sosens/sosens/internal/client/output"
	"github.com/sosens/sosens/internal/client/services"
	"github.com/sosens/sosens/internal/client/session"
	"github.com/sosens/sosens/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 5 * time.Second

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	session       *session.Store
	authService   services.AuthService
	farmerService services.FarmerService
	adminService  services.AdminService
	fence         *gateway.Fence
	printer       *output.Printer
	reader        *bufio.Reader

	mu   sync.RWMutex
	mode Mode
}

// NewApp wires the session database, gateway, API client and services
// described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("init session database: %w", err)
	}

	store := session.NewStore(db, nil, logger)
	gw := gateway.New(c.BaseURL, store,
		gateway.WithTimeout(c.RequestTimeout),
		gateway.WithLogger(logger),
		gateway.WithUserAgent("sosens-cli/"+buildinfo.Version),
	)
	api := client.NewHTTPClient(gw)
	store.SetFetcher(api)

	printer := output.NewPrinter(os.Stdout, os.Stderr, output.ColorsEnabled())
	return newApp(c, logger, db, store, api, printer, bufio.NewReader(os.Stdin)), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, store *session.Store, api client.Client, printer *output.Printer, reader *bufio.Reader) *App {
	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		session:       store,
		authService:   services.NewAuthService(api, store, logger),
		farmerService: services.NewFarmerService(api, logger),
		adminService:  services.NewAdminService(api, logger),
		fence:         gateway.NewFence(),
		printer:       printer,
		reader:        reader,
	}
}

// Run starts the REPL and blocks until the user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	a.Root(ctx)
	return nil
}

// Close cancels in-flight calls and closes the session database.
func (a *App) Close() error {
	a.fence.CancelAll()
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	prev := a.mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
		if prev != ModeUnknown && mode == ModeOffline {
			a.printer.Warning("Backend unreachable, switched to offline mode")
		}
		if prev == ModeOffline && mode == ModeOnline {
			a.printer.Info("Backend reachable again")
		}
	}
}

// healthScope is the fence key shared by the health command and the
// background check.
const healthScope = "health"

// checkOnline pings the backend unless a health command is already in
// flight. A check superseded by such a command leaves the mode alone.
func (a *App) checkOnline(ctx context.Context) {
	sctx, release, ok := a.fence.TryBegin(ctx, healthScope)
	if !ok {
		return
	}
	defer release()

	pctx, cancel := context.WithTimeout(sctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if sctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done and keeps Mode up to date.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
