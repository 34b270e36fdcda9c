// Package server wires configuration, storage, schema bootstrap and the HTTP
// listener together and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/entrycounter/internal/common"
	"github.com/dmitrijs2005/entrycounter/internal/logging"
	"github.com/dmitrijs2005/entrycounter/internal/server/bootstrap"
	"github.com/dmitrijs2005/entrycounter/internal/server/config"
	"github.com/dmitrijs2005/entrycounter/internal/server/httpapi"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/entries"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/entrycounter/internal/server/services"
	"github.com/dmitrijs2005/entrycounter/internal/server/shared/db"
)

const bootstrapTimeout = 30 * time.Second

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config       *config.Config
	logger       logging.Logger
	bootstrapper runner
	server       runner
	closer       io.Closer
}

// NewApp wires the components without touching the database. Storage
// problems, a malformed descriptor included, surface later through bootstrap
// and the request handlers.
func NewApp(c *config.Config) *App {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	logStartupLevels(context.Background(), logger)

	repos := repomanager.NewPostgresRepositoryManager()

	pm := db.NewPostgresManager(c.DB, repos)

	table := bootstrap.Table{Name: common.EntriesTable, Columns: entries.Columns}
	bs := bootstrap.New(pm.Conn(), pm, repos, table, logger)

	es := services.NewEntryService(pm.Conn(), repos)
	srv := httpapi.NewHTTPServer(c, logger, es)

	return &App{config: c, logger: logger, bootstrapper: bs, server: srv, closer: pm}
}

// logStartupLevels emits one line per severity so operators can see which
// levels the configured sink lets through.
func logStartupLevels(ctx context.Context, l logging.Logger) {
	l.Trace(ctx, "This is a trace message")
	l.Debug(ctx, "This is a debug message")
	l.Info(ctx, "This is an info message")
	l.Warn(ctx, "This is a warning message")
	l.Error(ctx, "This is an error message")
	l.Critical(ctx, "This is a critical message")
}

// bootstrap prepares the schema. A failure is logged and swallowed unless
// the configuration asks for strict mode; in that case it is returned and the
// listener never starts.
func (app *App) bootstrap(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	err := app.bootstrapper.Run(ctx)
	if err == nil {
		return nil
	}

	if app.config.BootstrapStrict {
		app.logger.Critical(ctx, "An error occurred while setting up the database.", "error", err.Error())
		return fmt.Errorf("bootstrap: %w", err)
	}

	app.logger.Error(ctx, "An error occurred while setting up the database.", "error", err.Error())
	return nil
}

// Run bootstraps the schema and serves HTTP until ctx is cancelled or a
// termination signal arrives. The database pool is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.closer.Close(); err != nil {
			app.logger.Warn(context.Background(), "closing database pool", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting app...", "db", app.config.DB.Redacted())

	if err := app.bootstrap(ctx); err != nil {
		return err
	}

	if err := app.server.Run(ctx); err != nil {
		app.logger.Critical(ctx, "HTTP server failed", "error", err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
