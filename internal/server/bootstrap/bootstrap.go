// Package bootstrap prepares the database before the service accepts
// requests: it makes sure the database and the entries table exist.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/entrycounter/internal/logging"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/schema"
)

// DatabaseEnsurer creates the target database when it is missing.
type DatabaseEnsurer interface {
	EnsureDatabase(ctx context.Context) (created bool, err error)
}

// Table is a table the bootstrapper guarantees to exist.
type Table struct {
	Name    string
	Columns []schema.Column
}

type Bootstrapper struct {
	pool    *sql.DB
	ensurer DatabaseEnsurer
	repos   repomanager.RepositoryManager
	table   Table
	logger  logging.Logger
}

func New(pool *sql.DB, ensurer DatabaseEnsurer, repos repomanager.RepositoryManager, table Table, l logging.Logger) *Bootstrapper {
	return &Bootstrapper{
		pool:    pool,
		ensurer: ensurer,
		repos:   repos,
		table:   table,
		logger:  l.With("module", "bootstrap"),
	}
}

// Run ensures the database exists, opens a connection, and creates the table
// if the catalog does not list it. Every step is idempotent, so Run may be
// called on each startup. Concurrent runs may both try to create; the loser's
// duplicate error is swallowed by the schema repository.
func (b *Bootstrapper) Run(ctx context.Context) error {
	b.logger.Info(ctx, "Checking database connection...")

	created, err := b.ensurer.EnsureDatabase(ctx)
	if err != nil {
		return fmt.Errorf("ensure database: %w", err)
	}
	b.logger.Info(ctx, "Database ensured to be created.", "created", created)

	if err := b.pool.PingContext(ctx); err != nil {
		return fmt.Errorf("open connection: %w", err)
	}
	b.logger.Info(ctx, "Database connection opened.")

	repo := b.repos.Schema(b.pool)

	exists, err := repo.TableExists(ctx, b.table.Name)
	if err != nil {
		return err
	}
	b.logger.Debug(ctx, fmt.Sprintf("Check if '%s' table exists", b.table.Name), "exists", exists)

	if exists {
		return nil
	}

	if err := repo.CreateTable(ctx, b.table.Name, b.table.Columns); err != nil {
		return err
	}
	b.logger.Info(ctx, fmt.Sprintf("Table '%s' created.", b.table.Name))

	return nil
}
