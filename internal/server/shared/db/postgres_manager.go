// Package db owns the PostgreSQL connection pool and the server-level
// operations that need a connection outside the target database.
package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/dmitrijs2005/entrycounter/internal/common"
	"github.com/dmitrijs2005/entrycounter/internal/server/config"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/repomanager"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// openDB is a seam for tests; it opens a pgx-backed *sql.DB without
// connecting.
var openDB = func(dsn string) (*sql.DB, error) {
	cc, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*cc), nil
}

// invalidCatalogName is the SQLSTATE returned when connecting to a database
// that does not exist.
const invalidCatalogName = "3D000"

// failedConnector stands in for a pool whose descriptor could not be parsed.
// Every connection attempt reports the parse error.
type failedConnector struct {
	err error
}

func (c failedConnector) Connect(context.Context) (driver.Conn, error) { return nil, c.err }
func (c failedConnector) Driver() driver.Driver                        { return c }
func (c failedConnector) Open(string) (driver.Conn, error)             { return nil, c.err }

// PostgresManager owns the shared *sql.DB pool for the configured database.
// The pool is safe for concurrent use; it does not reconnect or retry on its
// own beyond what database/sql does.
type PostgresManager struct {
	db    *sql.DB
	cfg   config.DB
	repos repomanager.RepositoryManager
}

// NewPostgresManager opens the pool described by cfg and applies its limits.
// No connection is made until first use. A descriptor that cannot be parsed
// does not fail here: the pool is still returned and every use of it reports
// the parse error, so callers handle it like an unreachable server.
func NewPostgresManager(cfg config.DB, repos repomanager.RepositoryManager) *PostgresManager {
	db, err := openDB(cfg.DSN())
	if err != nil {
		db = sql.OpenDB(failedConnector{err: fmt.Errorf("db open error: %w", err)})
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &PostgresManager{db: db, cfg: cfg, repos: repos}
}

func (m *PostgresManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresManager) Close() error {
	return m.db.Close()
}

// EnsureDatabase creates the configured database when it does not exist.
// The target database is tried first; only when the server reports it
// missing does it connect to the maintenance database, check the catalog and
// create it. Safe to run on every startup.
func (m *PostgresManager) EnsureDatabase(ctx context.Context) (created bool, err error) {
	err = m.db.PingContext(ctx)
	if err == nil {
		return false, nil
	}
	if common.SQLState(err) != invalidCatalogName {
		return false, common.NewStorageError("connect database", err)
	}

	admin, err := openDB(m.cfg.MaintenanceDSN())
	if err != nil {
		return false, fmt.Errorf("maintenance db open error: %w", err)
	}
	defer admin.Close()

	repo := m.repos.Schema(admin)

	exists, err := repo.DatabaseExists(ctx, m.cfg.Name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := repo.CreateDatabase(ctx, m.cfg.Name); err != nil {
		return false, err
	}
	return true, nil
}
