// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// binding repository constructors to a caller-supplied DBTX so the same
// repositories work on the pool or inside a transaction.
package repomanager

import (
	"github.com/dmitrijs2005/entrycounter/internal/dbx"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/entries"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/schema"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations.
type PostgresRepositoryManager struct{}

// Entries returns an entries.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewPostgresRepository(db)
}

// Schema returns a schema.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Schema(db dbx.DBTX) schema.Repository {
	return schema.NewPostgresRepository(db)
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
