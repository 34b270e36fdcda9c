// Package entries provides the PostgreSQL-backed repository for the entries
// table.
package entries

import (
	"context"

	"github.com/dmitrijs2005/entrycounter/internal/common"
	"github.com/dmitrijs2005/entrycounter/internal/dbx"
	"github.com/dmitrijs2005/entrycounter/internal/server/models"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/schema"
)

// Columns is the definition the bootstrapper creates the table with.
var Columns = []schema.Column{
	{Name: "Id", Type: "SERIAL PRIMARY KEY"},
	{Name: "Data", Type: "TEXT NOT NULL"},
}

const (
	insertQuery = `INSERT INTO public."entries" ("Data") VALUES ($1) RETURNING "Id"`
	countQuery  = `SELECT COUNT(*) FROM public."entries"`
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores data as a new row and returns it with the generated ID.
func (r *PostgresRepository) Insert(ctx context.Context, data string) (*models.Entry, error) {
	entry := &models.Entry{Data: data}

	if err := r.db.QueryRowContext(ctx, insertQuery, data).Scan(&entry.ID); err != nil {
		return nil, common.NewStorageError("insert entry", err)
	}

	return entry, nil
}

// Count returns the number of rows in the table.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64

	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&n); err != nil {
		return 0, common.NewStorageError("count entries", err)
	}

	return n, nil
}
