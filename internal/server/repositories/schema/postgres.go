// Package schema inspects and creates PostgreSQL databases and tables through
// the system catalogs. It backs the startup bootstrap; there is no migration
// history.
package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/entrycounter/internal/common"
	"github.com/dmitrijs2005/entrycounter/internal/dbx"
	"github.com/jackc/pgx/v5"
)

// Namespace is the PostgreSQL schema every table lives in.
const Namespace = "public"

// SQLSTATE codes returned when a concurrent creator won the race.
const (
	codeDuplicateDatabase = "42P04"
	codeDuplicateTable    = "42P07"
)

const (
	databaseExistsQuery = `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`
	tableExistsQuery    = `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2
	)`
)

var ErrNoColumns = errors.New("table definition has no columns")

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// DatabaseExists reports whether a database called name exists on the server.
func (r *PostgresRepository) DatabaseExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, databaseExistsQuery, name).Scan(&exists); err != nil {
		return false, common.NewStorageError("check database", err)
	}
	return exists, nil
}

// CreateDatabase creates the database. Losing a creation race to another
// process is not an error.
func (r *PostgresRepository) CreateDatabase(ctx context.Context, name string) error {
	query := "CREATE DATABASE " + pgx.Identifier{name}.Sanitize()

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		if common.SQLState(err) == codeDuplicateDatabase {
			return nil
		}
		return common.NewStorageError("create database", err)
	}
	return nil
}

// TableExists reports whether table name exists in the public schema.
func (r *PostgresRepository) TableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, tableExistsQuery, Namespace, name).Scan(&exists); err != nil {
		return false, common.NewStorageError("check table", err)
	}
	return exists, nil
}

// CreateTable creates table name in the public schema. It is a no-op when
// the table already exists.
func (r *PostgresRepository) CreateTable(ctx context.Context, name string, columns []Column) error {
	query, err := CreateTableStatement(name, columns)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		if common.SQLState(err) == codeDuplicateTable {
			return nil
		}
		return common.NewStorageError("create table", err)
	}
	return nil
}

// CreateTableStatement renders the DDL for name with quoted identifiers.
func CreateTableStatement(name string, columns []Column) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoColumns)
	}

	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		defs = append(defs, pgx.Identifier{c.Name}.Sanitize()+" "+c.Type)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s);",
		pgx.Identifier{Namespace, name}.Sanitize(), strings.Join(defs, ", ")), nil
}
