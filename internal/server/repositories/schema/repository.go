package schema

import "context"

// Column is one column of a table definition. Type is the raw SQL type and
// constraints, e.g. "TEXT NOT NULL".
type Column struct {
	Name string
	Type string
}

type Repository interface {
	DatabaseExists(ctx context.Context, name string) (bool, error)
	CreateDatabase(ctx context.Context, name string) error
	TableExists(ctx context.Context, name string) (bool, error)
	CreateTable(ctx context.Context, name string, columns []Column) error
}
