package schema

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/entrycounter/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entriesColumns = []Column{
	{Name: "Id", Type: "SERIAL PRIMARY KEY"},
	{Name: "Data", Type: "TEXT NOT NULL"},
}

const entriesDDL = `CREATE TABLE IF NOT EXISTS "public"."entries" ("Id" SERIAL PRIMARY KEY, "Data" TEXT NOT NULL);`

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestCreateTableStatement(t *testing.T) {
	got, err := CreateTableStatement("entries", entriesColumns)
	require.NoError(t, err)
	assert.Equal(t, entriesDDL, got)
}

func TestCreateTableStatement_QuotesHostileNames(t *testing.T) {
	got, err := CreateTableStatement(`bad"name`, []Column{{Name: `x"y`, Type: "TEXT"}})
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "public"."bad""name" ("x""y" TEXT);`, got)
}

func TestCreateTableStatement_NoColumns(t *testing.T) {
	_, err := CreateTableStatement("entries", nil)
	require.ErrorIs(t, err, ErrNoColumns)
}

func TestTableExists(t *testing.T) {
	for _, want := range []bool{true, false} {
		repo, mock, db := newRepoWithMock(t)

		mock.ExpectQuery(`SELECT EXISTS \(\s*SELECT FROM information_schema\.tables`).
			WithArgs("public", "entries").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(want))

		got, err := repo.TableExists(context.Background(), "entries")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	}
}

func TestTableExists_Error(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`information_schema\.tables`).WillReturnError(errors.New("no route to host"))

	_, err := repo.TableExists(context.Background(), "entries")
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestCreateTable_Executes(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(entriesDDL)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.CreateTable(context.Background(), "entries", entriesColumns))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTable_LostRaceIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(entriesDDL)).WillReturnError(&pgconn.PgError{Code: "42P07"})

	require.NoError(t, repo.CreateTable(context.Background(), "entries", entriesColumns))
}

func TestCreateTable_Error(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(entriesDDL)).WillReturnError(&pgconn.PgError{Code: "42501"})

	err := repo.CreateTable(context.Background(), "entries", entriesColumns)
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, "42501", common.SQLState(err))
}

func TestCreateTable_NoColumnsSkipsBackend(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	err := repo.CreateTable(context.Background(), "entries", nil)
	require.ErrorIs(t, err, ErrNoColumns)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM pg_database WHERE datname = \$1`).
		WithArgs("db").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	got, err := repo.DatabaseExists(context.Background(), "db")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCreateDatabase(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		wantErr bool
	}{
		{name: "created"},
		{name: "already exists", execErr: &pgconn.PgError{Code: "42P04"}},
		{name: "permission denied", execErr: &pgconn.PgError{Code: "42501"}, wantErr: true},
		{name: "connection error", execErr: errors.New("eof"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectExec(regexp.QuoteMeta(`CREATE DATABASE "db"`))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 0))
			}

			err := repo.CreateDatabase(context.Background(), "db")
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrStorage)
				return
			}
			require.NoError(t, err)
		})
	}
}
