package common

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStorage is matched by every error produced by the storage layer.
var ErrStorage = errors.New("storage error")

// StorageError reports a failed backend operation. Code carries the SQLSTATE
// when the backend returned one.
type StorageError struct {
	Op   string
	Code string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (sqlstate %s): %v", ErrStorage, e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorage) match any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err for operation op. A nil err stays nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}

	se := &StorageError{Op: op, Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se.Code = pgErr.Code
	}

	return se
}

// SQLState returns the SQLSTATE carried by err, or "" if there is none.
func SQLState(err error) string {
	var se *StorageError
	if errors.As(err, &se) && se.Code != "" {
		return se.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
