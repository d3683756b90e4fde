package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors repository implementations bubble up.
var (
	ErrNotFound = errors.New("not found")
	// ErrStorage marks any failure reaching or querying the store.
	ErrStorage = errors.New("storage failure")
)

// StorageError carries the failing operation and the driver error.
// It matches both ErrStorage and the underlying cause under errors.Is.
type StorageError struct {
	Op        string
	Code      string // SQLSTATE when the store is Postgres
	Transient bool
	Err       error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// MapError translates driver errors to domain errors. No-rows becomes ErrNotFound,
// everything else becomes a *StorageError tagged with op.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}

	out := &StorageError{Op: op, Err: err}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		out.Transient = true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		out.Code = pgErr.Code
		out.Transient = out.Transient ||
			pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsOperatorIntervention(pgErr.Code) ||
			pgErr.Code == pgerrcode.SerializationFailure
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		out.Transient = true
	}
	return out
}

// IsTransient reports whether err is a storage failure that might succeed on retry.
// Nothing in this service retries; callers use it for logging.
func IsTransient(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Transient
}
