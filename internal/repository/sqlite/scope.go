package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maxviazov/reminder-admin/internal/repository"
)

// q is the query surface shared by *sql.Conn and *sql.Tx.
type q interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withConn checks one connection out of the pool for fn and returns it on every exit path.
func withConn(ctx context.Context, db *sql.DB, op string, fn func(conn *sql.Conn) error) error {
	if db == nil {
		return repository.MapError(op, errors.New("sqlite handle is nil"))
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return repository.MapError(op, err)
	}
	defer conn.Close()

	return repository.MapError(op, fn(conn))
}

// withSnapshot runs fn inside a read transaction so multi-statement reads agree.
func withSnapshot(ctx context.Context, db *sql.DB, op string, fn func(c q) error) error {
	return withConn(ctx, db, op, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func listPage[T any](ctx context.Context, db *sql.DB, op, countSQL, listSQL string, p repository.Page, scan func(scanner) (T, error)) (repository.PageResult[T], error) {
	p = repository.Sanitize(p)
	res := repository.PageResult[T]{Limit: p.Limit, Offset: p.Offset, Items: make([]T, 0, min(p.Limit, 64))}
	err := withSnapshot(ctx, db, op, func(c q) error {
		if err := c.QueryRowContext(ctx, countSQL).Scan(&res.Total); err != nil {
			return err
		}
		rows, err := c.QueryContext(ctx, listSQL, p.Limit, p.Offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			res.Items = append(res.Items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return repository.PageResult[T]{}, err
	}
	return res, nil
}
