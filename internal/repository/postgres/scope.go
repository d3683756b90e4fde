package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

// q is a minimal query executor implemented by pgxpool.Conn and pgx.Tx.
type q interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// snapshot makes the count and the page read the same data.
var snapshot = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// withConn acquires one pooled connection for the duration of fn and releases it
// on every exit path.
func withConn(ctx context.Context, pool *pgxpool.Pool, op string, fn func(conn *pgxpool.Conn) error) error {
	if err := ensurePool(pool); err != nil {
		return repository.MapError(op, err)
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return repository.MapError(op, err)
	}
	defer conn.Release()

	return repository.MapError(op, fn(conn))
}

// withSnapshot is withConn inside a read-only repeatable-read transaction.
func withSnapshot(ctx context.Context, pool *pgxpool.Pool, op string, fn func(c q) error) error {
	return withConn(ctx, pool, op, func(conn *pgxpool.Conn) error {
		return pgx.BeginTxFunc(ctx, conn, snapshot, func(tx pgx.Tx) error {
			return fn(tx)
		})
	})
}

// listPage runs the count and the window query against one snapshot.
func listPage[T any](ctx context.Context, pool *pgxpool.Pool, op, countSQL, listSQL string, p repository.Page, scan pgx.RowToFunc[T]) (repository.PageResult[T], error) {
	p = repository.Sanitize(p)
	res := repository.PageResult[T]{Limit: p.Limit, Offset: p.Offset}
	err := withSnapshot(ctx, pool, op, func(c q) error {
		if err := c.QueryRow(ctx, countSQL).Scan(&res.Total); err != nil {
			return err
		}
		rows, err := c.Query(ctx, listSQL, p.Limit, p.Offset)
		if err != nil {
			return err
		}
		items, err := pgx.CollectRows(rows, scan)
		if err != nil {
			return err
		}
		res.Items = items
		return nil
	})
	if err != nil {
		return repository.PageResult[T]{}, err
	}
	if res.Items == nil {
		res.Items = []T{}
	}
	return res, nil
}

func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}
