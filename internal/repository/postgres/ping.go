package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

type pinger struct{ pool *pgxpool.Pool }

// NewPinger reports readiness by checking out a connection and pinging on it.
func NewPinger(pool *pgxpool.Pool) repository.Pinger { return &pinger{pool: pool} }

func (p *pinger) Ping(ctx context.Context) error {
	return withConn(ctx, p.pool, "ping", func(conn *pgxpool.Conn) error {
		return conn.Ping(ctx)
	})
}
