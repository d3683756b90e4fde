package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/rs/zerolog"
)

const connectTimeout = 5 * time.Second

// Postgres owns the pgx pool shared by the Postgres repositories.
type Postgres struct {
	pool *pgxpool.Pool
}

// DSN builds a postgres:// URL from the config, escaping credentials.
func DSN(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}

// poolConfig applies pool tuning (seconds in config) and routes pgx tracing into logger.
func poolConfig(cfg config.PostgresConfig, logger zerolog.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}
	pc.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newPgxLogger(logger),
		LogLevel: traceLevel(max(logger.GetLevel(), zerolog.GlobalLevel())),
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = min(cfg.MinConns, pc.MaxConns)
	}
	seconds := func(n int) time.Duration { return time.Duration(n) * time.Second }
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = seconds(cfg.MaxConnLifetime)
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = seconds(cfg.MaxConnIdleTime)
	}
	if cfg.HealthCheckPeriod > 0 {
		pc.HealthCheckPeriod = seconds(cfg.HealthCheckPeriod)
	}
	return pc, nil
}

// NewPostgres creates the pool and verifies the server answers within connectTimeout.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger zerolog.Logger) (*Postgres, error) {
	if cfg.Host == "" {
		return nil, errors.New("postgres host is required")
	}
	pc, err := poolConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, MapError("connect", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("db", cfg.DBName).
		Int32("max_conns", pc.MaxConns).
		Msg("Successfully connected to PostgreSQL")

	return &Postgres{pool: pool}, nil
}

// Pool exposes the pool for repository constructors.
func (p *Postgres) Pool() *pgxpool.Pool { return p.pool }

func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
