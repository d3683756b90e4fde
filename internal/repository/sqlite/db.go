// Package sqlite implements the repository contracts on an embedded SQLite file
// through modernc.org/sqlite. It backs local runs and the diagnostic commands.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/maxviazov/reminder-admin/internal/repository"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB wraps the database/sql handle shared by the SQLite repositories.
type DB struct {
	db *sql.DB
}

// DSN builds a modernc file URI with the pragmas every connection needs.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}

// Open opens (creating if needed) the database file and verifies it answers.
func Open(ctx context.Context, cfg config.SQLiteConfig, logger zerolog.Logger) (*DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", DSN(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	logger.Info().Str("path", cfg.Path).Msg("Successfully opened SQLite database")
	return &DB{db: db}, nil
}

// SQL exposes the handle for repository constructors and migrations.
func (d *DB) SQL() *sql.DB { return d.db }

func (d *DB) Close() error { return d.db.Close() }

type pinger struct{ db *sql.DB }

// NewPinger adapts *sql.DB to the repository.Pinger interface.
func NewPinger(db *sql.DB) repository.Pinger { return &pinger{db: db} }

func (p *pinger) Ping(ctx context.Context) error {
	return repository.MapError("ping", p.db.PingContext(ctx))
}
