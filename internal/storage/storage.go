// Package storage opens the configured backend and hands out its repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/maxviazov/reminder-admin/internal/migrations"
	"github.com/maxviazov/reminder-admin/internal/repository"
	"github.com/maxviazov/reminder-admin/internal/repository/postgres"
	"github.com/maxviazov/reminder-admin/internal/repository/sqlite"
	"github.com/rs/zerolog"
)

// Store bundles the repositories of one backend with its lifecycle.
type Store struct {
	Driver    string
	Reminders repository.ReminderRepository
	Users     repository.UserRepository
	Pinger    repository.Pinger

	// db is a database/sql view of the backend, used for migrations.
	db      *sql.DB
	closers []func()
}

// Open connects to cfg.Storage.Driver and builds its repositories.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg, err := repository.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		pool := pg.Pool()
		db := stdlib.OpenDBFromPool(pool)
		return &Store{
			Driver:    config.DriverPostgres,
			Reminders: postgres.NewReminderRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Pinger:    postgres.NewPinger(pool),
			db:        db,
			closers:   []func(){func() { _ = db.Close() }, pg.Close},
		}, nil

	case config.DriverSQLite:
		lite, err := sqlite.Open(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		db := lite.SQL()
		return &Store{
			Driver:    config.DriverSQLite,
			Reminders: sqlite.NewReminderRepository(db),
			Users:     sqlite.NewUserRepository(db),
			Pinger:    sqlite.NewPinger(db),
			db:        db,
			closers:   []func(){func() { _ = lite.Close() }},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// Migrate applies the embedded schema for the active driver.
func (s *Store) Migrate(ctx context.Context, logger zerolog.Logger) (int, error) {
	return migrations.Up(ctx, s.db, s.Driver, logger)
}

// Close releases every connection in the order they were opened.
func (s *Store) Close() {
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
}
