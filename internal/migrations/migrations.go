// Package migrations embeds the bootstrap schema for each supported store and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

var dialects = map[string]goose.Dialect{
	config.DriverPostgres: goose.DialectPostgres,
	config.DriverSQLite:   goose.DialectSQLite3,
}

// Up applies every pending migration for driver ("postgres" or "sqlite") and
// returns how many were applied.
func Up(ctx context.Context, db *sql.DB, driver string, logger zerolog.Logger) (int, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return 0, fmt.Errorf("no migrations for driver %q", driver)
	}
	sub, err := fs.Sub(files, driver)
	if err != nil {
		return 0, fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		logger.Info().
			Str("driver", driver).
			Str("migration", r.Source.Path).
			Dur("took", r.Duration).
			Msg("migration applied")
	}
	return len(results), nil
}
