package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/maxviazov/reminder-admin/internal/migrations"
	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
	"github.com/maxviazov/reminder-admin/internal/repository/contract"
	"github.com/rs/zerolog"
)

var (
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// contract tests need a live database; opt in explicitly
		skippy = true
		os.Exit(m.Run())
	}

	dsn := buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		os.Exit(1)
	}
	if err := pool.Ping(ctx); err != nil {
		fmt.Println("[contract] db ping error:", err)
		os.Exit(1)
	}

	db := stdlib.OpenDBFromPool(pool)
	if _, err := migrations.Up(ctx, db, "postgres", zerolog.Nop()); err != nil {
		fmt.Println("[contract] migrate error:", err)
		os.Exit(1)
	}
	_ = db.Close()

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and provide DB env")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"), os.Getenv("DB_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	db := firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"), os.Getenv("DB_NAME"))
	ssl := firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), os.Getenv("POSTGRES_SSLMODE"), "disable")
	if user == "" || pass == "" || db == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, ssl)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), "TRUNCATE TABLE reminders, users RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

type fixture struct{ pool *pgxpool.Pool }

func (f fixture) SeedUser(ctx context.Context, u model.User) error {
	_, err := f.pool.Exec(ctx,
		`INSERT INTO users (id, display_name, phone, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.DisplayName, u.Phone, u.CreatedAt)
	return err
}

func (f fixture) SeedReminder(ctx context.Context, r model.Reminder) (int64, error) {
	var id int64
	err := f.pool.QueryRow(ctx,
		`INSERT INTO reminders (user_id, content, priority, summary, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		r.UserID, r.Content, r.Priority, r.Summary, r.CreatedAt).Scan(&id)
	return id, err
}

func (f fixture) Break(ctx context.Context) (func(), error) {
	if _, err := f.pool.Exec(ctx, `ALTER TABLE reminders RENAME TO reminders_broken`); err != nil {
		return nil, err
	}
	return func() {
		_, _ = f.pool.Exec(context.Background(), `ALTER TABLE reminders_broken RENAME TO reminders`)
	}, nil
}

func (f fixture) InUse() int { return int(f.pool.Stat().AcquiredConns()) }

// Factories used by contract suites

func makeReminderRepo(t *testing.T) (repository.ReminderRepository, contract.Fixture, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewReminderRepository(pool), fixture{pool: pool}, func() { truncateAll(t) }
}

func makeUserRepo(t *testing.T) (repository.UserRepository, contract.Fixture, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewUserRepository(pool), fixture{pool: pool}, func() { truncateAll(t) }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	skipIfNeeded(t)
	return NewPinger(pool), func() {}
}

func TestReminderRepository_PostgresContract(t *testing.T) {
	contract.RunReminderRepositoryContract(t, makeReminderRepo)
}

func TestUserRepository_PostgresContract(t *testing.T) {
	contract.RunUserRepositoryContract(t, makeUserRepo)
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}
