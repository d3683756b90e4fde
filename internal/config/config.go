package config

import (
	"time"

	"github.com/maxviazov/reminder-admin/internal/logger"
)

// Config is the root configuration tree. Keys map 1:1 to config.yaml and to
// APP_* environment variables (app.port -> APP_APP_PORT, postgres.user -> APP_POSTGRES_USER).
type Config struct {
	App       AppConfig           `mapstructure:"app"`
	Logger    logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Storage   StorageConfig       `mapstructure:"storage"`
	Postgres  PostgresConfig      `mapstructure:"postgres"`
	SQLite    SQLiteConfig        `mapstructure:"sqlite"`
	HTTP      HTTPConfig          `mapstructure:"http"`
	Telemetry TelemetryConfig     `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
	Env     string `mapstructure:"env" validate:"required"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// StorageConfig selects the backing store and the pagination limits applied to it.
type StorageConfig struct {
	Driver       string        `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" validate:"gt=0"`
	DefaultLimit int           `mapstructure:"default_limit" validate:"min=1"`
	MaxLimit     int           `mapstructure:"max_limit" validate:"gtefield=DefaultLimit"`
}

// PostgresConfig carries connection settings and pool tuning. Durations are in seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

type SQLiteConfig struct {
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// TelemetryConfig toggles OpenTelemetry export. Endpoints come from the
// standard OTEL_EXPORTER_OTLP_* variables.
type TelemetryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	ServiceName     string        `mapstructure:"service_name"`
	MetricsInterval time.Duration `mapstructure:"metrics_interval"`
}
