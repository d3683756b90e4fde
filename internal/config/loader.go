package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrMissingSecret is returned when the postgres driver is selected but credentials are absent.
var ErrMissingSecret = errors.New("required postgres credentials are not set")

// Load reads the YAML file at path, applies APP_* environment overrides and validates the result.
// A .env file in the working directory is loaded first when present; it never overrides real env.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)
	bindSecrets(v)

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			return ErrMissingSecret
		}
		if c.Postgres.Host == "" || c.Postgres.Port == 0 {
			return errors.New("postgres host and port are required")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite path is required")
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "reminder-admin")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)

	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("storage.query_timeout", 5*time.Second)
	v.SetDefault("storage.default_limit", 50)
	v.SetDefault("storage.max_limit", 200)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)

	v.SetDefault("sqlite.path", "reminders.db")
	v.SetDefault("sqlite.max_open_conns", 4)

	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "reminder-admin")
	v.SetDefault("telemetry.metrics_interval", 30*time.Second)
}

// bindSecrets lets the conventional POSTGRES_* / DB_* names stand in for APP_POSTGRES_*.
func bindSecrets(v *viper.Viper) {
	_ = v.BindEnv("postgres.user", "APP_POSTGRES_USER", "POSTGRES_USER", "DB_USER")
	_ = v.BindEnv("postgres.password", "APP_POSTGRES_PASSWORD", "POSTGRES_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("postgres.db", "APP_POSTGRES_DB", "POSTGRES_DB", "DB_NAME")
}
