package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/maxviazov/reminder-admin/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "reminder-admin",
		Short:         "Administrative read API over the reminders store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newCheckCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("reminder-admin %s (commit: %s, built: %s)\n", version, commit, date)
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

// bootstrap loads config and builds the application logger shared by every command.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("config loading failed: %w", err)
	}

	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("logger initialization failed: %w", err)
	}
	return cfg, appLogger, nil
}
