package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/maxviazov/reminder-admin/internal/handler"
	"github.com/maxviazov/reminder-admin/internal/repository"
	"github.com/maxviazov/reminder-admin/internal/server"
	"github.com/maxviazov/reminder-admin/internal/service"
	"github.com/maxviazov/reminder-admin/internal/storage"
	"github.com/maxviazov/reminder-admin/internal/telemetry"
)

func serviceOptions(cfg *config.Config) service.Options {
	return service.Options{
		QueryTimeout: cfg.Storage.QueryTimeout,
		Limits:       service.PageLimits{Default: cfg.Storage.DefaultLimit, Max: cfg.Storage.MaxLimit},
	}
}

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			tel, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App.Env, cfg.App.Version, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := tel.Close(cfg.HTTP.ShutdownTimeout); err != nil {
					log.Warn().Err(err).Msg("telemetry shutdown")
				}
			}()

			store, err := storage.Open(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("storage connection failed: %w", err)
			}
			defer store.Close()

			if migrate {
				if _, err := store.Migrate(ctx, log); err != nil {
					return err
				}
			}

			opts := serviceOptions(cfg)
			engine := server.NewEngine(cfg, log, tel.MeterProvider, handler.Deps{
				Pinger:    store.Pinger,
				Reminders: service.NewReminderService(store.Reminders, opts, log),
				Users:     service.NewUserService(store.Users, opts, log),
				Limits:    opts.Limits,
				Status: handler.StatusInfo{
					Service: cfg.App.Name,
					Version: cfg.App.Version,
					Env:     cfg.App.Env,
					Driver:  store.Driver,
				},
			})

			log.Info().Str("driver", store.Driver).Int("port", cfg.App.Port).Msg("🚀 Service started")
			return server.New(cfg, engine, log).Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			store, err := storage.Open(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("storage connection failed: %w", err)
			}
			defer store.Close()

			n, err := store.Migrate(ctx, log)
			if err != nil {
				return err
			}
			log.Info().Int("applied", n).Str("driver", store.Driver).Msg("✅ migrations complete")
			return nil
		},
	}
}

// newCheckCmd is a one-off diagnostic: ping, count, and log the newest reminder.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify storage connectivity and report what it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			store, err := storage.Open(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("storage connection failed: %w", err)
			}
			defer store.Close()
			return runCheck(cmd, store, serviceOptions(cfg), log)
		},
	}
}

func runCheck(cmd *cobra.Command, store *storage.Store, opts service.Options, log zerolog.Logger) error {
	ctx := cmd.Context()
	if err := store.Pinger.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	reminders := service.NewReminderService(store.Reminders, opts, log)

	total, err := reminders.CountReminders(ctx)
	if err != nil {
		return err
	}
	res, err := reminders.ListReminders(ctx, repository.Page{Limit: 1})
	if err != nil {
		return err
	}

	ev := log.Info().Str("driver", store.Driver).Int("reminders", total)
	if len(res.Items) > 0 {
		newest := res.Items[0]
		ev = ev.Int64("newest_id", newest.ID).Time("newest_created_at", newest.CreatedAt)
	}
	ev.Msg("✅ storage check passed")
	fmt.Fprintf(cmd.OutOrStdout(), "%s ok: %d reminders\n", store.Driver, total)
	return nil
}
