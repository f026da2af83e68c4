// Command storectl runs maintenance tasks against the store's databases.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"voidwebsite/internal/app"
	"voidwebsite/internal/config"
	"voidwebsite/internal/database"
	"voidwebsite/internal/migrations"
	"voidwebsite/internal/orderstate"
	"voidwebsite/internal/redis"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	root := &cobra.Command{
		Use:          "storectl",
		Short:        "Maintenance tasks for the Void storefront",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(app.NewLogger(cfg.LogLevel))
		},
	}
	root.AddCommand(newMigrateCmd(cfg), newSeedCmd(cfg), newReconcileCmd(cfg))
	return root
}

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := openDB(cfg)
			return err
		},
	}
}

func newSeedCmd(cfg *config.Config) *cobra.Command {
	var adminName string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and default pricing if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			return migrations.SeedDefaults(cmd.Context(), db, migrations.Defaults{
				AdminEmail:    cfg.AdminEmail,
				AdminName:     adminName,
				AdminPassword: cfg.AdminPassword,
				Pricing:       app.DefaultPricing(cfg),
			})
		},
	}
	cmd.Flags().StringVar(&adminName, "admin-name", "Admin", "display name for a newly created admin")
	return cmd
}

func newReconcileCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Retry every queued order and set write against the primary store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			redisClient, err := redis.Initialize(cfg.RedisURL)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			store, closeStore, err := app.NewOrderStore(ctx, cfg, db, redisClient, slog.Default())
			if err != nil {
				return err
			}
			defer closeStore()
			if err := store.Load(ctx); err != nil {
				return err
			}

			result := orderstate.NewReconciler(store, cfg.ReconcileInterval, slog.Default()).Flush(ctx)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "synced: %d\n", len(result.Synced))
			for _, key := range result.Failed {
				fmt.Fprintf(out, "failed: %s\n", key)
			}
			if len(result.Failed) > 0 {
				return fmt.Errorf("%d writes still pending", len(result.Failed))
			}
			return nil
		},
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Initialize(cfg.DatabaseURL, false)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}
