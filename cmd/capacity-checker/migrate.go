package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/capacitymarket/capacity-checker/internal/infrastructure/config"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/database"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  "Apply pending schema migrations, or roll back the most recent one with --down.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close() //nolint:errcheck // best-effort close on CLI exit

		ctx := cmd.Context()
		if migrateDown {
			if err := db.MigrateDown(ctx); err != nil {
				return fmt.Errorf("rolling back migration: %w", err)
			}
			fmt.Println("rolled back most recent migration")
			return nil
		}

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		fmt.Println("migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back the most recent migration")
	rootCmd.AddCommand(migrateCmd)
}
