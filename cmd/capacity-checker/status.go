package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/capacitymarket/capacity-checker/internal/component"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/config"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/database"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and migration status",
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
		fmt.Printf("driver:  %s\n", db.Driver())
		fmt.Printf("source:  %s\n", db.Source())

		applied, pending, err := db.GetMigrationStatus(ctx)
		if err != nil {
			return fmt.Errorf("reading migration status: %w", err)
		}
		fmt.Printf("applied migrations: %d\n", len(applied))
		for _, m := range applied {
			fmt.Printf("  %s  (applied %s)\n", m.Version, m.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("pending migrations: %d\n", len(pending))
		for _, m := range pending {
			fmt.Printf("  %s  %s\n", m.Version, m.Name)
		}

		repo := component.NewSQLRepository(db)
		total, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting components: %w", err)
		}
		fmt.Printf("components: %d\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
