package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/capacitymarket/capacity-checker/internal/api"
	"github.com/capacitymarket/capacity-checker/internal/component"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/cache"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/config"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/database"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/logging"
	"github.com/capacitymarket/capacity-checker/internal/postcode"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe wires the application together and blocks until shutdown.
func runServe(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting capacity-checker",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("closing database", "error", err)
		}
	}()
	log.Info("database connected", "driver", db.Driver(), "source", db.Source())

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	c := cache.New(cfg.Cache)
	defer c.Stop()
	log.Info("cache initialised", "ttl_seconds", cfg.Cache.TTL, "max_entries", cfg.Cache.MaxEntries)

	postcodes, err := postcode.Load()
	if err != nil {
		return fmt.Errorf("loading postcode directory: %w", err)
	}

	server, err := api.New(api.Deps{
		Config:    cfg,
		Logger:    log,
		Repo:      component.NewSQLRepository(db),
		Cache:     c,
		DB:        db,
		Postcodes: postcodes,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Error("closing server", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	return nil
}
