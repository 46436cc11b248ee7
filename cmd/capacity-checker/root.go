package main

import (
	"os"

	"github.com/spf13/cobra"
)

// defaultConfigPath is used when --config is not given.
const defaultConfigPath = "configs/config.yaml"

var configPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "capacity-checker",
	Short: "UK capacity market component search service",
	Long: `capacity-checker serves a searchable register of UK capacity market
components: an HTML search page, a JSON API, and admin endpoints for cache
and database inspection.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the configuration file")
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
