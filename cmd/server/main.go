package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/infrastructure/config"
	"github.com/leondli/centriq/internal/infrastructure/database"
	"github.com/leondli/centriq/internal/infrastructure/logger"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "centriq",
		Short: "Centriq call, task and tag tracking backend",
		Long: `centriq serves the call, task and tag tracking JSON API
and manages its PostgreSQL schema.`,
		SilenceUsage: true,
	}

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config/config.yaml"
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "path to the YAML config file")

	serveCmd := newServeCmd()
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration, sets up logging and opens the database
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	// The log file stays open for the life of the process
	if _, err := logger.Init(&cfg.Log); err != nil {
		return nil, nil, err
	}

	db, err := database.Init(&cfg.Database)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}

	return cfg, db, nil
}
