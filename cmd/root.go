// Package cmd is the command line of the POS backend.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"pos-kemasan/config"
	"pos-kemasan/database"
	"pos-kemasan/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "pos-kemasan",
	Short:         "Backend POS percetakan kemasan",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

// Execute runs the command line. Without a subcommand the server starts.
func Execute() {
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// boot loads config, installs the logger and opens the database.
func boot() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	if err := database.EnsureDatabaseExists(cfg); err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}
