package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/aamoria/wellness-api/config"
	"github.com/aamoria/wellness-api/logger"
)

// rootCmd serves the API when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:           "wellness-api",
	Short:         "Chakra quiz and journey catalog API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger.
func bootstrap() (config.Environment, *logger.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: .env file could not be loaded: %v\n", err)
	}
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return config.Environment{}, nil, fmt.Errorf("init logger: %w", err)
	}
	env, err := config.Load(log)
	if err != nil {
		return env, log, err
	}
	return env, log, nil
}

// openDB connects and migrates the schema.
func openDB(env config.Environment, log *logger.Logger) (*gorm.DB, error) {
	db, err := config.Connect(env)
	if err != nil {
		return nil, err
	}
	if err := config.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("Database ready", "driver", env.DBDriver)
	return db, nil
}
