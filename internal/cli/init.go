// Package cli provides the shared initialization used by the command
// entry point: env loading, logging, config and store construction.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"

	"expensetracker/internal/backend"
	"expensetracker/internal/config"
	"expensetracker/internal/log"
)

// LoadEnvFile loads the .env file for local development. Errors are
// ignored; the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the configured level
// and sets it as the default logger.
func SetupLogger(cfg *config.Config) *log.Logger {
	logger := log.New(log.Config{
		Level:     cfg.SlogLevel(),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadConfig loads and validates the environment configuration.
func LoadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenStore builds the configured backend store.
func OpenStore(cfg *config.Config, logger *log.Logger) (backend.Store, error) {
	factory := backend.NewFactory(logger)
	store, err := factory.Create(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		StorePath:    cfg.StorePath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DataBackend, err)
	}
	return store, nil
}
