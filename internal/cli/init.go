// Package cli provides common initialization for the expensetracker binary.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"expensetracker/internal/config"
	"expensetracker/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and sets it
// as the default logger.
func SetupLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Exits the process on failure; there is nothing to run without config.
func LoadAndValidateConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the SQLite store at dbPath, running schema migrations.
// Exits the process on failure.
func OpenStore(logger *slog.Logger, dbPath string) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	logger.Info("Store ready", "path", dbPath)
	return store
}
