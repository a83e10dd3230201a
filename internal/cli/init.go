// Package cli provides common CLI initialization utilities: environment,
// logging, configuration and backend startup for cmd/ledger.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ledger/internal/backend"
	"ledger/internal/config"
	applog "ledger/internal/log"
	"ledger/internal/services"
)

// LoadEnvFile loads the .env file for local development.
// A missing file is fine; the process environment still applies.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger at the given level, writing to
// stderr so command output on stdout stays clean, and makes it the default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	cfg.Writer = os.Stderr
	cfg.Component = applog.ComponentCLI

	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			applog.NewFields().
				WithOperation(applog.OpStartup).
				WithError(err).
				WithErrorType(applog.ErrorTypeConfiguration).
				ToSlice()...)
		os.Exit(1)
	}
	return cfg
}

// InitBackend creates the configured backend and initializes its schema.
// The process cannot continue without a schema, so any failure exits.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) backend.Backend {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration",
			applog.NewFields().
				WithOperation(applog.OpStartup).
				WithError(err).
				WithErrorType(applog.ErrorTypeConfiguration).
				ToSlice()...)
		os.Exit(1)
	}

	b, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		fields := applog.NewFields().
			WithOperation(applog.OpStartup).
			WithError(err).
			WithErrorType(services.ErrorType(err))
		fields[applog.FieldBackend] = cfg.DataBackend
		fields[applog.FieldDBPath] = cfg.SQLiteDBPath
		logger.ErrorContext(ctx, "Failed to initialize ledger", fields.ToSlice()...)
		os.Exit(1)
	}
	return b
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
