package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	SQLiteDBPath string
	BusyTimeout  time.Duration

	// Backend selection
	DataBackend string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		SQLiteDBPath: getEnv("LEDGER_DB_PATH", "./data/ledger.db"),
		BusyTimeout:  getEnvDuration("LEDGER_BUSY_TIMEOUT", 5*time.Second),

		DataBackend: getEnv("DATA_BACKEND", "sqlite"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if info, err := os.Stat(c.SQLiteDBPath); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("SQLite database path '%s' is a directory", c.SQLiteDBPath))
		}
	}

	if c.BusyTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid busy timeout %v: must not be negative", c.BusyTimeout))
	} else if c.BusyTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid busy timeout %v: must be at most 1 minute", c.BusyTimeout))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
