package backend

import (
	"context"
	"time"

	"ledger/internal/core"
)

// Ports implemented by every ledger backend.
type (
	SchemaInitializer interface {
		// Initialize makes the backend ready for use. It must be idempotent.
		Initialize(ctx context.Context) error
	}

	RecordWriter interface {
		Save(ctx context.Context, r core.Record) (id int64, err error)
	}

	// RecordLister returns the full ledger ordered by id.
	RecordLister interface {
		LoadAll(ctx context.Context) ([]core.Record, error)
	}
)

// Backend represents a unified backend interface that provides all necessary operations
type Backend interface {
	SchemaInitializer
	RecordWriter
	RecordLister
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates and initializes a backend for the provided config
	CreateBackend(ctx context.Context, config Config) (Backend, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
	BusyTimeout  time.Duration
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
