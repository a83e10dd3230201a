package backend

import (
	"context"
	"fmt"

	applog "ledger/internal/log"
	"ledger/internal/storage"
	"ledger/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend builds the backend and runs its Initialize. An initialization
// failure is returned as is so callers can match storage.ErrSchemaInitializationFailed.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var b Backend
	switch config.Type {
	case SQLiteBackend:
		var opts []storage.Option
		if config.BusyTimeout > 0 {
			opts = append(opts, storage.WithBusyTimeout(config.BusyTimeout))
		}
		b = storage.NewSQLiteRepository(config.SQLiteDBPath, opts...)
	case MemoryBackend:
		b = memory.New()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	if err := b.Initialize(ctx); err != nil {
		return nil, err
	}

	f.logger.InfoContext(ctx, "Initialized ledger backend",
		applog.FieldOperation, applog.OpInitialize,
		applog.FieldBackend, config.Type.String(),
		applog.FieldDBPath, config.SQLiteDBPath)

	return b, nil
}
