package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger/internal/backend"
	"ledger/internal/core"
	applog "ledger/internal/log"
	"ledger/internal/storage"
)

// LedgerService is the entry point for front ends: it turns raw input into
// records, stores them, and answers summary questions over the full ledger.
type LedgerService struct {
	backend backend.Backend
	logger  *applog.Logger
	now     func() time.Time
}

func NewLedgerService(b backend.Backend, logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &LedgerService{
		backend: b,
		logger:  logger.WithComponent(applog.ComponentLedger),
		now:     time.Now,
	}
}

// Record validates the entry and saves it. An empty entry date means today.
func (s *LedgerService) Record(ctx context.Context, e core.Entry) (int64, error) {
	rec, err := e.Record(core.DateOf(s.now()))
	if err != nil {
		return 0, err
	}

	id, err := s.backend.Save(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	rec.ID = id
	s.logger.DebugContext(ctx, "Transaction recorded",
		applog.NewFields().WithOperation(applog.OpSave).WithRecord(rec).ToSlice()...)
	return id, nil
}

// Transactions returns every stored record in insertion order.
func (s *LedgerService) Transactions(ctx context.Context) ([]core.Record, error) {
	records, err := s.backend.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	s.logger.DebugContext(ctx, "Transactions loaded",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldCount, len(records))
	return records, nil
}

// Summary rescans the ledger and totals it.
func (s *LedgerService) Summary(ctx context.Context) (core.Summary, error) {
	records, err := s.Transactions(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	warnUnknownKinds(ctx, s.logger, records)
	summary := core.Summarize(records)
	s.logger.DebugContext(ctx, "Ledger summarized",
		applog.FieldOperation, applog.OpSummarize,
		applog.FieldCount, len(records),
		"balance", summary.Balance)
	return summary, nil
}

// Breakdown rescans the ledger and sums it per category for one kind.
func (s *LedgerService) Breakdown(ctx context.Context, kind core.Kind) ([]core.CategoryAmount, error) {
	k, err := core.ParseKind(string(kind))
	if err != nil {
		return nil, err
	}
	records, err := s.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	warnUnknownKinds(ctx, s.logger, records)
	totals := core.ByCategory(records, k)
	s.logger.DebugContext(ctx, "Category breakdown computed",
		applog.FieldOperation, applog.OpBreakdown,
		applog.FieldKind, k.String(),
		applog.FieldCount, len(totals))
	return totals, nil
}

// ErrorType classifies err for the error_type log field.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return applog.ErrorTypeValidation
	case errors.Is(err, storage.ErrSchemaInitializationFailed):
		return applog.ErrorTypeSchema
	case errors.Is(err, storage.ErrStorageUnavailable):
		return applog.ErrorTypeStorage
	default:
		return applog.ErrorTypeInternal
	}
}

func warnUnknownKinds(ctx context.Context, logger *applog.Logger, records []core.Record) {
	for _, r := range records {
		if _, err := core.ParseKind(string(r.Kind)); err != nil {
			logger.WarnContext(ctx, "Stored transaction has unknown kind, counting it as expense",
				applog.FieldID, r.ID,
				applog.FieldKind, r.Kind.String())
		}
	}
}
