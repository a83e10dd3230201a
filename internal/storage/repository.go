package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"ledger/internal/core"

	_ "modernc.org/sqlite"
)

// DefaultBusyTimeout is how long SQLite waits on a locked file before failing.
const DefaultBusyTimeout = 5 * time.Second

var (
	// ErrStorageUnavailable means the database file could not be opened, read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSchemaInitializationFailed means Initialize could not create the schema.
	ErrSchemaInitializationFailed = errors.New("schema initialization failed")

	// ErrCorruptRecord means a stored row could not be decoded.
	ErrCorruptRecord = fmt.Errorf("%w: corrupt record", ErrStorageUnavailable)
)

// SQLiteRepository is the durable ledger. It keeps no connection between
// calls: every operation opens the file, does its work and closes it again.
// Writes are serialized.
type SQLiteRepository struct {
	path        string
	busyTimeout time.Duration
	writer      *semaphore.Weighted
	now         func() time.Time
}

// Option customizes a SQLiteRepository.
type Option func(*SQLiteRepository)

// WithBusyTimeout sets how long to wait on a locked database file.
func WithBusyTimeout(d time.Duration) Option {
	return func(r *SQLiteRepository) {
		r.busyTimeout = d
	}
}

// WithClock sets the clock used to default missing record dates.
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) {
		r.now = now
	}
}

// NewSQLiteRepository returns a repository for the file at dbPath. Nothing is
// opened until Initialize is called.
func NewSQLiteRepository(dbPath string, opts ...Option) *SQLiteRepository {
	r := &SQLiteRepository{
		path:        dbPath,
		busyTimeout: DefaultBusyTimeout,
		writer:      semaphore.NewWeighted(1),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the database file path.
func (r *SQLiteRepository) Path() string {
	return r.path
}

func (r *SQLiteRepository) dsn() string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", r.path, r.busyTimeout.Milliseconds())
}

// Initialize creates the database file and schema if they are missing. It is
// safe to call on every start.
func (r *SQLiteRepository) Initialize(ctx context.Context) error {
	if err := r.writer.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaInitializationFailed, err)
	}
	defer r.writer.Release(1)

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("%w: %w: create db directory: %w", ErrSchemaInitializationFailed, ErrStorageUnavailable, err)
	}

	err := r.withDB(ctx, RunMigrations)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaInitializationFailed, err)
	}

	slog.InfoContext(ctx, "Ledger schema ready", "path", r.path)
	return nil
}

// Save validates the record, appends it and returns the assigned id. An unset
// date is replaced with today. On any error the returned id is 0.
func (r *SQLiteRepository) Save(ctx context.Context, rec core.Record) (int64, error) {
	if rec.Date.IsEmpty() {
		rec.Date = core.DateOf(r.now())
	}
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	rec = rec.Normalize()

	if err := r.writer.Acquire(ctx, 1); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	defer r.writer.Release(1)

	var id int64
	err := r.withDB(ctx, func(db *sql.DB) error {
		var err error
		id, err = New(db).InsertTransaction(ctx, InsertTransactionParams{
			Kind:     rec.Kind.String(),
			Category: rec.Category,
			Amount:   rec.Amount,
			Date:     rec.Date.String(),
		})
		if err != nil {
			return fmt.Errorf("%w: insert transaction: %w", ErrStorageUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"kind", rec.Kind,
		"category", rec.Category,
		"amount", rec.Amount,
		"date", rec.Date.String())

	return id, nil
}

// LoadAll returns every record ordered by id. An empty ledger yields an empty
// slice. Kinds are returned as stored, even when they are not recognized.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]core.Record, error) {
	records := []core.Record{}
	err := r.withDB(ctx, func(db *sql.DB) error {
		rows, err := New(db).ListTransactions(ctx)
		if err != nil {
			return fmt.Errorf("%w: list transactions: %w", ErrStorageUnavailable, err)
		}

		for _, row := range rows {
			date, err := core.ParseDate(row.Date)
			if err != nil {
				return fmt.Errorf("%w: transaction %d has date %q", ErrCorruptRecord, row.ID, row.Date)
			}
			records = append(records, core.Record{
				ID:       row.ID,
				Kind:     core.Kind(row.Kind),
				Category: row.Category,
				Amount:   row.Amount,
				Date:     date,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// withDB opens the database for the duration of fn and always closes it.
// Closing twice is harmless, so fn may hand db to something that closes it.
func (r *SQLiteRepository) withDB(ctx context.Context, fn func(db *sql.DB) error) (err error) {
	db, err := sql.Open("sqlite", r.dsn())
	if err != nil {
		return fmt.Errorf("%w: open sqlite database: %w", ErrStorageUnavailable, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close sqlite database: %w", ErrStorageUnavailable, cerr)
		}
	}()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping database: %w", ErrStorageUnavailable, err)
	}

	return fn(db)
}
