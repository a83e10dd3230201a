// Package memory is a process-local ledger with the same validation and
// ordering rules as the SQLite store. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"ledger/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Record
	now    func() time.Time
}

func New() *Store {
	return &Store{nextID: 1, now: time.Now}
}

// NewWithClock returns a store that defaults missing dates using now.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

// Initialize is a no-op; there is no schema to create.
func (s *Store) Initialize(_ context.Context) error {
	return nil
}

// Save validates and appends the record, returning its id.
func (s *Store) Save(_ context.Context, r core.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Date.IsEmpty() {
		r.Date = core.DateOf(s.now())
	}
	if err := r.Validate(); err != nil {
		return 0, err
	}
	r = r.Normalize()
	r.ID = s.nextID
	s.nextID++
	s.items = append(s.items, r)
	return r.ID, nil
}

// LoadAll returns a copy of every record in insertion order.
func (s *Store) LoadAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record{}, s.items...), nil
}
