package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date form used for storage and input.
const DateLayout = "2006-01-02"

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

type (
	Kind string

	// Date is a calendar date. The zero Date is unset, which is distinct
	// from the valid date 0001-01-01.
	Date struct {
		time.Time
		set bool
	}

	// Record is one immutable ledger entry. ID is zero until the store assigns it.
	Record struct {
		ID       int64
		Kind     Kind
		Category string
		Amount   float64
		Date     Date
	}

	// Entry is raw caller input for a new record. Date may be empty.
	Entry struct {
		Kind     string
		Category string
		Amount   string
		Date     string
	}
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidKind   = fmt.Errorf("%w: kind must be Income or Expense", ErrInvalidInput)
	ErrEmptyCategory = fmt.Errorf("%w: empty category", ErrInvalidInput)
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidInput)
	ErrInvalidDate   = fmt.Errorf("%w: date must be a calendar date (YYYY-MM-DD)", ErrInvalidInput)
)

// ParseKind matches s against the known kinds ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is exactly one of the normalized kinds.
func (k Kind) IsValid() bool {
	return k == Income || k == Expense
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), set: true}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string. Out of range values such as
// 2025-02-30 are rejected rather than normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t, set: true}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// IsEmpty reports whether no date was given.
func (d Date) IsEmpty() bool {
	return !d.set
}

func (d Date) Validate() error {
	if d.IsEmpty() {
		return ErrInvalidDate
	}
	return nil
}

// ValidateAmount rejects negative, NaN and infinite amounts. Zero is allowed.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks every field, accepting kind in any letter case.
func (r Record) Validate() error {
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}
	return r.Date.Validate()
}

// Normalize returns a copy with the kind in canonical case. The category is
// kept as given. It does not validate.
func (r Record) Normalize() Record {
	if k, err := ParseKind(string(r.Kind)); err == nil {
		r.Kind = k
	}
	return r
}

// NewRecord builds a validated, normalized record with no ID.
func NewRecord(kind, category string, amount float64, date Date) (Record, error) {
	r := Record{
		Kind:     Kind(kind),
		Category: category,
		Amount:   amount,
		Date:     date,
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r.Normalize(), nil
}

// Record parses the entry. An empty date means today.
func (e Entry) Record(today Date) (Record, error) {
	amount, err := ParseAmount(e.Amount)
	if err != nil {
		return Record{}, err
	}

	date := today
	if strings.TrimSpace(e.Date) != "" {
		date, err = ParseDate(e.Date)
		if err != nil {
			return Record{}, err
		}
	}

	return NewRecord(e.Kind, e.Category, amount, date)
}
