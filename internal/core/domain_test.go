package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"Income", Income, true},
		{"income", Income, true},
		{"INCOME", Income, true},
		{" Expense ", Expense, true},
		{"expense", Expense, true},
		{"", "", false},
		{"refund", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidKind) || !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%q expected ErrInvalidKind, got %v", tc.in, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-01-01", true},
		{"2024-02-29", true},
		{"2025-02-29", false},
		{"2025-13-01", false},
		{"2025-1-1", false},
		{"01/02/2025", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || d.String() != tc.in {
				t.Fatalf("%q expected ok, got %v (err=%v)", tc.in, d, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestDateOf(t *testing.T) {
	at := time.Date(2025, 3, 9, 23, 59, 0, 0, time.FixedZone("X", 5*3600))
	if got := DateOf(at).String(); got != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %s", got)
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{Kind: "income", Category: "Salary", Amount: 100, Date: NewDate(2025, 1, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	zero := Record{Kind: Expense, Category: "Gift", Amount: 0, Date: NewDate(2025, 1, 1)}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should be valid, got %v", err)
	}

	bads := []struct {
		r    Record
		want error
	}{
		{Record{Kind: "refund", Category: "c", Amount: 1, Date: NewDate(2025, 1, 1)}, ErrInvalidKind},
		{Record{Kind: Income, Category: "  ", Amount: 1, Date: NewDate(2025, 1, 1)}, ErrEmptyCategory},
		{Record{Kind: Income, Category: "c", Amount: -5, Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Record{Kind: Income, Category: "c", Amount: math.NaN(), Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Record{Kind: Income, Category: "c", Amount: math.Inf(1), Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Record{Kind: Income, Category: "c", Amount: 1}, ErrInvalidDate},
	}
	for i, tc := range bads {
		err := tc.r.Validate()
		if !errors.Is(err, tc.want) || !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestNewRecordNormalizes(t *testing.T) {
	r, err := NewRecord("EXPENSE", "  Groceries ", 12.5, NewDate(2025, 5, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kind != Expense || r.Category != "  Groceries " || r.ID != 0 {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestDateIsEmpty(t *testing.T) {
	if !(Date{}).IsEmpty() {
		t.Fatal("zero Date should be empty")
	}
	first := NewDate(1, 1, 1)
	if first.IsEmpty() || first.Validate() != nil {
		t.Fatalf("0001-01-01 should be a valid date, got empty=%v err=%v", first.IsEmpty(), first.Validate())
	}
	parsed, err := ParseDate("0001-01-01")
	if err != nil || parsed.IsEmpty() || !parsed.Equal(first.Time) {
		t.Fatalf("expected %v, got %v (err=%v)", first, parsed, err)
	}
}

func TestEntryRecord(t *testing.T) {
	today := NewDate(2025, 6, 15)

	r, err := Entry{Kind: "income", Category: "Salary", Amount: "1500,50"}.Record(today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kind != Income || r.Amount != 1500.5 || r.Date.String() != "2025-06-15" {
		t.Fatalf("unexpected record: %+v", r)
	}

	r, err = Entry{Kind: "Expense", Category: "Rent", Amount: "800", Date: "2025-06-01"}.Record(today)
	if err != nil || r.Date.String() != "2025-06-01" {
		t.Fatalf("expected explicit date, got %+v (err=%v)", r, err)
	}

	r, err = Entry{Kind: "Income", Category: "Opening", Amount: "1", Date: "0001-01-01"}.Record(today)
	if err != nil || r.Date.String() != "0001-01-01" {
		t.Fatalf("expected 0001-01-01, got %+v (err=%v)", r, err)
	}

	bads := []struct {
		e    Entry
		want error
	}{
		{Entry{Kind: "Income", Category: "", Amount: "10"}, ErrEmptyCategory},
		{Entry{Kind: "Income", Category: "c", Amount: "-5"}, ErrInvalidAmount},
		{Entry{Kind: "Income", Category: "c", Amount: "ten"}, ErrInvalidAmount},
		{Entry{Kind: "Transfer", Category: "c", Amount: "1"}, ErrInvalidKind},
		{Entry{Kind: "Income", Category: "c", Amount: "1", Date: "2025-02-30"}, ErrInvalidDate},
	}
	for i, tc := range bads {
		if _, err := tc.e.Record(today); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}
