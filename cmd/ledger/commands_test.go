package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ledger/internal/core"
	applog "ledger/internal/log"
	"ledger/internal/services"
	"ledger/internal/storage"
)

func newTestService(t *testing.T) *services.LedgerService {
	t.Helper()
	repo := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	var discard bytes.Buffer
	return services.NewLedgerService(repo, applog.New(applog.Config{Writer: &discard}))
}

func run(t *testing.T, svc *services.LedgerService, name string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := runCommand(context.Background(), svc, name, args, &out)
	return out.String(), err
}

func TestAddListSummary(t *testing.T) {
	svc := newTestService(t)

	out, err := run(t, svc, "add", "-kind", "income", "-category", "Salary", "-amount", "100", "-date", "2025-06-01")
	if err != nil || !strings.Contains(out, "Recorded transaction 1") {
		t.Fatalf("add income: out=%q err=%v", out, err)
	}
	if _, err := run(t, svc, "add", "-kind", "Expense", "-category", "Groceries", "-amount", "40", "-date", "2025-06-02"); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	out, err = run(t, svc, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Salary") || strings.Index(out, "Salary") > strings.Index(out, "Groceries") {
		t.Fatalf("unexpected list output:\n%s", out)
	}

	out, err = run(t, svc, "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"Income:  100.00", "Expense: 40.00", "Balance: 60.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	_, err := run(t, svc, "add", "-kind", "Income", "-category", "", "-amount", "10")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	out, _ := run(t, svc, "list")
	if !strings.Contains(out, "No transactions recorded.") {
		t.Fatalf("expected empty ledger, got:\n%s", out)
	}
}

func TestBreakdownAndExport(t *testing.T) {
	svc := newTestService(t)
	for _, args := range [][]string{
		{"-kind", "Expense", "-category", "Rent", "-amount", "500"},
		{"-kind", "Expense", "-category", "Food", "-amount", "20"},
	} {
		if _, err := run(t, svc, "add", args...); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	out, err := run(t, svc, "breakdown")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if strings.Index(out, "Rent") > strings.Index(out, "Food") {
		t.Fatalf("expected largest category first:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	out, err = run(t, svc, "export", "-o", path, "-summary")
	if err != nil || !strings.Contains(out, "Exported 2 transactions") {
		t.Fatalf("export: out=%q err=%v", out, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "# Total Expense,520.00") {
		t.Fatalf("unexpected export:\n%s", data)
	}
}

func TestBreakdownNamesMissingKind(t *testing.T) {
	svc := newTestService(t)
	if _, err := run(t, svc, "add", "-kind", "Income", "-category", "Salary", "-amount", "100"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := run(t, svc, "breakdown")
	if err != nil || strings.TrimSpace(out) != "No Expense transactions recorded." {
		t.Fatalf("breakdown: out=%q err=%v", out, err)
	}
	out, err = run(t, svc, "breakdown", "-kind", "income")
	if err != nil || !strings.Contains(out, "Salary") {
		t.Fatalf("breakdown income: out=%q err=%v", out, err)
	}
}

func TestUnknownCommand(t *testing.T) {
	svc := newTestService(t)
	if _, err := run(t, svc, "delete"); !errors.Is(err, errUnknownCommand) {
		t.Fatalf("expected errUnknownCommand, got %v", err)
	}
}

func TestIsCommand(t *testing.T) {
	for _, name := range []string{"add", "list", "summary", "breakdown", "export"} {
		if !isCommand(name) {
			t.Errorf("%s should be a command", name)
		}
	}
	for _, name := range []string{"delete", "", "help", "ADD"} {
		if isCommand(name) {
			t.Errorf("%q should not be a command", name)
		}
	}
}

func TestIsCommandMatchesDispatch(t *testing.T) {
	svc := newTestService(t)
	for name := range commands {
		if _, err := run(t, svc, name, "-h"); errors.Is(err, errUnknownCommand) {
			t.Errorf("%s is listed but not dispatched", name)
		}
	}
}
