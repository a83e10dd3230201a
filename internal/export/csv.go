package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"ledger/internal/core"
)

// CSVWriter writes ledger records as CSV.
type CSVWriter struct {
	// IncludeSummary appends total income, total expense and balance rows.
	IncludeSummary bool
}

// WriteToFile writes records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, records []core.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file %q: %w", path, cerr)
		}
	}()

	return w.Write(f, records)
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, records []core.Record) error {
	writer := csv.NewWriter(out)

	header := []string{"ID", "Date", "Kind", "Category", "Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Date.String(),
			r.Kind.String(),
			r.Category,
			core.FormatAmount(r.Amount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for transaction %d: %w", r.ID, err)
		}
	}

	if w.IncludeSummary {
		s := core.Summarize(records)
		summary := [][]string{
			{"# Total Income", core.FormatAmount(s.TotalIncome)},
			{"# Total Expense", core.FormatAmount(s.TotalExpense)},
			{"# Balance", core.FormatAmount(s.Balance)},
		}
		for _, row := range summary {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV summary: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
