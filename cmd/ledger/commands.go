package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"ledger/internal/core"
	"ledger/internal/export"
	"ledger/internal/services"
)

var errUnknownCommand = errors.New("unknown command")

var commands = map[string]bool{
	"add":       true,
	"list":      true,
	"summary":   true,
	"breakdown": true,
	"export":    true,
}

// isCommand reports whether runCommand dispatches name.
func isCommand(name string) bool {
	return commands[name]
}

func runCommand(ctx context.Context, svc *services.LedgerService, name string, args []string, out io.Writer) error {
	switch name {
	case "add":
		return runAdd(ctx, svc, args, out)
	case "list":
		return runList(ctx, svc, out)
	case "summary":
		return runSummary(ctx, svc, out)
	case "breakdown":
		return runBreakdown(ctx, svc, args, out)
	case "export":
		return runExport(ctx, svc, args, out)
	default:
		return errUnknownCommand
	}
}

func runAdd(ctx context.Context, svc *services.LedgerService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(out)
	kind := fs.String("kind", "", "Income or Expense")
	category := fs.String("category", "", "category label, e.g. Groceries")
	amount := fs.String("amount", "", "non-negative amount, dot or comma decimals")
	date := fs.String("date", "", "YYYY-MM-DD, defaults to today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := svc.Record(ctx, core.Entry{
		Kind:     *kind,
		Category: *category,
		Amount:   *amount,
		Date:     *date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Recorded transaction %d\n", id)
	return nil
}

func runList(ctx context.Context, svc *services.LedgerService, out io.Writer) error {
	records, err := svc.Transactions(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No transactions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tKIND\tCATEGORY\tAMOUNT")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Kind, r.Category, core.FormatAmount(r.Amount))
	}
	return tw.Flush()
}

func runSummary(ctx context.Context, svc *services.LedgerService, out io.Writer) error {
	s, err := svc.Summary(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Income:  %s\n", core.FormatAmount(s.TotalIncome))
	fmt.Fprintf(out, "Expense: %s\n", core.FormatAmount(s.TotalExpense))
	fmt.Fprintf(out, "Balance: %s\n", core.FormatAmount(s.Balance))
	return nil
}

func runBreakdown(ctx context.Context, svc *services.LedgerService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("breakdown", flag.ContinueOnError)
	fs.SetOutput(out)
	kind := fs.String("kind", core.Expense.String(), "Income or Expense")
	if err := fs.Parse(args); err != nil {
		return err
	}

	totals, err := svc.Breakdown(ctx, core.Kind(*kind))
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		k, _ := core.ParseKind(*kind)
		fmt.Fprintf(out, "No %s transactions recorded.\n", k)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT")
	for _, c := range totals {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, core.FormatAmount(c.Amount))
	}
	return tw.Flush()
}

func runExport(ctx context.Context, svc *services.LedgerService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(out)
	path := fs.String("o", "", "output file, stdout when empty")
	summary := fs.Bool("summary", false, "append totals after the rows")
	if err := fs.Parse(args); err != nil {
		return err
	}

	records, err := svc.Transactions(ctx)
	if err != nil {
		return err
	}

	w := &export.CSVWriter{IncludeSummary: *summary}
	if *path == "" {
		return w.Write(out, records)
	}
	if err := w.WriteToFile(*path, records); err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported %d transactions to %s\n", len(records), *path)
	return nil
}
