package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"ledger/internal/cli"
	applog "ledger/internal/log"
	"ledger/internal/services"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "help", "-h", "--help":
		printUsage()
		return
	}
	if !isCommand(os.Args[1]) {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	cli.LoadEnvFile()

	// Config is read before the level is known, so bootstrap at info first.
	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	ctx, cancel := cli.SignalContext()
	defer cancel()

	// Schema must exist before any command runs.
	b := cli.InitBackend(ctx, logger, cfg)
	svc := services.NewLedgerService(b, logger)

	err := runCommand(ctx, svc, os.Args[1], os.Args[2:], os.Stdout)
	if errors.Is(err, errUnknownCommand) {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "Command failed",
			applog.NewFields().
				WithOperation(os.Args[1]).
				WithError(err).
				WithErrorType(services.ErrorType(err)).
				ToSlice()...)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Ledger - local income and expense tracker")
	fmt.Println("\nUsage:")
	fmt.Println("  ledger <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  add        Record a transaction (-kind, -category, -amount, optional -date)")
	fmt.Println("  list       Show every transaction in insertion order")
	fmt.Println("  summary    Show total income, total expense and balance")
	fmt.Println("  breakdown  Show totals per category (-kind, default Expense)")
	fmt.Println("  export     Write all transactions as CSV (-o file, default stdout)")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nEnvironment:")
	fmt.Println("  LEDGER_DB_PATH       database file (default ./data/ledger.db)")
	fmt.Println("  DATA_BACKEND         sqlite or memory (default sqlite)")
	fmt.Println("  LOG_LEVEL            debug, info, warn or error (default info)")
	fmt.Println("  LEDGER_BUSY_TIMEOUT  wait on a locked database (default 5s)")
}
