package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fsmgen-xyz/go-fsmgen/genlog"
)

func runs(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	logPath := fs.String("log", "", "SQLite generation log (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fsmgen runs --log <db>

List recorded generation runs, oldest first.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *logPath == "" {
		fs.Usage()
		return fmt.Errorf("--log required")
	}

	store, err := genlog.NewSQLiteStore(*logPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background())
	if err != nil {
		return err
	}

	for _, run := range entries {
		fmt.Printf("%s  %s  pkg=%s mode=%s policy=%s spec=%.12s out=%.12s\n",
			run.CreatedAt.Format(time.RFC3339), run.ID,
			run.Package, run.Mode, run.Policy, run.SpecHash, run.OutputHash)
	}
	return nil
}
