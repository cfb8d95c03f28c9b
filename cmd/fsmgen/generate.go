package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fsmgen-xyz/go-fsmgen/codegen"
	"github.com/fsmgen-xyz/go-fsmgen/genlog"
)

func generate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	pkg := fs.String("package", "machine", "Package name for the generated source")
	mode := fs.String("mode", "callbacks", "Generation mode: callbacks or data-only")
	policy := fs.String("on-uncovered", "error", "Uncovered (state,event) policy: error or panic")
	logPath := fs.String("log", "", "Record the run in a SQLite generation log")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fsmgen generate [options] <spec-file>

Generate Go source implementing the machine described by a specification.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("spec file required")
	}

	opts, err := parseOptions(*pkg, *mode, *policy)
	if err != nil {
		return err
	}

	spec, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	src, err := codegen.Compile(string(spec), opts)
	if err != nil {
		return err
	}

	if *logPath != "" {
		store, err := genlog.NewSQLiteStore(*logPath)
		if err != nil {
			return err
		}
		defer store.Close()

		run := genlog.NewRun(string(spec), src, opts.PackageName, opts.Mode.String(), opts.OnUncovered.String())
		if err := store.Append(context.Background(), run); err != nil {
			return err
		}
	}

	if *output == "" {
		fmt.Print(src)
		return nil
	}
	return os.WriteFile(*output, []byte(src), 0o644)
}

func parseOptions(pkg, mode, policy string) (codegen.Options, error) {
	opts := codegen.Options{PackageName: pkg}

	switch mode {
	case "callbacks":
		opts.Mode = codegen.ModeCallbacks
	case "data-only":
		opts.Mode = codegen.ModeDataOnly
	default:
		return opts, fmt.Errorf("unknown mode %q (callbacks or data-only)", mode)
	}

	switch policy {
	case "error":
		opts.OnUncovered = codegen.PolicyError
	case "panic":
		opts.OnUncovered = codegen.PolicyPanic
	default:
		return opts, fmt.Errorf("unknown policy %q (error or panic)", policy)
	}

	return opts, nil
}
