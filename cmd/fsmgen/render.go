package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fsmgen-xyz/go-fsmgen/dsl"
)

func render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fsmgen render [options] <spec-file>

Parse a specification and re-render it in canonical form. Rendering is
stable: rendering the same specification twice yields identical text.

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

	spec, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	node, err := dsl.Parse(string(spec))
	if err != nil {
		return err
	}

	text := dsl.Render(node)
	if *output == "" {
		fmt.Print(text)
		return nil
	}
	return os.WriteFile(*output, []byte(text), 0o644)
}
