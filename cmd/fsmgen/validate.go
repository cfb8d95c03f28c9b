package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fsmgen-xyz/go-fsmgen/dsl"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fsmgen validate <spec-file>

Parse a specification and check it for semantic errors: duplicate names,
an undeclared initial state, or transitions referencing undeclared states
or events.
`)
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

	m, err := dsl.ParseMachine(string(spec))
	if err != nil {
		return err
	}

	pairs := 0
	for _, t := range m.Transitions {
		pairs += len(t.Pairs)
	}
	fmt.Printf("OK: %d states, %d events, %d transition pairs, initial %s\n",
		len(m.States), len(m.Events), pairs, m.Initial)
	return nil
}
