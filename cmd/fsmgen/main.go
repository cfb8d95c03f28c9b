package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		if err := generate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "render":
		if err := render(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "runs":
		if err := runs(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("fsmgen version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fsmgen - state machine compiler

Usage:
  fsmgen <command> [options]

Commands:
  generate   Generate Go source from a machine specification
  validate   Parse and validate a specification
  render     Re-render a specification in canonical form
  runs       List recorded generation runs
  help       Show this help message
  version    Show version information

Examples:
  # Generate the machine implementation
  fsmgen generate --package door --output door_machine.go door.fsm

  # Data-only generation with the strict uncovered-pair policy
  fsmgen generate --mode data-only --on-uncovered panic door.fsm

  # Check a specification without generating
  fsmgen validate door.fsm

  # Inspect the generation log
  fsmgen runs --log fsmgen.db

For command-specific help, run:
  fsmgen <command> --help`)
}
