package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsmgen-xyz/go-fsmgen/codegen"
)

const doorSpec = `
States { Open, Close }
InitialState ( Open )
Events { Turn }
Transitions {
    Turn [
        Open => Close,
        Close => Open
    ]
}
`

func TestGenerateFlagsBeforeSpecFile(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "door.fsm")
	out := filepath.Join(dir, "door_machine.go")
	if err := os.WriteFile(spec, []byte(doorSpec), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// The usage examples put flags before the positional spec file; the
	// stdlib flag package stops parsing at the first positional.
	if err := generate([]string{"--package", "door", "--output", out, spec}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(src), "package door\n") {
		t.Errorf("generated source missing package clause:\n%s", src)
	}
}

func TestGenerateMissingSpecFileArg(t *testing.T) {
	err := generate([]string{"--package", "door"})
	if err == nil {
		t.Fatal("generate succeeded without a spec file")
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions("door", "data-only", "panic")
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}
	if opts.PackageName != "door" || opts.Mode != codegen.ModeDataOnly || opts.OnUncovered != codegen.PolicyPanic {
		t.Errorf("parseOptions = %+v", opts)
	}

	if _, err := parseOptions("door", "verbose", "error"); err == nil {
		t.Error("unknown mode accepted")
	}
	if _, err := parseOptions("door", "callbacks", "ignore"); err == nil {
		t.Error("unknown policy accepted")
	}
}
