// Package codegen assembles Go source for a machine specification: state
// and event types, per-source-state resolution types, per-event callback
// interfaces, the machine holder, and the dispatch procedure.
package codegen

import "errors"

// Mode selects the generation protocol.
type Mode int

const (
	// ModeCallbacks generates the two-phase hook protocol: a pre-transition
	// hook per event, an exit hook per source state returning that state's
	// resolution type, and an entry hook per recorded destination.
	ModeCallbacks Mode = iota

	// ModeDataOnly generates transitions as pure data: no callback
	// interfaces, no hook invocations. Dispatch records that a transition
	// is legal and flips the current state.
	ModeDataOnly
)

func (m Mode) String() string {
	switch m {
	case ModeCallbacks:
		return "callbacks"
	case ModeDataOnly:
		return "data-only"
	}
	return "unknown"
}

// Policy selects how generated dispatch treats an event delivered while
// the current state has no recorded transition for it.
type Policy int

const (
	// PolicyError generates a default arm returning a distinct
	// "no such transition" error, leaving the current state untouched.
	PolicyError Policy = iota

	// PolicyPanic generates an irrecoverable abort, matching the strictest
	// reading of the dispatch contract.
	PolicyPanic
)

func (p Policy) String() string {
	switch p {
	case PolicyError:
		return "error"
	case PolicyPanic:
		return "panic"
	}
	return "unknown"
}

// Options configures the code generation engine.
type Options struct {
	// PackageName is the Go package name for the generated source.
	// Defaults to "machine".
	PackageName string

	// Mode selects callback-driven or data-only generation.
	Mode Mode

	// OnUncovered selects the uncovered (state, event) dispatch policy.
	OnUncovered Policy
}

// ErrAmbiguousDestination is reported in data-only mode when one
// (event, source) pair records more than one destination: without an
// exit hook there is nothing to choose between them.
var ErrAmbiguousDestination = errors.New("ambiguous destination in data-only mode")
