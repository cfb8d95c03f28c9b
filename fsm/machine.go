// Package fsm defines the semantic model for a machine specification and
// the grouping of its transition facts into a dispatch table.
package fsm

import (
	"errors"
	"fmt"
)

// Validation errors. Match with errors.Is.
var (
	ErrDuplicateName    = errors.New("duplicate declared name")
	ErrUnknownState     = errors.New("unknown state")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrNoInitialState   = errors.New("missing initial state")
	ErrNoDeclaredStates = errors.New("no declared states")
)

// State is a declared state, optionally carrying a payload type.
type State struct {
	Name string
	Type string // "" for unit-like states
}

// Event is a declared event, optionally carrying a payload type.
type Event struct {
	Name string
	Type string // "" for unit-like events
}

// TransitionPair is a single `(from, to)` fact scoped to one event.
type TransitionPair struct {
	From string
	To   string
}

// Transition is one event's full set of transition pairs plus an optional
// inline code block carried verbatim from the specification.
type Transition struct {
	Event string
	Pairs []TransitionPair
	Code  string
}

// Machine is the root semantic model: everything code generation needs.
// It is constructed once per compilation and immutable thereafter.
type Machine struct {
	Context     string // context type, "" when the spec declares none
	States      []State
	Events      []Event
	Initial     string
	Transitions []Transition
}

// HasState reports whether name is a declared state.
func (m *Machine) HasState(name string) bool {
	for _, s := range m.States {
		if s.Name == name {
			return true
		}
	}
	return false
}

// HasEvent reports whether name is a declared event.
func (m *Machine) HasEvent(name string) bool {
	for _, e := range m.Events {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the machine for semantic errors before code generation:
// duplicate state or event names, an initial state outside the declared
// state set, and transitions referencing undeclared states or events.
// Colliding names would otherwise surface as invalid generated code.
func (m *Machine) Validate() error {
	if len(m.States) == 0 {
		return ErrNoDeclaredStates
	}

	seen := make(map[string]bool, len(m.States))
	for _, s := range m.States {
		if seen[s.Name] {
			return fmt.Errorf("%w: state %q", ErrDuplicateName, s.Name)
		}
		seen[s.Name] = true
	}

	seen = make(map[string]bool, len(m.Events))
	for _, e := range m.Events {
		if seen[e.Name] {
			return fmt.Errorf("%w: event %q", ErrDuplicateName, e.Name)
		}
		seen[e.Name] = true
	}

	if m.Initial == "" {
		return ErrNoInitialState
	}
	if !m.HasState(m.Initial) {
		return fmt.Errorf("%w: initial state %q", ErrUnknownState, m.Initial)
	}

	for _, t := range m.Transitions {
		if !m.HasEvent(t.Event) {
			return fmt.Errorf("%w: transition event %q", ErrUnknownEvent, t.Event)
		}
		for _, p := range t.Pairs {
			if !m.HasState(p.From) {
				return fmt.Errorf("%w: %q in transition %q", ErrUnknownState, p.From, t.Event)
			}
			if !m.HasState(p.To) {
				return fmt.Errorf("%w: %q in transition %q", ErrUnknownState, p.To, t.Event)
			}
		}
	}

	return nil
}
