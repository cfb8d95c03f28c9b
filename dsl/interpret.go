package dsl

import (
	"github.com/fsmgen-xyz/go-fsmgen/fsm"
)

// Interpret converts a parsed MachineNode into a validated fsm.Machine.
func Interpret(node *MachineNode) (*fsm.Machine, error) {
	m := &fsm.Machine{Initial: node.Initial}

	if node.Context != nil {
		m.Context = node.Context.Type
	}

	for _, s := range node.States {
		m.States = append(m.States, fsm.State{Name: s.Name, Type: s.Type})
	}

	for _, e := range node.Events {
		m.Events = append(m.Events, fsm.Event{Name: e.Name, Type: e.Type})
	}

	for _, t := range node.Transitions {
		tr := fsm.Transition{Event: t.Event, Code: t.Code}
		for _, p := range t.Pairs {
			tr.Pairs = append(tr.Pairs, fsm.TransitionPair{From: p.From, To: p.To})
		}
		m.Transitions = append(m.Transitions, tr)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// ParseMachine parses specification text and returns a validated
// fsm.Machine. This is a convenience function combining Parse and Interpret.
func ParseMachine(input string) (*fsm.Machine, error) {
	node, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Interpret(node)
}
