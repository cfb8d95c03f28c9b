package dsl

import (
	"github.com/fsmgen-xyz/go-fsmgen/fsm"
)

// Builder provides a fluent API for constructing machine specifications
// programmatically, producing the same AST as parsing the textual grammar.
type Builder struct {
	node *MachineNode

	// Track current transition for modifier methods
	currentTransition *TransitionNode
}

// Build creates a new machine specification builder.
func Build() *Builder {
	return &Builder{
		node: &MachineNode{
			States:      make([]*StateNode, 0),
			Events:      make([]*EventNode, 0),
			Transitions: make([]*TransitionNode, 0),
		},
	}
}

// Context sets the machine context type.
func (b *Builder) Context(typ string) *Builder {
	b.node.Context = &ContextNode{Type: typ}
	return b
}

// State adds a declared state with an optional payload type.
func (b *Builder) State(name string, typ ...string) *Builder {
	b.currentTransition = nil
	state := &StateNode{Name: name}
	if len(typ) > 0 {
		state.Type = typ[0]
	}
	b.node.States = append(b.node.States, state)
	return b
}

// Event adds a declared event with an optional payload type.
func (b *Builder) Event(name string, typ ...string) *Builder {
	b.currentTransition = nil
	event := &EventNode{Name: name}
	if len(typ) > 0 {
		event.Type = typ[0]
	}
	b.node.Events = append(b.node.Events, event)
	return b
}

// Initial sets the initial state.
func (b *Builder) Initial(name string) *Builder {
	b.node.Initial = name
	return b
}

// Transition starts a transition block for the given event.
// Use Pair() to add transition facts and Code() for an inline block.
func (b *Builder) Transition(event string) *Builder {
	t := &TransitionNode{Event: event}
	b.node.Transitions = append(b.node.Transitions, t)
	b.currentTransition = t
	return b
}

// Pair adds a `from => to` fact to the current transition.
// Must be called after Transition().
func (b *Builder) Pair(from, to string) *Builder {
	if b.currentTransition != nil {
		b.currentTransition.Pairs = append(b.currentTransition.Pairs, &PairNode{From: from, To: to})
	}
	return b
}

// Code attaches an opaque code block to the current transition.
// Must be called after Transition().
func (b *Builder) Code(code string) *Builder {
	if b.currentTransition != nil {
		b.currentTransition.Code = code
	}
	return b
}

// AST returns the underlying AST node.
// Useful for rendering or inspection.
func (b *Builder) AST() *MachineNode {
	return b.node
}

// Machine builds and returns the validated fsm.Machine.
// Returns an error if validation fails.
func (b *Builder) Machine() (*fsm.Machine, error) {
	return Interpret(b.node)
}

// MustMachine builds and returns the fsm.Machine.
// Panics if validation fails.
func (b *Builder) MustMachine() *fsm.Machine {
	m, err := b.Machine()
	if err != nil {
		panic(err)
	}
	return m
}

// String renders the specification as canonical source text.
func (b *Builder) String() string {
	return Render(b.node)
}
