package dsl

// MachineNode represents a parsed machine specification.
type MachineNode struct {
	Context     *ContextNode // nil when the spec declares no context
	States      []*StateNode
	Initial     string
	Events      []*EventNode
	Transitions []*TransitionNode
}

// ContextNode represents a parsed `Context = Type;` declaration.
type ContextNode struct {
	Type string
}

// StateNode represents one entry of a `States {...}` list.
type StateNode struct {
	Name string
	Type string // optional payload type, "" when absent
}

// EventNode represents one entry of an `Events {...}` list.
type EventNode struct {
	Name string
	Type string // optional payload type, "" when absent
}

// PairNode represents a single `from => to` fact.
type PairNode struct {
	From string
	To   string
}

// TransitionNode represents one `EVENT [ from => to, ... ] { code }?` block.
type TransitionNode struct {
	Event string
	Pairs []*PairNode
	Code  string // optional code block captured verbatim, "" when absent
}
