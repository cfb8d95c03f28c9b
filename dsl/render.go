package dsl

import "strings"

// Render emits the canonical source text for a machine specification.
// Rendering is stable: the same AST always produces the same text, and
// parsing the rendered text reproduces the AST.
func Render(m *MachineNode) string {
	var b strings.Builder

	if m.Context != nil {
		b.WriteString(m.Context.Render())
		b.WriteString("\n\n")
	}

	b.WriteString("States {\n")
	for i, s := range m.States {
		b.WriteString("    " + s.Render())
		if i < len(m.States)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")

	b.WriteString("InitialState ( " + m.Initial + " )\n\n")

	b.WriteString("Events {\n")
	for i, e := range m.Events {
		b.WriteString("    " + e.Render())
		if i < len(m.Events)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	if len(m.Transitions) > 0 {
		b.WriteString("\nTransitions {\n")
		for i, t := range m.Transitions {
			b.WriteString(t.Render())
			if i < len(m.Transitions)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("}\n")
	}

	return b.String()
}

// Render emits `Context = Type;`.
func (c *ContextNode) Render() string {
	return "Context = " + c.Type + ";"
}

// Render emits `Name` or `Name = Type`.
func (s *StateNode) Render() string {
	if s.Type != "" {
		return s.Name + " = " + s.Type
	}
	return s.Name
}

// Render emits `Name` or `Name = Type`.
func (e *EventNode) Render() string {
	if e.Type != "" {
		return e.Name + " = " + e.Type
	}
	return e.Name
}

// Render emits `from => to`.
func (p *PairNode) Render() string {
	return p.From + " => " + p.To
}

// Render emits one transition block. The code block, when present, is
// re-emitted verbatim as captured.
func (t *TransitionNode) Render() string {
	var b strings.Builder
	b.WriteString("    " + t.Event + " [")
	if len(t.Pairs) > 0 {
		b.WriteString("\n")
		for i, p := range t.Pairs {
			b.WriteString("        " + p.Render())
			if i < len(t.Pairs)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("    ")
	}
	b.WriteString("]")
	if t.Code != "" {
		b.WriteString(" {" + t.Code + "}")
	}
	return b.String()
}
