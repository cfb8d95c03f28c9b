package codegen

import (
	"fmt"
	"strings"

	"github.com/fsmgen-xyz/go-fsmgen/fsm"
	"github.com/fsmgen-xyz/go-fsmgen/naming"
)

// Generate produces the Go source implementing a validated machine
// specification. Generation is deterministic: identical specifications and
// options yield byte-identical output. Any error yields no output at all.
func Generate(m *fsm.Machine, opts Options) (string, error) {
	if opts.PackageName == "" {
		opts.PackageName = "machine"
	}
	if err := m.Validate(); err != nil {
		return "", err
	}

	g := &generator{
		m:      m,
		table:  fsm.Group(m.Transitions),
		opts:   opts,
		idents: naming.NewRegistry(),
		hooks:  naming.NewRegistry(),
		fields: naming.NewRegistry(),
	}

	if opts.Mode == ModeDataOnly {
		for _, event := range g.table.Events() {
			for _, from := range g.table.Sources(event) {
				if dests := g.table.Dests(event, from); len(dests) > 1 {
					return "", fmt.Errorf("%w: event %q from %q reaches %s",
						ErrAmbiguousDestination, event, from, strings.Join(dests, ", "))
				}
			}
		}
	}

	if err := g.claim(); err != nil {
		return "", err
	}

	return g.generate(), nil
}

type generator struct {
	m     *fsm.Machine
	table *fsm.Table
	opts  Options

	// Separate identifier namespaces: package-level declarations, hook
	// method names, and machine struct fields.
	idents *naming.Registry
	hooks  *naming.Registry
	fields *naming.Registry
}

// claim registers every derived identifier before emission so that
// colliding derivations surface as a generation error instead of invalid
// generated code.
func (g *generator) claim() error {
	for _, name := range []string{"State", "Event", "Machine", "NewMachine"} {
		if err := g.idents.Claim(name, "generated scaffolding"); err != nil {
			return err
		}
	}
	if g.opts.OnUncovered == PolicyError {
		if err := g.idents.Claim("errNoSuchTransition", "generated scaffolding"); err != nil {
			return err
		}
	}

	for _, s := range g.m.States {
		if err := g.idents.Claim(naming.StateConst(s.Name), "state "+s.Name); err != nil {
			return err
		}
	}
	for _, e := range g.m.Events {
		if err := g.idents.Claim(naming.EventConst(e.Name), "event "+e.Name); err != nil {
			return err
		}
	}

	if err := g.fields.Claim("current", "generated scaffolding"); err != nil {
		return err
	}
	if g.m.Context != "" {
		if err := g.fields.Claim("context", "generated scaffolding"); err != nil {
			return err
		}
	}

	for _, s := range g.m.States {
		if s.Type == "" {
			continue
		}
		if err := g.fields.Claim(naming.PayloadField(s.Name), "state "+s.Name); err != nil {
			return err
		}
		if err := g.idents.Claim(naming.PayloadAccessor(s.Name), "state "+s.Name); err != nil {
			return err
		}
	}
	for _, e := range g.m.Events {
		if e.Type == "" {
			continue
		}
		if err := g.fields.Claim(naming.PayloadField(e.Name), "event "+e.Name); err != nil {
			return err
		}
		if err := g.idents.Claim(naming.PayloadAccessor(e.Name), "event "+e.Name); err != nil {
			return err
		}
	}

	if g.opts.Mode == ModeDataOnly {
		return nil
	}

	for _, from := range g.table.AllSources() {
		if err := g.idents.Claim(naming.ResolutionType(from), "state "+from); err != nil {
			return err
		}
		if err := g.hooks.Claim(naming.ExitHook(from), "state "+from); err != nil {
			return err
		}
		for _, to := range g.table.UnionDests(from) {
			if err := g.idents.Claim(naming.ResolutionConst(from, to), "transition "+from+" => "+to); err != nil {
				return err
			}
			if err := g.hooks.Claim(naming.EntryHook(from, to), "transition "+from+" => "+to); err != nil {
				return err
			}
		}
	}

	for _, event := range g.table.Events() {
		if err := g.idents.Claim(naming.CallbackInterface(event), "event "+event); err != nil {
			return err
		}
		if err := g.hooks.Claim(naming.PreHook(event), "event "+event); err != nil {
			return err
		}
		if err := g.fields.Claim(naming.Snake(event), "event "+event); err != nil {
			return err
		}
	}

	return nil
}

func (g *generator) generate() string {
	var b strings.Builder

	b.WriteString(g.generateHeader())
	b.WriteString(g.generateStateType())
	b.WriteString(g.generateEventType())
	if g.opts.OnUncovered == PolicyError {
		b.WriteString(g.generateDispatchError())
	}
	if g.opts.Mode == ModeCallbacks {
		b.WriteString(g.generateResolutionTypes())
		b.WriteString(g.generateCallbackInterfaces())
	}
	b.WriteString(g.generateMachine())
	b.WriteString(g.generateDispatch())

	return b.String()
}

func (g *generator) generateHeader() string {
	var b strings.Builder

	b.WriteString("// Code generated by fsmgen. DO NOT EDIT.\n")
	b.WriteString("//\n")
	b.WriteString("// The generated Machine is single-threaded by contract: dispatch mutates\n")
	b.WriteString("// the current state with no internal synchronization. Guard it externally\n")
	b.WriteString("// before invoking it from more than one goroutine.\n\n")
	b.WriteString(fmt.Sprintf("package %s\n\n", g.opts.PackageName))

	if g.opts.OnUncovered == PolicyError {
		b.WriteString("import \"errors\"\n\n")
	}

	return b.String()
}

func (g *generator) generateStateType() string {
	var b strings.Builder

	b.WriteString("// State enumerates the declared machine states.\n")
	b.WriteString("type State int\n\n")
	b.WriteString("const (\n")
	for i, s := range g.m.States {
		if i == 0 {
			b.WriteString(fmt.Sprintf("\t%s State = iota\n", naming.StateConst(s.Name)))
		} else {
			b.WriteString(fmt.Sprintf("\t%s\n", naming.StateConst(s.Name)))
		}
	}
	b.WriteString(")\n\n")

	b.WriteString("// String returns the declared state name.\n")
	b.WriteString("func (s State) String() string {\n")
	b.WriteString("\tswitch s {\n")
	for _, s := range g.m.States {
		b.WriteString(fmt.Sprintf("\tcase %s:\n", naming.StateConst(s.Name)))
		b.WriteString(fmt.Sprintf("\t\treturn %q\n", s.Name))
	}
	b.WriteString("\t}\n")
	b.WriteString("\treturn \"State(invalid)\"\n")
	b.WriteString("}\n\n")

	return b.String()
}

func (g *generator) generateEventType() string {
	var b strings.Builder

	b.WriteString("// Event enumerates the declared machine events.\n")
	b.WriteString("type Event int\n\n")
	b.WriteString("const (\n")
	for i, e := range g.m.Events {
		if i == 0 {
			b.WriteString(fmt.Sprintf("\t%s Event = iota\n", naming.EventConst(e.Name)))
		} else {
			b.WriteString(fmt.Sprintf("\t%s\n", naming.EventConst(e.Name)))
		}
	}
	b.WriteString(")\n\n")

	b.WriteString("// String returns the declared event name.\n")
	b.WriteString("func (e Event) String() string {\n")
	b.WriteString("\tswitch e {\n")
	for _, e := range g.m.Events {
		b.WriteString(fmt.Sprintf("\tcase %s:\n", naming.EventConst(e.Name)))
		b.WriteString(fmt.Sprintf("\t\treturn %q\n", e.Name))
	}
	b.WriteString("\t}\n")
	b.WriteString("\treturn \"Event(invalid)\"\n")
	b.WriteString("}\n\n")

	return b.String()
}

func (g *generator) generateDispatchError() string {
	var b strings.Builder

	b.WriteString("// errNoSuchTransition reports an event delivered while the current state\n")
	b.WriteString("// has no recorded transition for it. The state is left untouched.\n")
	b.WriteString("var errNoSuchTransition = errors.New(\"no such transition\")\n\n")

	return b.String()
}

// generateResolutionTypes emits one closed destination set per source
// state: the only values its exit hook can return, and therefore the only
// states a dispatch arm can move to.
func (g *generator) generateResolutionTypes() string {
	var b strings.Builder

	for _, from := range g.table.AllSources() {
		typ := naming.ResolutionType(from)
		dests := g.table.UnionDests(from)

		b.WriteString(fmt.Sprintf("// %s enumerates the destination states legally reachable\n", typ))
		b.WriteString(fmt.Sprintf("// when exiting %s.\n", from))
		b.WriteString(fmt.Sprintf("type %s int\n\n", typ))
		b.WriteString("const (\n")
		for i, to := range dests {
			if i == 0 {
				b.WriteString(fmt.Sprintf("\t%s %s = iota\n", naming.ResolutionConst(from, to), typ))
			} else {
				b.WriteString(fmt.Sprintf("\t%s\n", naming.ResolutionConst(from, to)))
			}
		}
		b.WriteString(")\n\n")

		b.WriteString("// String returns the destination state name.\n")
		b.WriteString(fmt.Sprintf("func (r %s) String() string {\n", typ))
		b.WriteString("\tswitch r {\n")
		for _, to := range dests {
			b.WriteString(fmt.Sprintf("\tcase %s:\n", naming.ResolutionConst(from, to)))
			b.WriteString(fmt.Sprintf("\t\treturn %q\n", to))
		}
		b.WriteString("\t}\n")
		b.WriteString(fmt.Sprintf("\treturn %q\n", typ+"(invalid)"))
		b.WriteString("}\n\n")
	}

	return b.String()
}

// hookParams returns the parameter list shared by every generated hook:
// empty for context-free machines, a context pointer otherwise.
func (g *generator) hookParams() string {
	if g.m.Context == "" {
		return ""
	}
	return "ctx *" + g.m.Context
}

// hookArgs returns the matching call arguments.
func (g *generator) hookArgs() string {
	if g.m.Context == "" {
		return ""
	}
	return "&m.context"
}

func (g *generator) generateCallbackInterfaces() string {
	var b strings.Builder
	params := g.hookParams()

	for _, event := range g.table.Events() {
		b.WriteString(fmt.Sprintf("// %s supplies the hooks invoked when dispatching %s:\n", naming.CallbackInterface(event), event))
		b.WriteString("// the pre-transition hook, one exit hook per source state returning that\n")
		b.WriteString("// state's resolution value, and one entry hook per recorded destination.\n")
		b.WriteString(fmt.Sprintf("type %s interface {\n", naming.CallbackInterface(event)))
		b.WriteString(fmt.Sprintf("\t%s(%s) error\n", naming.PreHook(event), params))
		for _, from := range g.table.Sources(event) {
			b.WriteString(fmt.Sprintf("\t%s(%s) (%s, error)\n", naming.ExitHook(from), params, naming.ResolutionType(from)))
			for _, to := range g.table.Dests(event, from) {
				b.WriteString(fmt.Sprintf("\t%s(%s)\n", naming.EntryHook(from, to), params))
			}
		}
		b.WriteString("}\n\n")
	}

	return b.String()
}

func (g *generator) generateMachine() string {
	var b strings.Builder

	type field struct{ name, typ string }
	fields := []field{{"current", "State"}}
	if g.m.Context != "" {
		fields = append(fields, field{"context", g.m.Context})
	}
	for _, s := range g.m.States {
		if s.Type != "" {
			fields = append(fields, field{naming.PayloadField(s.Name), s.Type})
		}
	}
	for _, e := range g.m.Events {
		if e.Type != "" {
			fields = append(fields, field{naming.PayloadField(e.Name), e.Type})
		}
	}
	if g.opts.Mode == ModeCallbacks {
		for _, event := range g.table.Events() {
			fields = append(fields, field{naming.Snake(event), naming.CallbackInterface(event)})
		}
	}

	width := 0
	for _, f := range fields {
		if len(f.name) > width {
			width = len(f.name)
		}
	}

	switch {
	case g.m.Context != "" && g.opts.Mode == ModeCallbacks:
		b.WriteString("// Machine holds the current state, the declared context, and the\n")
		b.WriteString("// callback hooks supplied at construction.\n")
	case g.opts.Mode == ModeCallbacks:
		b.WriteString("// Machine holds the current state and the callback hooks supplied at\n")
		b.WriteString("// construction.\n")
	case g.m.Context != "":
		b.WriteString("// Machine holds the current state and the declared context.\n")
	default:
		b.WriteString("// Machine holds the current state.\n")
	}
	b.WriteString("type Machine struct {\n")
	for _, f := range fields {
		b.WriteString(fmt.Sprintf("\t%-*s %s\n", width, f.name, f.typ))
	}
	b.WriteString("}\n\n")

	var params []string
	if g.opts.Mode == ModeCallbacks {
		for _, event := range g.table.Events() {
			params = append(params, naming.Snake(event)+" "+naming.CallbackInterface(event))
		}
	}

	if g.m.Context != "" {
		b.WriteString("// NewMachine creates a Machine in the declared initial state with a\n")
		b.WriteString("// zero-valued context.\n")
	} else {
		b.WriteString("// NewMachine creates a Machine in the declared initial state.\n")
	}
	b.WriteString(fmt.Sprintf("func NewMachine(%s) *Machine {\n", strings.Join(params, ", ")))
	b.WriteString("\treturn &Machine{\n")
	b.WriteString(fmt.Sprintf("\t\t%-*s %s,\n", width+1, "current:", naming.StateConst(g.m.Initial)))
	if g.opts.Mode == ModeCallbacks {
		for _, event := range g.table.Events() {
			name := naming.Snake(event)
			b.WriteString(fmt.Sprintf("\t\t%-*s %s,\n", width+1, name+":", name))
		}
	}
	b.WriteString("\t}\n")
	b.WriteString("}\n\n")

	b.WriteString("// State returns the current state.\n")
	b.WriteString("func (m *Machine) State() State {\n")
	b.WriteString("\treturn m.current\n")
	b.WriteString("}\n\n")

	if g.m.Context != "" {
		b.WriteString("// Context returns the machine context.\n")
		b.WriteString("func (m *Machine) Context() *" + g.m.Context + " {\n")
		b.WriteString("\treturn &m.context\n")
		b.WriteString("}\n\n")
	}

	// Payload accessors. Payload values are zero-valued at construction;
	// hooks read and update them through these.
	for _, s := range g.m.States {
		if s.Type != "" {
			b.WriteString(g.generatePayloadAccessor("state", s.Name, s.Type))
		}
	}
	for _, e := range g.m.Events {
		if e.Type != "" {
			b.WriteString(g.generatePayloadAccessor("event", e.Name, e.Type))
		}
	}

	return b.String()
}

func (g *generator) generatePayloadAccessor(kind, name, typ string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("// %s returns the payload value declared for %s %s.\n",
		naming.PayloadAccessor(name), kind, name))
	b.WriteString(fmt.Sprintf("func (m *Machine) %s() *%s {\n", naming.PayloadAccessor(name), typ))
	b.WriteString(fmt.Sprintf("\treturn &m.%s\n", naming.PayloadField(name)))
	b.WriteString("}\n\n")

	return b.String()
}

func (g *generator) generateDispatch() string {
	var b strings.Builder

	if g.opts.Mode == ModeCallbacks {
		b.WriteString("// Event dispatches an event against the current state. The event's\n")
		b.WriteString("// pre-transition hook runs first; its error aborts dispatch. The current\n")
		b.WriteString("// state's exit hook then selects a declared destination; the state moves\n")
		b.WriteString("// and the matching entry hook runs. On any hook error the current state\n")
		b.WriteString("// is unchanged.\n")
	} else {
		b.WriteString("// Event dispatches an event against the current state, moving to the\n")
		b.WriteString("// recorded destination when the transition is declared.\n")
	}
	b.WriteString("func (m *Machine) Event(e Event) (bool, error) {\n")
	b.WriteString("\tswitch e {\n")

	for _, event := range g.table.Events() {
		b.WriteString(fmt.Sprintf("\tcase %s:\n", naming.EventConst(event)))
		if g.opts.Mode == ModeCallbacks {
			b.WriteString(g.generateEventCase(event))
		} else {
			b.WriteString(g.generateDataEventCase(event))
		}
	}

	b.WriteString("\tdefault:\n")
	b.WriteString(g.uncoveredArm("\t\t", "\"no transition on \" + e.String()"))
	b.WriteString("\t}\n")
	b.WriteString("}\n")

	return b.String()
}

// generateEventCase emits the state branch for one event in callback mode.
func (g *generator) generateEventCase(event string) string {
	var b strings.Builder
	cb := "m." + naming.Snake(event)
	args := g.hookArgs()

	b.WriteString(fmt.Sprintf("\t\tif err := %s.%s(%s); err != nil {\n", cb, naming.PreHook(event), args))
	b.WriteString("\t\t\treturn false, err\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t\tswitch m.current {\n")

	for _, from := range g.table.Sources(event) {
		b.WriteString(fmt.Sprintf("\t\tcase %s:\n", naming.StateConst(from)))
		b.WriteString(fmt.Sprintf("\t\t\tr, err := %s.%s(%s)\n", cb, naming.ExitHook(from), args))
		b.WriteString("\t\t\tif err != nil {\n")
		b.WriteString("\t\t\t\treturn false, err\n")
		b.WriteString("\t\t\t}\n")
		b.WriteString("\t\t\tswitch r {\n")
		for _, to := range g.table.Dests(event, from) {
			b.WriteString(fmt.Sprintf("\t\t\tcase %s:\n", naming.ResolutionConst(from, to)))
			b.WriteString(fmt.Sprintf("\t\t\t\tm.current = %s\n", naming.StateConst(to)))
			b.WriteString(fmt.Sprintf("\t\t\t\t%s.%s(%s)\n", cb, naming.EntryHook(from, to), args))
			b.WriteString("\t\t\t\treturn true, nil\n")
		}
		// Destinations recorded for this source under other events fall
		// through here: declared in the resolution type, illegal for this
		// event.
		b.WriteString("\t\t\tdefault:\n")
		b.WriteString(fmt.Sprintf("\t\t\t\tpanic(\"illegal destination exiting \" + m.current.String() + \" on %s\")\n", event))
		b.WriteString("\t\t\t}\n")
	}

	b.WriteString("\t\tdefault:\n")
	b.WriteString(g.uncoveredArm("\t\t\t", "\"no transition from \" + m.current.String() + \" on \" + e.String()"))
	b.WriteString("\t\t}\n")

	return b.String()
}

// generateDataEventCase emits the state branch for one event in data-only
// mode: a single recorded destination per source, no hooks.
func (g *generator) generateDataEventCase(event string) string {
	var b strings.Builder

	b.WriteString("\t\tswitch m.current {\n")
	for _, from := range g.table.Sources(event) {
		to := g.table.Dests(event, from)[0]
		b.WriteString(fmt.Sprintf("\t\tcase %s:\n", naming.StateConst(from)))
		b.WriteString(fmt.Sprintf("\t\t\tm.current = %s\n", naming.StateConst(to)))
		b.WriteString("\t\t\treturn true, nil\n")
	}
	b.WriteString("\t\tdefault:\n")
	b.WriteString(g.uncoveredArm("\t\t\t", "\"no transition from \" + m.current.String() + \" on \" + e.String()"))
	b.WriteString("\t\t}\n")

	return b.String()
}

// uncoveredArm emits the body of a default arm for an uncovered
// (state, event) pair, following the configured policy.
func (g *generator) uncoveredArm(indent, panicMsg string) string {
	if g.opts.OnUncovered == PolicyPanic {
		return indent + "panic(" + panicMsg + ")\n"
	}
	return indent + "return false, errNoSuchTransition\n"
}
