package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/fsmgen-xyz/go-fsmgen/dsl"
	"github.com/fsmgen-xyz/go-fsmgen/fsm"
	"github.com/fsmgen-xyz/go-fsmgen/naming"
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

func doorMachine(t *testing.T) *fsm.Machine {
	t.Helper()
	m, err := dsl.ParseMachine(doorSpec)
	if err != nil {
		t.Fatalf("ParseMachine failed: %v", err)
	}
	return m
}

// contains asserts each needle appears in src, in the given order.
func contains(t *testing.T, src string, needles ...string) {
	t.Helper()
	offset := 0
	for _, n := range needles {
		i := strings.Index(src[offset:], n)
		if i < 0 {
			if strings.Contains(src, n) {
				t.Errorf("out of order: %q", n)
			} else {
				t.Errorf("missing: %q", n)
			}
			continue
		}
		offset += i + len(n)
	}
}

func TestGenerate_Door(t *testing.T) {
	src, err := Generate(doorMachine(t), Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	contains(t, src,
		"// Code generated by fsmgen. DO NOT EDIT.",
		"package door\n",
		"import \"errors\"\n",
		"type State int\n",
		"StateOpen State = iota\n",
		"StateClose\n",
		"type Event int\n",
		"EventTurn Event = iota\n",
		"var errNoSuchTransition = errors.New(\"no such transition\")\n",
	)
}

func TestGenerate_ResolutionTypes(t *testing.T) {
	src, err := Generate(doorMachine(t), Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// One resolution type per source state, sorted, each with one variant
	// per recorded destination.
	contains(t, src,
		"type AfterExitClose int\n",
		"AfterExitCloseOpen AfterExitClose = iota\n",
		"func (r AfterExitClose) String() string {\n",
		"type AfterExitOpen int\n",
		"AfterExitOpenClose AfterExitOpen = iota\n",
		"func (r AfterExitOpen) String() string {\n",
	)
}

func TestGenerate_CallbackInterface(t *testing.T) {
	src, err := Generate(doorMachine(t), Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	contains(t, src,
		"type TurnCallbacks interface {\n",
		"on_turn() error\n",
		"exit_close() (AfterExitClose, error)\n",
		"entry_open_from_close()\n",
		"exit_open() (AfterExitOpen, error)\n",
		"entry_close_from_open()\n",
	)
}

func TestGenerate_MachineAndDispatch(t *testing.T) {
	src, err := Generate(doorMachine(t), Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	contains(t, src,
		"type Machine struct {\n",
		"current State\n",
		"turn    TurnCallbacks\n",
		"func NewMachine(turn TurnCallbacks) *Machine {\n",
		"current: StateOpen,\n",
		"func (m *Machine) State() State {\n",
		"func (m *Machine) Event(e Event) (bool, error) {\n",
		"case EventTurn:\n",
		"if err := m.turn.on_turn(); err != nil {\n",
		"switch m.current {\n",
		"case StateClose:\n",
		"r, err := m.turn.exit_close()\n",
		"case AfterExitCloseOpen:\n",
		"m.current = StateOpen\n",
		"m.turn.entry_open_from_close()\n",
		"return true, nil\n",
		"case StateOpen:\n",
		"r, err := m.turn.exit_open()\n",
		"case AfterExitOpenClose:\n",
		"m.current = StateClose\n",
		"m.turn.entry_close_from_open()\n",
	)

	// Uncovered pairs surface as errors under the default policy; illegal
	// resolution values always panic.
	contains(t, src, "return false, errNoSuchTransition\n")
	contains(t, src, `panic("illegal destination exiting " + m.current.String() + " on Turn")`)
}

func TestGenerate_MultiDestination(t *testing.T) {
	// Close exits to both Open and Close under Turn; exiting Open has a
	// single destination. The resolution variants and dispatch arms must
	// cover exactly the recorded destinations, sorted.
	src, err := Compile(`
States { Open, Close }
InitialState ( Open )
Events { Turn }
Transitions {
    Turn [ Open => Close, Close => Open, Close => Close ]
}
`, Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	contains(t, src,
		"type AfterExitClose int\n",
		"AfterExitCloseClose AfterExitClose = iota\n",
		"AfterExitCloseOpen\n",
		"type AfterExitOpen int\n",
		"AfterExitOpenClose AfterExitOpen = iota\n",
	)

	// The Close arm carries two destination arms, the Open arm one. Tab
	// depth pins the needles to the dispatch switches rather than the
	// String() methods.
	contains(t, src,
		"\t\tcase StateClose:\n",
		"\t\t\tcase AfterExitCloseClose:\n",
		"\t\t\t\tm.current = StateClose\n",
		"\t\t\t\tm.turn.entry_close_from_close()\n",
		"\t\t\tcase AfterExitCloseOpen:\n",
		"\t\t\t\tm.current = StateOpen\n",
		"\t\t\t\tm.turn.entry_open_from_close()\n",
		"\t\tcase StateOpen:\n",
		"\t\t\tcase AfterExitOpenClose:\n",
		"\t\t\t\tm.current = StateClose\n",
		"\t\t\t\tm.turn.entry_close_from_open()\n",
	)
	// Dispatch resolution arms sit three tabs deep; the String() switch
	// cases sit at one.
	if n := strings.Count(src, "\t\t\tcase AfterExitClose"); n != 2 {
		t.Errorf("expected 2 dispatch arms under Close, got %d", n)
	}
	if n := strings.Count(src, "\t\t\tcase AfterExitOpen"); n != 1 {
		t.Errorf("expected 1 dispatch arm under Open, got %d", n)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	m := doorMachine(t)
	opts := Options{PackageName: "door"}

	first, err := Generate(m, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Generate(m, opts)
		if err != nil {
			t.Fatalf("Generate failed on repeat %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("output not byte-identical on repeat %d", i)
		}
	}
}

func TestGenerate_GroupingOrderIrrelevant(t *testing.T) {
	// The same transition facts, grouped differently and listed in a
	// different order, must generate the same dispatch.
	grouped, err := Compile(doorSpec, Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	flat, err := Compile(`
States { Open, Close }
InitialState ( Open )
Events { Turn }
Turn [ Close => Open ]
Turn [ Open => Close ]
`, Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if grouped != flat {
		t.Error("equivalent transition facts generated different source")
	}
}

func TestGenerate_Context(t *testing.T) {
	m, err := dsl.ParseMachine(`
Context = Door;
` + doorSpec)
	if err != nil {
		t.Fatalf("ParseMachine failed: %v", err)
	}

	src, err := Generate(m, Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	contains(t, src,
		"on_turn(ctx *Door) error\n",
		"exit_close(ctx *Door) (AfterExitClose, error)\n",
		"entry_open_from_close(ctx *Door)\n",
		"context Door\n",
		"func (m *Machine) Context() *Door {\n",
		"return &m.context\n",
	)
	contains(t, src, "m.turn.on_turn(&m.context)")
}

func TestGenerate_PolicyPanic(t *testing.T) {
	src, err := Generate(doorMachine(t), Options{PackageName: "door", OnUncovered: PolicyPanic})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if strings.Contains(src, "errNoSuchTransition") {
		t.Error("panic policy should not generate the dispatch error")
	}
	if strings.Contains(src, "import \"errors\"") {
		t.Error("panic policy should not import errors")
	}
	contains(t, src, `panic("no transition from " + m.current.String() + " on " + e.String())`)
	contains(t, src, `panic("no transition on " + e.String())`)
}

func TestGenerate_DataOnly(t *testing.T) {
	src, err := Generate(doorMachine(t), Options{PackageName: "door", Mode: ModeDataOnly})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if strings.Contains(src, "Callbacks") {
		t.Error("data-only mode should not generate callback interfaces")
	}
	if strings.Contains(src, "AfterExit") {
		t.Error("data-only mode should not generate resolution types")
	}
	contains(t, src,
		"func NewMachine() *Machine {\n",
		"case EventTurn:\n",
		"case StateClose:\n",
		"m.current = StateOpen\n",
		"case StateOpen:\n",
		"m.current = StateClose\n",
	)
}

func TestGenerate_DataOnlyAmbiguous(t *testing.T) {
	m, err := dsl.ParseMachine(`
States { A, B, C }
InitialState ( A )
Events { Go }
Go [ A => B, A => C ]
`)
	if err != nil {
		t.Fatalf("ParseMachine failed: %v", err)
	}

	_, err = Generate(m, Options{Mode: ModeDataOnly})
	if !errors.Is(err, ErrAmbiguousDestination) {
		t.Errorf("expected ErrAmbiguousDestination, got %v", err)
	}

	// The same facts are fine in callback mode: the exit hook disambiguates.
	if _, err := Generate(m, Options{}); err != nil {
		t.Errorf("callback mode rejected a multi-destination source: %v", err)
	}
}

func TestGenerate_Payloads(t *testing.T) {
	src, err := Compile(`
States { Idle, Working = Job }
InitialState ( Idle )
Events { Start = Request, Stop }
Transitions {
    Start [ Idle => Working ],
    Stop [ Working => Idle ]
}
`, Options{PackageName: "worker"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	// Declared payloads become zero-valued machine fields with pointer
	// accessors; the state and event tags stay plain.
	contains(t, src,
		"StateWorking\n",
		"type Machine struct {\n",
		"working_payload Job\n",
		"start_payload   Request\n",
		"// WorkingPayload returns the payload value declared for state Working.\n",
		"func (m *Machine) WorkingPayload() *Job {\n",
		"return &m.working_payload\n",
		"// StartPayload returns the payload value declared for event Start.\n",
		"func (m *Machine) StartPayload() *Request {\n",
		"return &m.start_payload\n",
	)
	if strings.Contains(src, "IdlePayload") || strings.Contains(src, "StopPayload") {
		t.Error("payload accessors generated for unit-like declarations")
	}
}

func TestGenerate_PayloadFieldCollision(t *testing.T) {
	// A state and an event with the same payload-bearing name derive the
	// same machine field.
	_, err := Compile(`
States { Idle, Work = Job }
InitialState ( Idle )
Events { Work = Request }
Work [ Idle => Work ]
`, Options{})
	if !errors.Is(err, naming.ErrCollision) {
		t.Errorf("expected ErrCollision, got %v", err)
	}
}

func TestGenerate_NameCollision(t *testing.T) {
	// my_state and MyState pass validation as distinct declared names but
	// derive the same generated constant.
	_, err := Compile(`
States { my_state, MyState }
InitialState ( my_state )
Events { E }
E [ my_state => MyState ]
`, Options{})
	if !errors.Is(err, naming.ErrCollision) {
		t.Errorf("expected ErrCollision, got %v", err)
	}
}

func TestGenerate_InvalidMachine(t *testing.T) {
	m := &fsm.Machine{
		States:  []fsm.State{{Name: "A"}},
		Events:  []fsm.Event{{Name: "E"}},
		Initial: "Missing",
	}
	if _, err := Generate(m, Options{}); !errors.Is(err, fsm.ErrUnknownState) {
		t.Errorf("expected validation failure, got %v", err)
	}
}

func TestGenerate_DefaultPackage(t *testing.T) {
	src, err := Generate(doorMachine(t), Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	contains(t, src, "package machine\n")
}

func TestCompile(t *testing.T) {
	src, err := Compile(doorSpec, Options{PackageName: "door"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !strings.Contains(src, "package door") {
		t.Error("compiled output missing package clause")
	}

	if _, err := Compile(`States {`, Options{}); err == nil {
		t.Error("expected parse error, got nil")
	}
}
