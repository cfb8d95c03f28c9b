package naming

import (
	"errors"
	"testing"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Open", "open"},
		{"Close", "close"},
		{"MyState", "my_state"},
		{"S1", "s1"},
		{"HTTPServer", "http_server"},
		{"already_snake", "already_snake"},
		{"TurnKey", "turn_key"},
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Snake(tt.in); got != tt.want {
			t.Errorf("Snake(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"open", "Open"},
		{"my_state", "MyState"},
		{"S1", "S1"},
		{"turn_key", "TurnKey"},
		{"Already", "Already"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Pascal(tt.in); got != tt.want {
			t.Errorf("Pascal(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestDerivedNames(t *testing.T) {
	if got := ResolutionType("S1"); got != "AfterExitS1" {
		t.Errorf("ResolutionType: expected AfterExitS1, got %q", got)
	}
	if got := ResolutionConst("Open", "Close"); got != "AfterExitOpenClose" {
		t.Errorf("ResolutionConst: expected AfterExitOpenClose, got %q", got)
	}
	if got := EntryHook("S1", "S2"); got != "entry_s2_from_s1" {
		t.Errorf("EntryHook: expected entry_s2_from_s1, got %q", got)
	}
	if got := ExitHook("Open"); got != "exit_open" {
		t.Errorf("ExitHook: expected exit_open, got %q", got)
	}
	if got := PreHook("Turn"); got != "on_turn" {
		t.Errorf("PreHook: expected on_turn, got %q", got)
	}
	if got := CallbackInterface("Turn"); got != "TurnCallbacks" {
		t.Errorf("CallbackInterface: expected TurnCallbacks, got %q", got)
	}
	if got := PayloadField("Working"); got != "working_payload" {
		t.Errorf("PayloadField: expected working_payload, got %q", got)
	}
	if got := PayloadAccessor("Working"); got != "WorkingPayload" {
		t.Errorf("PayloadAccessor: expected WorkingPayload, got %q", got)
	}
	if got := StateConst("my_state"); got != "StateMyState" {
		t.Errorf("StateConst: expected StateMyState, got %q", got)
	}
	if got := EventConst("turn_key"); got != "EventTurnKey" {
		t.Errorf("EventConst: expected EventTurnKey, got %q", got)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if err := r.Claim("StateOpen", "state Open"); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}

	// Same seed may re-claim.
	if err := r.Claim("StateOpen", "state Open"); err != nil {
		t.Errorf("re-claim for same seed failed: %v", err)
	}

	// Distinct seeds deriving the same identifier collide.
	err := r.Claim("StateOpen", "state open")
	if err == nil {
		t.Fatal("expected collision, got nil")
	}
	if !errors.Is(err, ErrCollision) {
		t.Errorf("expected ErrCollision, got %v", err)
	}
}

func TestRegistry_CaseFoldCollision(t *testing.T) {
	// my_state and MyState both derive StateMyState.
	r := NewRegistry()
	if err := r.Claim(StateConst("my_state"), "state my_state"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if err := r.Claim(StateConst("MyState"), "state MyState"); !errors.Is(err, ErrCollision) {
		t.Errorf("expected ErrCollision, got %v", err)
	}
}
