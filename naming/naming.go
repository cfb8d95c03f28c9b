// Package naming derives the identifiers used across generated code:
// hook names, resolution type names, and constant names. All derivations
// are pure, deterministic and total over printable identifier input.
package naming

import (
	"strings"
	"unicode"
)

// Snake converts an identifier to snake_case.
// "Open" -> "open", "S1" -> "s1", "MyState" -> "my_state",
// "HTTPServer" -> "http_server".
func Snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == '-' || r == '_' || r == ' ' {
			b.WriteRune('_')
			continue
		}
		if unicode.IsUpper(r) {
			prev := i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_'
			next := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1])
			if prev || next {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Pascal converts an identifier to PascalCase.
// "open" -> "Open", "my_state" -> "MyState", "S1" -> "S1".
func Pascal(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if r == '-' || r == '_' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ResolutionType derives the name of the resolution type for a source
// state: the closed set of destinations legally reachable when exiting it.
func ResolutionType(from string) string {
	return "AfterExit" + Pascal(from)
}

// ResolutionConst derives the constant name for one destination variant of
// a source state's resolution type.
func ResolutionConst(from, to string) string {
	return ResolutionType(from) + Pascal(to)
}

// EntryHook derives the entry hook name invoked after arriving in to from from.
func EntryHook(from, to string) string {
	return "entry_" + Snake(to) + "_from_" + Snake(from)
}

// ExitHook derives the exit hook name invoked before leaving from.
func ExitHook(from string) string {
	return "exit_" + Snake(from)
}

// PreHook derives the pre-transition hook name invoked once per dispatched event.
func PreHook(event string) string {
	return "on_" + Snake(event)
}

// CallbackInterface derives the per-event callback interface name.
func CallbackInterface(event string) string {
	return Pascal(event) + "Callbacks"
}

// PayloadField derives the machine field name holding the payload value
// declared for a state or event.
func PayloadField(name string) string {
	return Snake(name) + "_payload"
}

// PayloadAccessor derives the accessor method name for a declared payload.
func PayloadAccessor(name string) string {
	return Pascal(name) + "Payload"
}

// StateConst derives the constant name for a declared state.
func StateConst(state string) string {
	return "State" + Pascal(state)
}

// EventConst derives the constant name for a declared event.
func EventConst(event string) string {
	return "Event" + Pascal(event)
}
