package dsl

import (
	"errors"
	"fmt"
)

// Error kinds reported by the parser. Match with errors.Is.
var (
	ErrExpectedKeyword = errors.New("expected keyword")
	ErrMalformedList   = errors.New("malformed list")
	ErrUnexpectedToken = errors.New("unexpected token")
)

// SyntaxError reports a grammar violation tied to the offending token position.
type SyntaxError struct {
	Kind error
	Pos  int
	msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

func syntaxErr(kind error, pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Pos: pos, msg: fmt.Sprintf(format, args...)}
}
