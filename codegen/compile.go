package codegen

import (
	"github.com/fsmgen-xyz/go-fsmgen/dsl"
)

// Compile parses specification text and generates the implementing Go
// source: parse, interpret, validate, group, generate. No output is
// produced on any error.
func Compile(input string, opts Options) (string, error) {
	m, err := dsl.ParseMachine(input)
	if err != nil {
		return "", err
	}
	return Generate(m, opts)
}
