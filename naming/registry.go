package naming

import (
	"errors"
	"fmt"
)

// ErrCollision is reported when two distinct specification entities derive
// the same identifier within one generated module.
var ErrCollision = errors.New("derived name collision")

// Registry tracks every identifier claimed during one generation run and
// rejects collisions between distinct seeds. Declared names that are not
// unique after case conversion (for example `my_state` and `MyState`)
// would otherwise produce invalid generated code.
type Registry struct {
	claimed map[string]string // identifier -> seed description
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{claimed: make(map[string]string)}
}

// Claim records an identifier for the given seed. Claiming the same
// identifier twice for the same seed is allowed; claiming it for a
// different seed reports ErrCollision.
func (r *Registry) Claim(ident, seed string) error {
	if prev, ok := r.claimed[ident]; ok {
		if prev == seed {
			return nil
		}
		return fmt.Errorf("%w: %q derived from both %s and %s", ErrCollision, ident, prev, seed)
	}
	r.claimed[ident] = seed
	return nil
}
