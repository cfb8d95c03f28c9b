// Package genlog records compiler runs: one entry per successful
// generation, keyed by a fresh run id and carrying the specification and
// output hashes. The log captures compiler activity only; it never
// persists any state of the generated machines themselves. Its main use
// is auditing determinism across builds: equal spec hashes must carry
// equal output hashes.
package genlog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrClosed is reported by operations on a closed store.
var ErrClosed = errors.New("genlog: store closed")

// Run is one recorded generation run.
type Run struct {
	ID         string    // fresh uuid per run
	SpecHash   string    // hex sha256 of the specification text
	OutputHash string    // hex sha256 of the generated source
	Package    string    // generated package name
	Mode       string    // generation mode
	Policy     string    // uncovered-pair policy
	CreatedAt  time.Time
}

// NewRun creates a run record for the given specification and output text.
func NewRun(spec, output, pkg, mode, policy string) *Run {
	return &Run{
		ID:         uuid.New().String(),
		SpecHash:   HashText(spec),
		OutputHash: HashText(output),
		Package:    pkg,
		Mode:       mode,
		Policy:     policy,
		CreatedAt:  time.Now().UTC(),
	}
}

// HashText returns the hex sha256 of the given text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Store persists generation runs.
type Store interface {
	// Append records a run.
	Append(ctx context.Context, run *Run) error

	// List returns all recorded runs, oldest first.
	List(ctx context.Context) ([]*Run, error)

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store, useful for tests and one-shot runs.
type MemoryStore struct {
	mu     sync.Mutex
	runs   []*Run
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records a run.
func (s *MemoryStore) Append(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	cp := *run
	s.runs = append(s.runs, &cp)
	return nil
}

// List returns all recorded runs, oldest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	out := make([]*Run, len(s.runs))
	for i, r := range s.runs {
		cp := *r
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
