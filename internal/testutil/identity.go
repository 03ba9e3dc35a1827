package testutil

import (
	"sync"

	"github.com/roach88/turnstile/store"
)

// FixedIdentityGenerator returns the same store identity every time.
//
// This enables deterministic test execution and golden trace comparison:
// the same scenario with the same FixedIdentityGenerator produces
// byte-identical traces.
//
// Thread-safety: FixedIdentityGenerator is stateless and safe for
// concurrent use.
type FixedIdentityGenerator struct {
	id store.Identity
}

// NewFixedIdentityGenerator creates a generator that always returns id.
//
// If id is empty, Generate returns "test-store-default".
func NewFixedIdentityGenerator(id store.Identity) *FixedIdentityGenerator {
	if id == "" {
		id = "test-store-default"
	}
	return &FixedIdentityGenerator{id: id}
}

// Generate returns the fixed identity.
//
// Implements store.IdentityGenerator.
func (g *FixedIdentityGenerator) Generate() store.Identity {
	return g.id
}

// SequenceIdentityGenerator returns predetermined identities in order.
//
// Tests that create several stores provide a known sequence and verify
// exact registry behavior against it.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceIdentityGenerator struct {
	mu  sync.Mutex
	ids []store.Identity
	idx int
}

// NewSequenceIdentityGenerator creates a generator that returns ids in order.
//
// Panics once all ids are consumed. This is a fail-fast approach to catch
// test misconfiguration (test created more stores than expected).
func NewSequenceIdentityGenerator(ids ...store.Identity) *SequenceIdentityGenerator {
	return &SequenceIdentityGenerator{ids: ids}
}

// Generate returns the next predetermined identity.
func (g *SequenceIdentityGenerator) Generate() store.Identity {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("SequenceIdentityGenerator: all identities exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
