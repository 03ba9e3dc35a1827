package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/turnstile/store"
)

func TestDeterministicClock_NextAndReset(t *testing.T) {
	c := NewDeterministicClock()

	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())

	c.Reset()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next(), "sequence restarts after reset")
}

func TestFixedIdentityGenerator_ReturnsSameIdentity(t *testing.T) {
	g := NewFixedIdentityGenerator("store-fixed")

	assert.Equal(t, store.Identity("store-fixed"), g.Generate())
	assert.Equal(t, store.Identity("store-fixed"), g.Generate())
}

func TestFixedIdentityGenerator_EmptyDefaults(t *testing.T) {
	g := NewFixedIdentityGenerator("")

	assert.Equal(t, store.Identity("test-store-default"), g.Generate())
}

func TestSequenceIdentityGenerator_ReturnsInOrder(t *testing.T) {
	g := NewSequenceIdentityGenerator("a", "b")

	require.Equal(t, store.Identity("a"), g.Generate())
	require.Equal(t, store.Identity("b"), g.Generate())
	assert.Panics(t, func() { g.Generate() }, "exhaustion is a test bug")
}
