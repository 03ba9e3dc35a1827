package store

import "sync/atomic"

// TickClock is the store's monotonic logical clock.
//
// Every mutation is stamped with a strictly increasing tick from this clock.
// This ensures:
// - Deterministic change detection (no wall-clock race conditions)
// - "Changed since tick N" queries are exact, not approximate
// - Causal ordering of writes within and across turns is explicit
//
// Thread-safety: TickClock is safe for concurrent use (atomic operations).
// However, the store's single-owner design means only one goroutine
// typically calls Next().
type TickClock struct {
	tick atomic.Int64
}

// NewTickClock creates a new clock starting at 0.
func NewTickClock() *TickClock {
	return &TickClock{}
}

// NewTickClockAt creates a new clock starting at a specific tick.
// Used by tests to pin change detection to known values.
func NewTickClockAt(start int64) *TickClock {
	c := &TickClock{}
	c.tick.Store(start)
	return c
}

// Next returns the next tick and increments the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *TickClock) Next() int64 {
	return c.tick.Add(1)
}

// Current returns the current tick without incrementing.
// A Cursor advanced to Current() will not re-observe writes stamped so far.
func (c *TickClock) Current() int64 {
	return c.tick.Load()
}
