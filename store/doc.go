// Package store implements the shared mutable store that a host loop drives
// turn by turn.
//
// The store is an in-memory table of singleton resources keyed by Go type.
// Every entry carries logical ticks recording when it was added and when it
// last changed, stamped from a monotonic TickClock. Change ticks are the basis
// for the continuity ("changed since I last looked") capability that repeated
// observers rely on.
//
// OWNERSHIP MODEL:
//
// A Store is NOT safe for concurrent use. Exclusive access is structural, not
// locked: outside a turn the store belongs to the host loop alone; during a
// bridge turn it belongs to the driver alone. The bridge package provides the
// only cross-thread path into a store.
//
// Scoped access:
// Continuations never touch a Store directly. They receive a View - a borrow
// that is valid only for the duration of one driver turn. Resource and command
// access through an expired View panics; the View is borrowed, not stored.
//
// Capability surface on a View:
//   - ReadRes[T]: read access (copy, no change stamp)
//   - Res[T]: mutable access (stamps the entry's changed tick)
//   - Query: enumerate entries and their ticks
//   - Commands: deferred mutations applied in order when the borrow ends
//
// Continuity:
// A Cursor records the tick at which an observer last ran. Tracked[T] pairs a
// View with a Cursor so that Changed reports true exactly for accesses after
// an actual change, however many unrelated turns elapsed in between.
package store
