// Package bridge lets code on arbitrary goroutines submit short units of work
// that need exclusive, type-safe access to a store otherwise owned by a
// turn-based host loop, and asynchronously receive each submission's result
// once it runs.
//
// ARCHITECTURE:
//
// Single-Writer Turns:
// The store is never locked. Exclusive access is structural: outside a turn
// the host loop owns the store; during a turn the driver owns it. Submitted
// continuations run synchronously inside a driver turn, in FIFO order, and
// must not suspend - nothing may hold a capability across a turn boundary.
//
// Submission Flow:
// 1. A caller submits a continuation under (store identity, stage)
// 2. The request lands in that stage's pending queue; the caller gets a Future
// 3. At the stage's next turn the driver detaches the queue's snapshot
// 4. Each request realizes its capability, runs, and applies its deferred
//    mutations before the next request observes the store
// 5. The request's output fills its completion slot and wakes the waiter
//
// Requests enqueued during a turn's own execution go to a fresh queue for the
// NEXT turn. This bounds each turn's work: a continuation that submits more
// work can never starve the host loop.
//
// CRITICAL PATTERNS:
//
// Exactly-One Terminal Outcome:
// A request ends exactly once, as executed, cancelled, or failed. The
// transition is a CAS on the request's state; a Cancel racing the driver
// resolves to whichever side wins, and a cancel that loses simply discards
// the computed output while committed effects stand.
//
// Reentrancy Rejection:
// A Handle owns continuity state for one observer. Overlapping Run calls are
// rejected synchronously rather than serialized - a lock would let concurrent
// callers corrupt the observer's change-detection ordering.
//
// All submission-time failures (stale store, overflow, reentrant use) surface
// synchronously to the submitting caller, never as faults inside the host's
// own turn execution.
package bridge
