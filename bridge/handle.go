package bridge

import (
	"sync/atomic"

	"github.com/roach88/turnstile/store"
)

// Handle is a persistent wrapper around one capability descriptor D,
// reusable across many submissions against the same store.
//
// The handle owns the continuity state (a store.Cursor) that realizing D
// needs between accesses, so a reused handle behaves like a single
// long-lived observer rather than a fresh one per call: a change-tracked
// descriptor reports true on exactly the accesses after an actual change,
// however many unrelated turns elapse between Run calls.
//
// A handle permits at most one in-flight request. Overlapping Run calls fail
// synchronously with REENTRANT_HANDLE_USE - rejected, not serialized,
// because interleaving two requests over one cursor would corrupt the
// observer's change ordering. The guard is an atomic flag, not a lock, for
// exactly that reason.
type Handle[D any] struct {
	id       store.Identity
	realize  store.Realizer[D]
	cursor   store.Cursor
	inFlight atomic.Bool
}

// NewHandle creates a handle over the store identified by id, realizing D
// via the given realizer on each Run.
//
// Fails with STALE_STORE if id denotes no live store at creation time.
// The handle does not pin the store; Run re-validates on every call.
func NewHandle[D any](id store.Identity, realize store.Realizer[D]) (*Handle[D], error) {
	if _, err := defaultRegistry.lookup(id); err != nil {
		return nil, err
	}
	return &Handle[D]{id: id, realize: realize}, nil
}

// StoreID returns the identity the handle was created against.
func (h *Handle[D]) StoreID() store.Identity {
	return h.id
}

// InFlight reports whether the handle currently has an outstanding request.
// Useful for monitoring and testing.
func (h *Handle[D]) InFlight() bool {
	return h.inFlight.Load()
}

// LastRun returns the tick at which the handle's observer last completed an
// access (0 if it never ran). Introspection only; the cursor itself stays
// exclusively owned by the handle.
func (h *Handle[D]) LastRun() int64 {
	return h.cursor.LastRun()
}

// Run submits one request that realizes D from the handle's continuity state,
// invokes fn with it, and advances that state past everything the access
// observed - including fn's own writes.
//
// Run is a package-level function because Go methods cannot introduce the
// output type parameter.
//
// Fails synchronously with REENTRANT_HANDLE_USE while a prior Run on the
// same handle is outstanding (the prior request is unaffected), and with
// STALE_STORE / QUEUE_OVERFLOW per Submit. The in-flight guard releases at
// the request's terminal outcome, whatever it is - executed, cancelled, or
// failed.
func Run[D, Out any](h *Handle[D], stage Stage, fn func(D) Out) (*Future[Out], error) {
	if !h.inFlight.CompareAndSwap(false, true) {
		return nil, newReentrantHandleError(h.id, stage)
	}

	reg, err := defaultRegistry.lookup(h.id)
	if err != nil {
		h.inFlight.Store(false)
		return nil, err
	}

	out := make(chan Out, 1)
	req := newRequest(h.id, stage)
	req.onTerminal = func() {
		h.inFlight.Store(false)
	}
	req.run = func(v *store.View) {
		realized := h.realize(v, &h.cursor)
		result := fn(realized)
		v.Close()
		h.cursor.Advance(v.Tick())
		out <- result
	}

	if err := reg.submit(req); err != nil {
		h.inFlight.Store(false)
		return nil, err
	}
	return &Future[Out]{req: req, out: out}, nil
}
