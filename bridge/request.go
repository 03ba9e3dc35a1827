package bridge

import (
	"sync/atomic"

	"github.com/roach88/turnstile/store"
)

// Request lifecycle states. Exactly one terminal transition happens per
// request: pending -> executing -> executed/failed, or pending -> cancelled.
const (
	statePending int32 = iota
	stateExecuting
	stateExecuted
	stateCancelled
	stateFailed
)

// request is one type-erased unit of work awaiting a stage turn.
//
// Concrete typing exists at construction (Submit/Run build the run closure
// around the typed continuation and completion slot) and at the continuation
// call site; the queue and driver only ever see this struct.
type request struct {
	// id is the target store's identity, carried for error context.
	id store.Identity

	// stage is the turn this request waits for.
	stage Stage

	// seq is the submission sequence within the (store, stage) queue.
	// Assigned under the queue lock, so seq order IS FIFO order.
	seq int64

	// run realizes the capability from the borrowed view, invokes the
	// continuation synchronously, applies deferred mutations (View.Close)
	// and fills the completion slot. Runs only inside a driver turn.
	run func(v *store.View)

	// onTerminal, if set, runs exactly once at the terminal transition.
	// Handles use it to release their in-flight guard.
	onTerminal func()

	state atomic.Int32

	// done closes at the terminal transition, whichever it is.
	// Cross-thread wake is this channel close plus the buffered slot write -
	// one atomic hand-off, no ad hoc flags.
	done chan struct{}

	// panicValue holds the recovered value when state is stateFailed.
	// Written before done closes; readable after <-done.
	panicValue any
}

func newRequest(id store.Identity, stage Stage) *request {
	return &request{
		id:    id,
		stage: stage,
		done:  make(chan struct{}),
	}
}

// begin claims the request for execution. Returns false if the caller
// cancelled first; the continuation then never runs.
func (r *request) begin() bool {
	return r.state.CompareAndSwap(statePending, stateExecuting)
}

// finish marks the request executed. Called by the driver after run returns.
func (r *request) finish() {
	r.state.Store(stateExecuted)
	r.terminal()
}

// fail marks the request failed with the recovered panic value.
func (r *request) fail(panicValue any) {
	r.panicValue = panicValue
	r.state.Store(stateFailed)
	r.terminal()
}

// cancel tries to claim the request for cancellation. Returns false if
// execution already began; the race loser's output is simply discarded.
func (r *request) cancel() bool {
	if !r.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	r.terminal()
	return true
}

func (r *request) terminal() {
	if r.onTerminal != nil {
		r.onTerminal()
	}
	close(r.done)
}
