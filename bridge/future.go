package bridge

import (
	"context"
)

// Future is the caller-facing awaitable for one submitted request.
//
// It owns the request's completion slot: a one-element buffered channel the
// driver writes at most once and the caller reads at most once. The write
// and the waiter's wake are a single channel hand-off, safe regardless of
// which goroutine performs the write.
//
// A Future starts pending (its request is already enqueued when the Future
// is returned) and becomes ready when the owning stage turn fills the slot,
// or terminal-without-output when the request is cancelled or its
// continuation panics.
type Future[Out any] struct {
	req *request
	out chan Out
}

// Wait blocks until the request reaches its terminal outcome or ctx is done.
//
// Exactly one Wait call may consume the output; a later call after a
// successful read fails with a RESULT_TAKEN error. A Wait abandoned via ctx
// does not consume anything - a subsequent Wait can still read the output.
//
// Timeouts are a caller-side concern: wrap ctx and call Cancel when it
// fires. The mechanism schedules nothing itself.
func (f *Future[Out]) Wait(ctx context.Context) (Out, error) {
	var zero Out

	select {
	case v := <-f.out:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-f.req.done:
		// Terminal. The slot write happens before done closes, so a
		// non-blocking re-check tells output apart from no-output.
		select {
		case v := <-f.out:
			return v, nil
		default:
		}
		switch f.req.state.Load() {
		case stateCancelled:
			return zero, newCancelledError(f.req.id, f.req.stage)
		case stateFailed:
			return zero, newContinuationPanicError(f.req.id, f.req.stage, f.req.panicValue)
		default:
			return zero, newResultTakenError(f.req.id, f.req.stage)
		}
	}
}

// Cancel drops the caller's interest in the request.
//
// Best effort before execution: if the cancel lands strictly before the
// driver turn begins processing the request, the continuation never runs and
// Cancel returns true. If it races execution already in progress, committed
// side effects stand, the computed output is discarded unread, and Cancel
// returns false. That race is accepted policy, not an error.
//
// Cancel is how a caller "drops" a Future; an unread Future that is simply
// garbage collected leaks nothing either way - the eventual slot write goes
// to a buffered channel nobody reads.
func (f *Future[Out]) Cancel() bool {
	return f.req.cancel()
}

// Done returns a channel that closes at the request's terminal outcome,
// whichever it is. For select-based callers.
func (f *Future[Out]) Done() <-chan struct{} {
	return f.req.done
}

// Stage returns the stage the request was submitted to.
func (f *Future[Out]) Stage() Stage {
	return f.req.stage
}
