package bridge

import (
	"github.com/roach88/turnstile/store"
)

// Submit enqueues a one-shot continuation for the store's next turn of the
// given stage and returns the Future that will carry its output.
//
// The continuation runs synchronously inside the driver turn with a View
// valid only for that turn; it must not block or suspend, and must not
// retain the View. Failure the continuation wants to report travels in Out -
// the mechanism never interprets it.
//
// Submit fails synchronously with STALE_STORE if id denotes no live store,
// or QUEUE_OVERFLOW if the stage's queue is bounded and full.
func Submit[Out any](id store.Identity, stage Stage, fn func(*store.View) Out) (*Future[Out], error) {
	reg, err := defaultRegistry.lookup(id)
	if err != nil {
		return nil, err
	}

	out := make(chan Out, 1)
	req := newRequest(id, stage)
	req.run = func(v *store.View) {
		result := fn(v)
		v.Close()
		out <- result
	}

	if err := reg.submit(req); err != nil {
		return nil, err
	}
	return &Future[Out]{req: req, out: out}, nil
}
