package bridge

import (
	"errors"
	"sync"
)

// Internal queue sentinels; submission sites wrap them with store/stage
// context before they reach callers.
var (
	errQueueClosed = errors.New("pending queue closed")
	errQueueFull   = errors.New("pending queue full")
)

// pendingQueue is the thread-safe FIFO of requests awaiting one (store,
// stage) turn.
//
// This is the only structure touched concurrently by multiple goroutines:
// submitters enqueue from anywhere while the driver's turn detaches. A plain
// mutex covers both; contention is one short critical section per operation.
//
// Detach swaps the backing slice out wholesale instead of draining item by
// item, so submissions racing a turn land in a fresh slice and wait for the
// NEXT turn. That exclusion is what bounds a turn's work.
type pendingQueue struct {
	mu       sync.Mutex
	requests []*request
	nextSeq  int64
	capacity int // 0 = unbounded
	closed   bool
}

func newPendingQueue(capacity int) *pendingQueue {
	return &pendingQueue{capacity: capacity}
}

// enqueue appends a request and assigns its submission seq under the lock,
// so seq order is exactly FIFO order.
// Returns errQueueClosed after close, errQueueFull when a bound is hit.
func (q *pendingQueue) enqueue(r *request) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errQueueClosed
	}
	if q.capacity > 0 && len(q.requests) >= q.capacity {
		return errQueueFull
	}

	q.nextSeq++
	r.seq = q.nextSeq
	q.requests = append(q.requests, r)
	return nil
}

// detach atomically takes the queue's current contents as this turn's
// snapshot. Subsequent enqueues go to a fresh backing slice.
func (q *pendingQueue) detach() []*request {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := q.requests
	q.requests = nil
	return batch
}

// len returns the number of requests currently pending.
func (q *pendingQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.requests)
}

// close marks the queue closed and returns whatever was still pending so the
// driver can cancel it. Enqueues after close fail with errQueueClosed.
func (q *pendingQueue) close() []*request {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	remaining := q.requests
	q.requests = nil
	return remaining
}
