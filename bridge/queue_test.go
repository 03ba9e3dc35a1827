package bridge

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingReq(stage Stage) *request {
	return newRequest("queue-test-store", stage)
}

func TestPendingQueue_FIFOAndSeq(t *testing.T) {
	q := newPendingQueue(0)

	r1 := pendingReq(Update)
	r2 := pendingReq(Update)
	r3 := pendingReq(Update)
	require.NoError(t, q.enqueue(r1))
	require.NoError(t, q.enqueue(r2))
	require.NoError(t, q.enqueue(r3))

	batch := q.detach()
	require.Len(t, batch, 3)
	assert.Same(t, r1, batch[0])
	assert.Same(t, r2, batch[1])
	assert.Same(t, r3, batch[2])

	assert.Equal(t, int64(1), r1.seq)
	assert.Equal(t, int64(2), r2.seq)
	assert.Equal(t, int64(3), r3.seq)
}

func TestPendingQueue_DetachLeavesFreshQueue(t *testing.T) {
	q := newPendingQueue(0)

	require.NoError(t, q.enqueue(pendingReq(Update)))
	first := q.detach()
	require.Len(t, first, 1)
	assert.Equal(t, 0, q.len())

	// Post-detach enqueues land in the next snapshot, with seq continuing.
	late := pendingReq(Update)
	require.NoError(t, q.enqueue(late))
	second := q.detach()
	require.Len(t, second, 1)
	assert.Same(t, late, second[0])
	assert.Equal(t, int64(2), late.seq)
}

func TestPendingQueue_DetachEmpty(t *testing.T) {
	q := newPendingQueue(0)
	assert.Empty(t, q.detach())
}

func TestPendingQueue_CapacityBound(t *testing.T) {
	q := newPendingQueue(2)

	require.NoError(t, q.enqueue(pendingReq(Update)))
	require.NoError(t, q.enqueue(pendingReq(Update)))
	assert.ErrorIs(t, q.enqueue(pendingReq(Update)), errQueueFull)

	q.detach()
	assert.NoError(t, q.enqueue(pendingReq(Update)), "detach frees capacity")
}

func TestPendingQueue_Close(t *testing.T) {
	q := newPendingQueue(0)

	r := pendingReq(Update)
	require.NoError(t, q.enqueue(r))

	remaining := q.close()
	require.Len(t, remaining, 1)
	assert.Same(t, r, remaining[0])

	assert.ErrorIs(t, q.enqueue(pendingReq(Update)), errQueueClosed)
	assert.Nil(t, q.close(), "second close returns nothing")
}

func TestPendingQueue_ConcurrentEnqueueWithDetach(t *testing.T) {
	// Submission racing a turn's own detach step must never lose a request:
	// every enqueue lands in exactly one snapshot.
	q := newPendingQueue(0)

	const producers = 4
	const perProducer = 200

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				_ = q.enqueue(pendingReq(Update))
			}
		}()
	}

	collected := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		collected += len(q.detach())
		select {
		case <-done:
			collected += len(q.detach())
			require.Equal(t, producers*perProducer, collected)
			return
		default:
		}
	}
}
