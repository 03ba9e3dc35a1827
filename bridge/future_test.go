package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/turnstile/store"
)

func TestFuture_CancelBeforeTurnSkipsExecution(t *testing.T) {
	d := newTestDriver(t, "cancel-before-turn")

	ran := false
	f, err := Submit(d.Store().ID(), Update, func(*store.View) int {
		ran = true
		return 0
	})
	require.NoError(t, err)

	assert.True(t, f.Cancel(), "cancel strictly before the turn wins")

	d.Turn(Update)

	assert.False(t, ran, "continuation never runs after a winning cancel")
	_, err = waitFor(t, f)
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
}

func TestFuture_CancelAfterExecutionIsNoOp(t *testing.T) {
	d := newTestDriver(t, "cancel-after-exec")

	f, err := Submit(d.Store().ID(), Update, func(*store.View) int { return 7 })
	require.NoError(t, err)

	d.Turn(Update)

	assert.False(t, f.Cancel(), "execution already won the race")
	got, err := waitFor(t, f)
	require.NoError(t, err)
	assert.Equal(t, 7, got, "output still readable; accepted policy")
}

func TestFuture_CancelRaceCommittedEffectsStand(t *testing.T) {
	// A cancel that loses the race discards the output, but side effects the
	// turn already committed stand.
	d := newTestDriver(t, "cancel-race-effects")
	store.Insert(d.Store(), counter{Value: 0})

	f, err := Submit(d.Store().ID(), Update, func(v *store.View) int {
		c, _ := store.Res[counter](v)
		c.Value = 5
		return c.Value
	})
	require.NoError(t, err)

	d.Turn(Update)
	f.Cancel() // too late; output is simply never read

	final, _ := store.Get[counter](d.Store())
	assert.Equal(t, 5, final.Value)
}

func TestFuture_SecondCancelIsNoOp(t *testing.T) {
	d := newTestDriver(t, "double-cancel")

	f, err := Submit(d.Store().ID(), Update, func(*store.View) int { return 0 })
	require.NoError(t, err)

	assert.True(t, f.Cancel())
	assert.False(t, f.Cancel())
}

func TestFuture_WaitContextCancelled(t *testing.T) {
	d := newTestDriver(t, "wait-ctx")

	f, err := Submit(d.Store().ID(), Update, func(*store.View) int { return 1 })
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// An abandoned Wait consumes nothing; the output is still there.
	d.Turn(Update)
	got, err := waitFor(t, f)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestFuture_SecondReadIsError(t *testing.T) {
	d := newTestDriver(t, "second-read")

	f, err := Submit(d.Store().ID(), Update, func(*store.View) int { return 1 })
	require.NoError(t, err)

	d.Turn(Update)

	_, err = waitFor(t, f)
	require.NoError(t, err)

	_, err = waitFor(t, f)
	require.Error(t, err)

	var be *BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, ErrCodeResultTaken, be.Code)
}

func TestFuture_WakeAcrossGoroutines(t *testing.T) {
	// The slot write happens on the host-loop goroutine; the waiter sits on
	// another. The hand-off is the buffered write plus the done close.
	d := newTestDriver(t, "wake-across")

	f, err := Submit(d.Store().ID(), Update, func(*store.View) string { return "woken" })
	require.NoError(t, err)

	got := make(chan string, 1)
	waiting := make(chan struct{})
	go func() {
		close(waiting)
		v, err := waitFor(t, f)
		if err == nil {
			got <- v
		}
	}()

	<-waiting
	d.Turn(Update)

	select {
	case v := <-got:
		assert.Equal(t, "woken", v)
	case <-time.After(5 * time.Second):
		t.Fatal("waiter was never woken")
	}
}

func TestFuture_StageAccessor(t *testing.T) {
	d := newTestDriver(t, "stage-accessor")

	f, err := Submit(d.Store().ID(), FixedUpdate, func(*store.View) int { return 0 })
	require.NoError(t, err)

	assert.Equal(t, FixedUpdate, f.Stage())
	f.Cancel()
}
