package bridge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBridgeError_Formatting(t *testing.T) {
	withBoth := newCancelledError("store-1", Update)
	assert.Equal(t,
		"CANCELLED: request cancelled before execution (store=store-1, stage=update)",
		withBoth.Error(),
	)

	storeOnly := newStaleStoreError("store-1")
	assert.Equal(t,
		"STALE_STORE: no live store registered for identity (store=store-1)",
		storeOnly.Error(),
	)

	bare := &BridgeError{Code: ErrCodeQueueOverflow, Message: "full"}
	assert.Equal(t, "QUEUE_OVERFLOW: full", bare.Error())
}

func TestBridgeError_PredicatesMatchWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("submit failed: %w", newStaleStoreError("store-1"))

	assert.True(t, IsStaleStore(wrapped))
	assert.False(t, IsCancelled(wrapped))
	assert.False(t, IsStaleStore(fmt.Errorf("plain error")))
}

func TestBridgeError_Predicates(t *testing.T) {
	assert.True(t, IsReentrantHandleUse(newReentrantHandleError("s", Update)))
	assert.True(t, IsCancelled(newCancelledError("s", Update)))
	assert.True(t, IsQueueOverflow(newQueueOverflowError("s", Update, 8)))
	assert.True(t, IsContinuationPanic(newContinuationPanicError("s", Update, "boom")))
}

func TestBridgeError_PanicValueCarried(t *testing.T) {
	err := newContinuationPanicError("s", Update, "boom")

	assert.Equal(t, "boom", err.Panic)
	assert.Contains(t, err.Message, "boom")
}
