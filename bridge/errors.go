package bridge

import (
	"errors"
	"fmt"

	"github.com/roach88/turnstile/store"
)

// BridgeError represents a failure surfaced by the bridge itself, as opposed
// to a failure a continuation encodes in its own output type (which is opaque
// to the mechanism).
//
// Bridge errors include:
//   - Stale store: submission targets an identity with no live registration
//   - Reentrant handle use: Run called while a prior call is outstanding
//   - Cancellation: the caller dropped interest before execution
//   - Queue overflow: a bounded stage queue rejected the submission
//
// All of these surface synchronously to the submitting caller or as the
// failure state of the returned Future - never inside a host turn.
type BridgeError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Store identifies the target store, when known.
	Store store.Identity

	// Stage is the snake_case stage name, empty when not applicable.
	Stage string

	// Panic carries the recovered value for CONTINUATION_PANIC errors.
	Panic any
}

// ErrorCode categorizes bridge errors.
type ErrorCode string

const (
	// ErrCodeStaleStore indicates the target identity denotes no live store.
	ErrCodeStaleStore ErrorCode = "STALE_STORE"

	// ErrCodeDuplicateStore indicates a driver is already registered for
	// the identity.
	ErrCodeDuplicateStore ErrorCode = "DUPLICATE_STORE"

	// ErrCodeReentrantHandleUse indicates Run was called on a handle with a
	// request still outstanding.
	ErrCodeReentrantHandleUse ErrorCode = "REENTRANT_HANDLE_USE"

	// ErrCodeCancelled indicates the caller dropped interest before the
	// request executed.
	ErrCodeCancelled ErrorCode = "CANCELLED"

	// ErrCodeQueueOverflow indicates a bounded stage queue was full.
	ErrCodeQueueOverflow ErrorCode = "QUEUE_OVERFLOW"

	// ErrCodeContinuationPanic indicates the continuation panicked mid-turn.
	ErrCodeContinuationPanic ErrorCode = "CONTINUATION_PANIC"

	// ErrCodeResultTaken indicates a second read of an already-consumed
	// completion slot.
	ErrCodeResultTaken ErrorCode = "RESULT_TAKEN"
)

// Error implements the error interface.
func (e *BridgeError) Error() string {
	if e.Store != "" && e.Stage != "" {
		return fmt.Sprintf("%s: %s (store=%s, stage=%s)", e.Code, e.Message, e.Store, e.Stage)
	}
	if e.Store != "" {
		return fmt.Sprintf("%s: %s (store=%s)", e.Code, e.Message, e.Store)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsStaleStore returns true if the error is a stale-store failure.
// Uses errors.As to handle wrapped errors.
func IsStaleStore(err error) bool {
	return hasCode(err, ErrCodeStaleStore)
}

// IsReentrantHandleUse returns true if the error is a reentrant handle use.
func IsReentrantHandleUse(err error) bool {
	return hasCode(err, ErrCodeReentrantHandleUse)
}

// IsCancelled returns true if the error reports a cancelled request.
func IsCancelled(err error) bool {
	return hasCode(err, ErrCodeCancelled)
}

// IsQueueOverflow returns true if the error is a queue-overflow rejection.
func IsQueueOverflow(err error) bool {
	return hasCode(err, ErrCodeQueueOverflow)
}

// IsContinuationPanic returns true if the error reports a panicked
// continuation.
func IsContinuationPanic(err error) bool {
	return hasCode(err, ErrCodeContinuationPanic)
}

func hasCode(err error, code ErrorCode) bool {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func newStaleStoreError(id store.Identity) *BridgeError {
	return &BridgeError{
		Code:    ErrCodeStaleStore,
		Message: "no live store registered for identity",
		Store:   id,
	}
}

func newDuplicateStoreError(id store.Identity) *BridgeError {
	return &BridgeError{
		Code:    ErrCodeDuplicateStore,
		Message: "a driver is already registered for this store",
		Store:   id,
	}
}

func newReentrantHandleError(id store.Identity, stage Stage) *BridgeError {
	return &BridgeError{
		Code:    ErrCodeReentrantHandleUse,
		Message: "handle already has an outstanding request",
		Store:   id,
		Stage:   stage.String(),
	}
}

func newCancelledError(id store.Identity, stage Stage) *BridgeError {
	return &BridgeError{
		Code:    ErrCodeCancelled,
		Message: "request cancelled before execution",
		Store:   id,
		Stage:   stage.String(),
	}
}

func newQueueOverflowError(id store.Identity, stage Stage, capacity int) *BridgeError {
	return &BridgeError{
		Code:    ErrCodeQueueOverflow,
		Message: fmt.Sprintf("stage queue full (capacity %d)", capacity),
		Store:   id,
		Stage:   stage.String(),
	}
}

func newContinuationPanicError(id store.Identity, stage Stage, panicValue any) *BridgeError {
	return &BridgeError{
		Code:    ErrCodeContinuationPanic,
		Message: fmt.Sprintf("continuation panicked: %v", panicValue),
		Store:   id,
		Stage:   stage.String(),
		Panic:   panicValue,
	}
}

func newResultTakenError(id store.Identity, stage Stage) *BridgeError {
	return &BridgeError{
		Code:    ErrCodeResultTaken,
		Message: "completion slot already read",
		Store:   id,
		Stage:   stage.String(),
	}
}
