package paging

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMalformedCursor is returned when a client supplied cursor cannot be decoded.
	ErrMalformedCursor = errors.New("malformed cursor")

	// ErrInvalidLimit is returned by strict page size validation.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrDataStoreUnavailable marks a failed read against the data store.
	// It is retryable by the caller and never rendered as an empty page.
	ErrDataStoreUnavailable = errors.New("data store unavailable")

	// ErrNotFound is returned when an entity a listing depends on does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for filter values of the wrong shape.
	ErrInvalidArgument = errors.New("invalid argument")
)

// StoreError wraps a failed data store operation.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err for the given operation. Context cancellation and
// deadline errors keep their identity so callers can tell them apart from an
// unavailable store.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports ErrDataStoreUnavailable for every store failure except the
// caller's own cancellation.
func (e *StoreError) Is(target error) bool {
	if target != ErrDataStoreUnavailable {
		return false
	}
	return !errors.Is(e.Err, context.Canceled) && !errors.Is(e.Err, context.DeadlineExceeded)
}

// CursorError describes why a cursor was rejected.
type CursorError struct {
	Reason string
}

func (e *CursorError) Error() string {
	return "malformed cursor: " + e.Reason
}

func (e *CursorError) Is(target error) bool {
	return target == ErrMalformedCursor
}
