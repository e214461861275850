package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownView indicates a view name outside the query catalogue.
	ErrUnknownView = errors.New("unknown view")

	// ErrUnknownSetting indicates a settings key outside the allow-list.
	ErrUnknownSetting = errors.New("unknown setting")

	// Store Errors.

	// ErrStore indicates the store could not be reached or a read failed.
	// Match with errors.Is; the concrete type is *StoreError.
	ErrStore = errors.New("store error")

	// ErrWrite indicates a listing insert failed and nothing was written.
	// Match with errors.Is; the concrete type is *WriteError.
	ErrWrite = errors.New("write error")
)

// StoreError wraps a connection or query failure.
type StoreError struct {
	// Op names the read that failed (e.g. "distinct city", "query total_quantity").
	Op string

	// Err is the underlying driver error.
	Err error
}

// Error implements error.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStore.
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// WriteError wraps a failed listing insert.
type WriteError struct {
	Err error
}

// Error implements error.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write listing: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

// ValidationError reports a listing field rejected before reaching the store.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
