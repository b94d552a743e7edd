package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a request carried values that break a domain invariant.
	ErrInvalidInput = errors.New("invalid input")
)

// ReceiptParseError reports that a receipt image could not be turned into ingredients.
type ReceiptParseError struct {
	Err error
}

func (e *ReceiptParseError) Error() string {
	return fmt.Sprintf("failed to read receipt: %v", e.Err)
}

func (e *ReceiptParseError) Unwrap() error { return e.Err }

// GenerationError reports a failed or malformed recipe, plan or list generation.
type GenerationError struct {
	Operation string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Operation, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PreconditionError reports an operation refused because the current state does not allow it.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// NewPreconditionError builds a PreconditionError with a formatted reason.
func NewPreconditionError(format string, args ...any) *PreconditionError {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}
