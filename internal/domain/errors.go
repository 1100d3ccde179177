package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidReference = errors.New("invalid reference")
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrUnavailable      = errors.New("book not available")
	ErrAlreadyBorrowed  = errors.New("book already borrowed by this user")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden access")
	ErrStoreFailure     = errors.New("store failure")

	// ErrDuplicateLoan is returned by the store when a second active loan for the same
	// (book, borrower) pair hits the unique index.
	ErrDuplicateLoan = errors.New("duplicate active loan")
)

// MissingFieldsError reports required fields absent from a request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrValidationFailed }

// Invalid wraps ErrValidationFailed with a user facing reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

// StoreError wraps a backend error so callers can match it with ErrStoreFailure.
func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}
