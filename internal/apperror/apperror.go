// Package apperror defines the error taxonomy shared by the catalog and
// order domains. Each error carries a human-readable detail string; the
// handler layer maps the types to HTTP statuses (400 / 404 / 500).
package apperror

import "fmt"

// ValidationError indicates malformed or out-of-range input.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return e.Detail
}

// NotFound builds a NotFoundError from a format string.
func NotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Detail: fmt.Sprintf(format, args...)}
}

// DatabaseError indicates an underlying store operation failed. The wrapped
// cause is kept for logging; only Detail is surfaced to clients.
type DatabaseError struct {
	Detail string
	Err    error
}

func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// Database wraps a store-level failure.
func Database(detail string, err error) *DatabaseError {
	return &DatabaseError{Detail: detail, Err: err}
}
