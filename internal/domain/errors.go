package domain

import "fmt"

// ValidationError names the first offending field of a request. Always a
// client fault; never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError signals that a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StoreError wraps a record-store failure. The core never retries; a
// higher layer may.
type StoreError struct {
	Cause error
}

func (e *StoreError) Error() string { return "store: " + e.Cause.Error() }

func (e *StoreError) Unwrap() error { return e.Cause }
