package common

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel wrapped by NotFoundError so callers can
// match with errors.Is without caring about the concrete type.
var ErrNotFound = errors.New("not found")

// ValidationError reports an invalid mutation that was rejected before
// any persistence was attempted: an empty entity name, a relation
// endpoint that does not resolve, or a template authored with an
// out-of-range index.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an operation addressed to an id that does not
// exist. Deletes treat this as a no-op; updates surface it to the
// caller.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// HierarchyIntegrityError reports a Schema.org catalog that cannot be
// assembled into a single-rooted tree: a dangling parent reference,
// multiple roots, a cycle, or a duplicated type name. Index
// construction aborts rather than serving a partial tree.
type HierarchyIntegrityError struct {
	TypeName string
	Reason   string
}

func (e *HierarchyIntegrityError) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf("schema hierarchy integrity: %s", e.Reason)
	}
	return fmt.Sprintf("schema hierarchy integrity at %q: %s", e.TypeName, e.Reason)
}

// PartialFailure reports a compound operation where some sub-operations
// succeeded before one failed. The succeeded work is visible state the
// user must reconcile, so it is deliberately distinguishable from a
// total failure.
type PartialFailure struct {
	Op        string
	Succeeded int
	Failed    int
	Step      string
	Err       error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf(
		"%s partially failed at %s (%d succeeded, %d failed): %v",
		e.Op, e.Step, e.Succeeded, e.Failed, e.Err,
	)
}

func (e *PartialFailure) Unwrap() error {
	return e.Err
}
