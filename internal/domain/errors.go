package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateReference is returned when a generated reference code
// collides with an existing one. Callers regenerate and retry.
var ErrDuplicateReference = errors.New("reference code already in use")

// ValidationError reports a malformed submission. No record is created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidStateError reports an attempted transition from a state other
// than the one the operation requires, e.g. re-approving a verified
// transaction. The underlying record is unchanged.
type InvalidStateError struct {
	Entity string
	ID     string
	Want   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is not %s", e.Entity, e.ID, e.Want)
}

// PermissionError reports a caller without the role an operation needs.
type PermissionError struct {
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("not allowed: %s requires admin role", e.Action)
}

// ConflictError reports a lost race on a contended resource, e.g. two
// buyers claiming the same marketplace item.
type ConflictError struct {
	Entity string
	ID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s was claimed by a concurrent operation", e.Entity, e.ID)
}

// DependencyError wraps a failure of an external collaborator (ledger
// store, proof storage). The caller decides whether to retry.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }
