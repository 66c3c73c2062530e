package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Not-found: the id does not resolve to an entity of the expected type.
var ErrUserNotFound = errors.New("user not found")
var ErrGroupNotFound = errors.New("group not found")
var ErrPolicyNotFound = errors.New("policy not found")
var ErrRequestNotFound = errors.New("access request not found")

// Conflict: a uniqueness violation on username, email, group name, or policy
// name. Distinct from validation failures.
var ErrUsernameTaken = errors.New("username already taken")
var ErrEmailTaken = errors.New("email already taken")
var ErrGroupNameTaken = errors.New("group name already taken")
var ErrPolicyNameTaken = errors.New("policy name already taken")

// Validation: malformed input or dangling references.
var ErrValidation = errors.New("validation failed")

// Authentication vs authorization: ErrInvalidCredentials means the identity
// itself did not resolve; ErrForbidden means it resolved but resolution
// denied the operation.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// State errors: illegal transitions on otherwise well-formed input.
var ErrInvalidTransition = errors.New("request already processed")
var ErrPendingRequestExists = errors.New("a pending request for this group already exists")
var ErrAlreadyMember = errors.New("user is already a member of this group")
var ErrSelfDeletion = errors.New("cannot delete own user account")

// ErrSnapshotWrite is the store fault returned when the durable snapshot
// flush fails. The mutation's success must not be reported past it.
var ErrSnapshotWrite = errors.New("snapshot write failed")

// ValidationError carries the offending field and, for dangling-reference
// failures, the ids that did not resolve. It unwraps to ErrValidation so
// callers can classify it with errors.Is.
type ValidationError struct {
	Field  string
	IDs    []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.IDs) > 0 {
		return fmt.Sprintf("validation failed: %s references unknown ids: %s", e.Field, strings.Join(e.IDs, ", "))
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewDanglingRefError builds a ValidationError for reference-list writes
// where one or more ids did not resolve.
func NewDanglingRefError(field string, ids []string) *ValidationError {
	return &ValidationError{Field: field, IDs: ids}
}

// NewFieldError builds a ValidationError for a malformed or missing field.
func NewFieldError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
