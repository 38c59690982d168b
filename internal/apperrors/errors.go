package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// Soft-deleted and inaccessible resources surface this same error so callers
// cannot distinguish them from resources that never existed.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the requested mutation is incompatible with the
// current state of the resource (e.g. editing a non-draft report, or creating
// a duplicate entry for the same mission and date).
var ErrConflict = errors.New("state conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrIntegrity indicates the ledger store's history diverged from the recorded
// revisions. It is fatal: it is never auto-retried and requires operator action.
var ErrIntegrity = errors.New("ledger integrity violation")

// ErrRetryable indicates a transient ledger-store failure; the operation left
// no partial state behind and is safe to retry.
var ErrRetryable = errors.New("transient failure, retry")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause. It is
// used by the repository layer for failures that have no sentinel of their own.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
