// Package apperr holds the error taxonomy shared by the store, service and
// handler layers. Callers match with errors.Is; handlers map each sentinel
// to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrAuth                = errors.New("not authorized")
	ErrForbidden           = errors.New("permission denied")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrStorage             = errors.New("storage error")
)

// FieldError is an ErrInvalidInput tied to one request field.
type FieldError struct {
	Field  string
	Reason string
}

func Invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *FieldError) Is(target error) bool { return target == ErrInvalidInput }

// Storage wraps a collaborator failure so it matches ErrStorage while keeping
// the driver error in the chain.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
