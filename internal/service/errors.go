package service

import (
	"errors"

	"github.com/advisio/crm-console/internal/validate"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrDuplicateRegistration = errors.New("contract with this registration number already exists")
)

// ValidationError carries per-field messages from the form validation
// layer. It unwraps to ErrInvalidInput so the transport maps it like any
// other bad input.
type ValidationError struct {
	Fields validate.FieldErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
