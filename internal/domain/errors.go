package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by repositories, services and handlers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
)

// FieldError is one rejected input field and the message shown next to it.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports every rejected field of one input at once. It
// matches ErrValidation under errors.Is.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	names := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		names[i] = fe.Field
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Fields maps each field to its first message.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// NewValidationError rejects a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// Violations accumulates field errors during validation. The zero value is
// ready to use.
type Violations struct {
	errs []FieldError
}

// Add records a rejected field.
func (v *Violations) Add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// Require records message for field unless ok holds.
func (v *Violations) Require(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Err is nil when nothing was recorded and a *ValidationError otherwise.
func (v *Violations) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errs}
}
