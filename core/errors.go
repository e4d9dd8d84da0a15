package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError indicates that no record matched a lookup.
type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{message: msg}
}

func (err NotFoundError) Error() string { return err.message }

// ConflictError indicates a duplicate of an existing record's key.
type ConflictError struct {
	message string
}

func NewConflictError(msg string) error {
	return &ConflictError{message: msg}
}

func (err ConflictError) Error() string { return err.message }

// UnauthorizedError indicates a credential mismatch.
type UnauthorizedError struct {
	message string
}

func NewUnauthorizedError(msg string) error {
	return &UnauthorizedError{message: msg}
}

func (err UnauthorizedError) Error() string { return err.message }

// NotApprovedError indicates valid credentials on a gated account.
type NotApprovedError struct {
	message string
}

func NewNotApprovedError(msg string) error {
	return &NotApprovedError{message: msg}
}

func (err NotApprovedError) Error() string { return err.message }

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
