package utils

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Errors with a fixed client facing message
var (
	ErrMovieNotFound      = &DetailError{Detail: "movie not found", Kind: ErrNotFound}
	ErrCommentNotFound    = &DetailError{Detail: "comment not found", Kind: ErrNotFound}
	ErrReplyNotFound      = &DetailError{Detail: "reply not found", Kind: ErrNotFound}
	ErrUserNotFound       = &DetailError{Detail: "user not found", Kind: ErrNotFound}
	ErrInvalidCredentials = &DetailError{Detail: "Incorrect username or password", Kind: ErrUnauthorized}
	ErrInvalidToken       = &DetailError{Detail: "Could not validate credentials", Kind: ErrUnauthorized}
	ErrUsernameTaken      = &DetailError{Detail: "username already registered", Kind: ErrConflict}
	ErrEmailTaken         = &DetailError{Detail: "email already registered", Kind: ErrConflict}
)

// DetailError is an error whose Detail is safe to return to the client.
type DetailError struct {
	Detail string
	Kind   error
}

func (e *DetailError) Error() string { return e.Detail }

func (e *DetailError) Unwrap() error { return e.Kind }

// Forbidden builds an ownership error for the given resource.
func Forbidden(resource string) error {
	return &DetailError{Detail: fmt.Sprintf("not the owner of this %s", resource), Kind: ErrForbidden}
}

// ValidationError carries field level messages.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
