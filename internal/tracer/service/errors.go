package service

import (
	"errors"
	"fmt"
)

// Every error here is recoverable at the caller: the HTTP layer maps each to
// a user-facing message and a correction path.
var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrUnknownUser        = errors.New("unknown user")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// ValidationError reports a rejected purchase or profile field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
