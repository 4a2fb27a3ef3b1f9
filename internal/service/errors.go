package service

import (
	"errors"
	"fmt"

	"medidex/internal/store"
)

// ErrNotFound signals an unknown order or resource.
var ErrNotFound = store.ErrNotFound

// ValidationError marks malformed or missing input. Its message is safe to
// return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AuthError marks a missing, invalid or expired credential, or an inactive
// account.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ErrAccountInactive is the AuthError returned when a token resolves to a
// deactivated account; callers map it to 403 instead of 401.
var ErrAccountInactive = &AuthError{Message: "account is inactive"}

func authErr(message string) error {
	return &AuthError{Message: message}
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
