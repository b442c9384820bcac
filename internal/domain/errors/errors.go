package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for handlers to map to HTTP status. These are expected
// business outcomes, not failures; none of them should surface as a 500.
var (
	ErrDuplicateAccount      = errors.New("username or email already exists, please choose another")
	ErrAccountNotFound       = errors.New("account not found")
	ErrSecretMismatch        = errors.New("password is incorrect")
	ErrTokenInvalidOrExpired = errors.New("token is invalid or has expired")
	ErrSessionExpired        = errors.New("session has expired, please login again")
	ErrSessionInvalid        = errors.New("session token is invalid")
)

// ValidationError reports the first failing input constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for a field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
