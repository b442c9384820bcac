package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidation("username", "is required")
	if got, want := err.Error(), "username is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(NewValidation("email", "must be a valid email address")) {
		t.Error("IsValidation missed a ValidationError")
	}
	wrapped := fmt.Errorf("execute: %w", NewValidation("password", "is required"))
	if !IsValidation(wrapped) {
		t.Error("IsValidation missed a wrapped ValidationError")
	}
	if IsValidation(ErrAccountNotFound) {
		t.Error("IsValidation matched a sentinel error")
	}
	if IsValidation(nil) {
		t.Error("IsValidation matched nil")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrDuplicateAccount,
		ErrAccountNotFound,
		ErrSecretMismatch,
		ErrTokenInvalidOrExpired,
		ErrSessionExpired,
		ErrSessionInvalid,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && stderrors.Is(a, b) {
				t.Errorf("sentinel %d matches sentinel %d", i, j)
			}
		}
	}
}
