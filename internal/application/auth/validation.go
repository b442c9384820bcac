package auth

import (
	"regexp"
	"strings"

	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minSecretLength   = 8
)

// normalize trims and lowercases an identifier (username or email).
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateUsername(username string) error {
	if username == "" {
		return domerrors.NewValidation("username", "is required")
	}
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return domerrors.NewValidation("username", "must be between 3 and 30 characters")
	}
	if !usernameRegex.MatchString(username) {
		return domerrors.NewValidation("username", "must only contain alphanumeric characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return domerrors.NewValidation("email", "is required")
	}
	if !emailRegex.MatchString(email) {
		return domerrors.NewValidation("email", "must be a valid email address")
	}
	return nil
}

func validateSecret(field, secret string) error {
	if secret == "" {
		return domerrors.NewValidation(field, "is required")
	}
	if len(secret) < minSecretLength {
		return domerrors.NewValidation(field, "must be at least 8 characters")
	}
	return nil
}

func validateConfirmation(secret, confirm string) error {
	if secret != confirm {
		return domerrors.NewValidation("confirmPassword", "must match password")
	}
	return nil
}
