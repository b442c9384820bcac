package handlers

// Stable error kinds returned in the envelope's error field.
const (
	KindValidation            = "validation_error"
	KindDuplicateAccount      = "duplicate_account"
	KindAccountNotFound       = "account_not_found"
	KindSecretMismatch        = "secret_mismatch"
	KindTokenInvalidOrExpired = "token_invalid_or_expired"
	KindUnauthenticated       = "unauthenticated"
	KindForbidden             = "forbidden"
	KindInternal              = "internal_error"
)
