package ports

import "github.com/rodainahassan/gatehouse/internal/domain"

// SecretHasher hashes and verifies account secrets (Argon2id).
type SecretHasher interface {
	// Hash returns a salted one-way digest. Two calls with the same input
	// produce different digests. Errors only on entropy failure.
	Hash(secret string) (string, error)
	// Verify compares in constant time. Malformed digests verify false.
	Verify(secret, digest string) bool
}

// OpaqueTokenSource generates cryptographically random, URL-safe tokens
// for the verification and reset flows.
type OpaqueTokenSource interface {
	Generate() (string, error)
}

// Identity is the verified, public-safe identity decoded from a session
// token. Guarded operations receive it explicitly, never via shared state.
type Identity struct {
	AccountID domain.AccountID
	Username  string
	Email     string
	Verified  bool
}

// SessionIssuer signs and validates session tokens under a server-held key.
type SessionIssuer interface {
	Issue(account *domain.Account) (string, error)
	// Validate fails with errors.ErrSessionExpired or errors.ErrSessionInvalid
	// and never returns claims from an unverified token.
	Validate(token string) (*Identity, error)
}
