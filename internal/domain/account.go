package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountID is a value object for account identity.
type AccountID struct{ uuid.UUID }

// NewAccountID creates a new AccountID from uuid.
func NewAccountID(id uuid.UUID) AccountID { return AccountID{UUID: id} }

// String returns the canonical string form.
func (a AccountID) String() string { return a.UUID.String() }

// ParseAccountID parses the string form of an account id.
func ParseAccountID(s string) (AccountID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID{UUID: id}, nil
}

// Account is an identity record. SecretDigest and the token fields never
// leave this package undredacted; see Public.
type Account struct {
	ID             AccountID
	Username       string
	Email          string
	SecretDigest   string
	ProfilePicture string
	Verified       bool

	// Verification sub-state: set while unverified, cleared exactly once
	// when the verification transition fires.
	VerificationToken       *string
	VerificationTokenExpiry *time.Time

	// Reset sub-state: set while a reset request is active. Regeneration
	// overwrites; expiry is checked at presentation time, never swept.
	ResetToken       *string
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicAccount is the account representation safe to embed in session
// tokens and API responses. No secret or token fields.
type PublicAccount struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Verified       bool      `json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// Public returns the redacted view of the account.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:             a.ID.String(),
		Username:       a.Username,
		Email:          a.Email,
		ProfilePicture: a.ProfilePicture,
		Verified:       a.Verified,
		CreatedAt:      a.CreatedAt,
	}
}

// VerificationTokenLive reports whether the presented token matches the
// stored one and has not expired at now.
func (a *Account) VerificationTokenLive(token string, now time.Time) bool {
	return a.VerificationToken != nil && *a.VerificationToken == token &&
		a.VerificationTokenExpiry != nil && now.Before(*a.VerificationTokenExpiry)
}

// ResetTokenLive reports whether the presented reset token matches and is
// unexpired at now.
func (a *Account) ResetTokenLive(token string, now time.Time) bool {
	return a.ResetToken != nil && *a.ResetToken == token &&
		a.ResetTokenExpiry != nil && now.Before(*a.ResetTokenExpiry)
}

// MarkVerified fires the verification transition: Verified becomes true
// (monotonic, terminal) and the token fields are cleared so replay fails.
func (a *Account) MarkVerified(now time.Time) {
	a.Verified = true
	a.VerificationToken = nil
	a.VerificationTokenExpiry = nil
	a.UpdatedAt = now
}

// RequestReset enters ResetRequested, invalidating any prior reset token.
func (a *Account) RequestReset(token string, expiry time.Time, now time.Time) {
	a.ResetToken = &token
	a.ResetTokenExpiry = &expiry
	a.UpdatedAt = now
}

// CompleteReset replaces the secret digest and leaves the reset state.
func (a *Account) CompleteReset(newDigest string, now time.Time) {
	a.SecretDigest = newDigest
	a.ResetToken = nil
	a.ResetTokenExpiry = nil
	a.UpdatedAt = now
}
