package ports

import (
	"context"
	"time"

	"github.com/rodainahassan/gatehouse/internal/domain"
)

// AccountRepository defines persistence for accounts. Lookups return
// (nil, nil) when no account matches. Token consumption is atomic: a single
// conditional update that matches token and liveness and clears the token
// fields, so two racing requests cannot both consume the same token.
type AccountRepository interface {
	// Create persists a new account. A unique-index violation on username
	// or email surfaces as errors.ErrDuplicateAccount.
	Create(ctx context.Context, account *domain.Account) error

	GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.Account, error)

	// ConsumeVerificationToken marks the matching account verified and
	// clears the verification token fields in one conditional update.
	// Returns errors.ErrTokenInvalidOrExpired when no live match exists.
	ConsumeVerificationToken(ctx context.Context, token string) (*domain.Account, error)

	// GetByResetToken returns the account holding a live reset token, or
	// (nil, nil). Read-only; used by the pre-reset token check.
	GetByResetToken(ctx context.Context, token string) (*domain.Account, error)

	// SetResetToken enters (or re-enters) the reset-requested state,
	// overwriting any prior reset token.
	SetResetToken(ctx context.Context, id domain.AccountID, token string, expiry time.Time) error

	// ConsumeResetToken replaces the secret digest and clears the reset
	// token fields in one conditional update matching id, token and
	// liveness. Returns errors.ErrAccountNotFound when nothing matched.
	ConsumeResetToken(ctx context.Context, id domain.AccountID, token, newDigest string) error

	// UpdateSecretDigest replaces the stored digest (change-password path).
	UpdateSecretDigest(ctx context.Context, id domain.AccountID, newDigest string) error
}
