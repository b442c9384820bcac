package auth

import (
	"context"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

type CheckResetTokenInput struct {
	Token string
}

type CheckResetTokenResult struct {
	AccountID domain.AccountID
}

// CheckResetToken proves a reset token is currently usable and returns the
// owning account id. Read-only; the token stays live.
type CheckResetToken struct {
	accounts ports.AccountRepository
}

func NewCheckResetToken(accounts ports.AccountRepository) *CheckResetToken {
	return &CheckResetToken{accounts: accounts}
}

func (uc *CheckResetToken) Execute(ctx context.Context, input CheckResetTokenInput) (*CheckResetTokenResult, error) {
	if input.Token == "" {
		return nil, domerrors.ErrTokenInvalidOrExpired
	}
	account, err := uc.accounts.GetByResetToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domerrors.ErrTokenInvalidOrExpired
	}
	return &CheckResetTokenResult{AccountID: account.ID}, nil
}
