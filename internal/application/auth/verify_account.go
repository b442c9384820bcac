package auth

import (
	"context"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

type VerifyAccountInput struct {
	Token string
}

type VerifyAccountResult struct {
	Account *domain.Account
}

// VerifyAccount consumes a live verification token: the matching account
// becomes verified and the token is cleared in the same store update, so
// presenting the token again fails.
type VerifyAccount struct {
	accounts ports.AccountRepository
}

func NewVerifyAccount(accounts ports.AccountRepository) *VerifyAccount {
	return &VerifyAccount{accounts: accounts}
}

func (uc *VerifyAccount) Execute(ctx context.Context, input VerifyAccountInput) (*VerifyAccountResult, error) {
	if input.Token == "" {
		return nil, domerrors.ErrTokenInvalidOrExpired
	}
	account, err := uc.accounts.ConsumeVerificationToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}
	return &VerifyAccountResult{Account: account}, nil
}
