package auth

import (
	"context"
	"strings"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

type ResetPasswordInput struct {
	AccountID     string
	Token         string
	NewSecret     string
	ConfirmSecret string
}

type ResetPasswordResult struct{}

// ResetPassword replaces the secret digest for the account holding the
// presented live reset token, clearing the token in the same store update.
type ResetPassword struct {
	accounts ports.AccountRepository
	hasher   ports.SecretHasher
}

func NewResetPassword(accounts ports.AccountRepository, hasher ports.SecretHasher) *ResetPassword {
	return &ResetPassword{accounts: accounts, hasher: hasher}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	secret := strings.TrimSpace(input.NewSecret)
	confirm := strings.TrimSpace(input.ConfirmSecret)
	if err := validateSecret("password", secret); err != nil {
		return nil, err
	}
	if err := validateConfirmation(secret, confirm); err != nil {
		return nil, err
	}
	id, err := domain.ParseAccountID(input.AccountID)
	if err != nil {
		return nil, domerrors.NewValidation("accountId", "must be a valid account id")
	}

	digest, err := uc.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.ConsumeResetToken(ctx, id, input.Token, digest); err != nil {
		return nil, err
	}
	return &ResetPasswordResult{}, nil
}
