package auth

import (
	"context"
	"strings"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

type ChangePasswordInput struct {
	// AccountID comes from a verified session token, never from the body.
	AccountID     domain.AccountID
	CurrentSecret string
	NewSecret     string
	ConfirmSecret string
}

type ChangePasswordResult struct{}

// ChangePassword replaces the digest for an authenticated account after
// re-checking the current secret.
type ChangePassword struct {
	accounts ports.AccountRepository
	hasher   ports.SecretHasher
}

func NewChangePassword(accounts ports.AccountRepository, hasher ports.SecretHasher) *ChangePassword {
	return &ChangePassword{accounts: accounts, hasher: hasher}
}

func (uc *ChangePassword) Execute(ctx context.Context, input ChangePasswordInput) (*ChangePasswordResult, error) {
	current := strings.TrimSpace(input.CurrentSecret)
	secret := strings.TrimSpace(input.NewSecret)
	confirm := strings.TrimSpace(input.ConfirmSecret)
	if current == "" {
		return nil, domerrors.NewValidation("currentPassword", "is required")
	}
	if err := validateSecret("password", secret); err != nil {
		return nil, err
	}
	if err := validateConfirmation(secret, confirm); err != nil {
		return nil, err
	}

	account, err := uc.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domerrors.ErrAccountNotFound
	}
	if !uc.hasher.Verify(current, account.SecretDigest) {
		return nil, domerrors.ErrSecretMismatch
	}

	digest, err := uc.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.UpdateSecretDigest(ctx, account.ID, digest); err != nil {
		return nil, err
	}
	return &ChangePasswordResult{}, nil
}
