package auth

import (
	"context"
	"strings"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

type LoginInput struct {
	Username string
	Secret   string
}

type LoginResult struct {
	SessionToken string
	Account      *domain.Account
}

// Login checks the secret against the stored digest and issues a signed
// session token. Verification status is informational; it does not gate
// login.
type Login struct {
	accounts ports.AccountRepository
	hasher   ports.SecretHasher
	sessions ports.SessionIssuer
}

func NewLogin(accounts ports.AccountRepository, hasher ports.SecretHasher, sessions ports.SessionIssuer) *Login {
	return &Login{accounts: accounts, hasher: hasher, sessions: sessions}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := normalize(input.Username)
	secret := strings.TrimSpace(input.Secret)
	if username == "" {
		return nil, domerrors.NewValidation("username", "is required")
	}
	if secret == "" {
		return nil, domerrors.NewValidation("password", "is required")
	}

	account, err := uc.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domerrors.ErrAccountNotFound
	}
	if !uc.hasher.Verify(secret, account.SecretDigest) {
		return nil, domerrors.ErrSecretMismatch
	}

	token, err := uc.sessions.Issue(account)
	if err != nil {
		return nil, err
	}
	return &LoginResult{SessionToken: token, Account: account}, nil
}
