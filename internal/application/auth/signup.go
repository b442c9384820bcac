package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

// DefaultTokenTTL is the verification and reset token window.
const DefaultTokenTTL = 24 * time.Hour

type SignupInput struct {
	Username       string
	Email          string
	Secret         string
	ProfilePicture string
}

type SignupResult struct {
	Account *domain.Account
}

// Signup creates an unverified account with a fresh verification token and
// enqueues the verification mail.
type Signup struct {
	accounts    ports.AccountRepository
	hasher      ports.SecretHasher
	tokens      ports.OpaqueTokenSource
	mail        ports.MailEnqueuer
	frontendURI string
	tokenTTL    time.Duration
}

func NewSignup(accounts ports.AccountRepository, hasher ports.SecretHasher, tokens ports.OpaqueTokenSource, mail ports.MailEnqueuer, frontendURI string, tokenTTL time.Duration) *Signup {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Signup{
		accounts:    accounts,
		hasher:      hasher,
		tokens:      tokens,
		mail:        mail,
		frontendURI: strings.TrimRight(frontendURI, "/"),
		tokenTTL:    tokenTTL,
	}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	username := normalize(input.Username)
	email := normalize(input.Email)
	secret := strings.TrimSpace(input.Secret)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateSecret("password", secret); err != nil {
		return nil, err
	}

	// Friendly pre-check; the unique index is the actual backstop and
	// Create maps a constraint violation to ErrDuplicateAccount.
	existing, err := uc.accounts.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrDuplicateAccount
	}

	digest, err := uc.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}
	token, err := uc.tokens.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiry := now.Add(uc.tokenTTL)
	account := &domain.Account{
		ID:                      domain.NewAccountID(uuid.New()),
		Username:                username,
		Email:                   email,
		SecretDigest:            digest,
		ProfilePicture:          strings.TrimSpace(input.ProfilePicture),
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	linkURL := fmt.Sprintf("%s/verifyAccount/%s", uc.frontendURI, token)
	_ = uc.mail.EnqueueVerificationMail(ctx, account.Email, account.Username, linkURL)

	return &SignupResult{Account: account}, nil
}
