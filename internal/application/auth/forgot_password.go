package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

type ForgotPasswordInput struct {
	Email string
}

type ForgotPasswordResult struct{}

// ForgotPassword enters the reset-requested state, overwriting any prior
// reset token, and enqueues the reset mail. The mail is fire-and-forget;
// the state change is already committed when it is enqueued.
type ForgotPassword struct {
	accounts    ports.AccountRepository
	tokens      ports.OpaqueTokenSource
	mail        ports.MailEnqueuer
	frontendURI string
	tokenTTL    time.Duration
}

func NewForgotPassword(accounts ports.AccountRepository, tokens ports.OpaqueTokenSource, mail ports.MailEnqueuer, frontendURI string, tokenTTL time.Duration) *ForgotPassword {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &ForgotPassword{
		accounts:    accounts,
		tokens:      tokens,
		mail:        mail,
		frontendURI: strings.TrimRight(frontendURI, "/"),
		tokenTTL:    tokenTTL,
	}
}

func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	email := normalize(input.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	account, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domerrors.ErrAccountNotFound
	}

	token, err := uc.tokens.Generate()
	if err != nil {
		return nil, err
	}
	expiry := time.Now().Add(uc.tokenTTL)
	if err := uc.accounts.SetResetToken(ctx, account.ID, token, expiry); err != nil {
		return nil, err
	}

	linkURL := fmt.Sprintf("%s/resetPassword/%s", uc.frontendURI, token)
	_ = uc.mail.EnqueuePasswordResetMail(ctx, account.Email, account.Username, linkURL)

	return &ForgotPasswordResult{}, nil
}
