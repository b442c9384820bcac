package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

func seedAccount(t *testing.T, accounts *memoryAccounts) *domain.Account {
	t.Helper()
	signup := newSignup(accounts, &recordingMail{})
	res, err := signup.Execute(context.Background(), SignupInput{
		Username: "rodaina", Email: "rodaina@example.com", Secret: "correct-horse",
	})
	require.NoError(t, err)
	return res.Account
}

func TestForgotPasswordSetsResetToken(t *testing.T) {
	accounts := newMemoryAccounts()
	account := seedAccount(t, accounts)
	mail := &recordingMail{}

	forgot := NewForgotPassword(accounts, &seqTokens{}, mail, "http://localhost:4200", 0)
	_, err := forgot.Execute(context.Background(), ForgotPasswordInput{Email: "rodaina@example.com"})
	require.NoError(t, err)

	stored, err := accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiry)

	require.Len(t, mail.resets, 1)
	assert.Equal(t, "http://localhost:4200/resetPassword/"+*stored.ResetToken, mail.resets[0])
}

func TestForgotPasswordSecondRequestInvalidatesFirstToken(t *testing.T) {
	accounts := newMemoryAccounts()
	seedAccount(t, accounts)

	forgot := NewForgotPassword(accounts, &seqTokens{}, &recordingMail{}, "http://localhost:4200", 0)
	_, err := forgot.Execute(context.Background(), ForgotPasswordInput{Email: "rodaina@example.com"})
	require.NoError(t, err)
	first, err := accounts.GetByEmail(context.Background(), "rodaina@example.com")
	require.NoError(t, err)
	firstToken := *first.ResetToken

	_, err = forgot.Execute(context.Background(), ForgotPasswordInput{Email: "rodaina@example.com"})
	require.NoError(t, err)

	check := NewCheckResetToken(accounts)
	_, err = check.Execute(context.Background(), CheckResetTokenInput{Token: firstToken})
	assert.ErrorIs(t, err, domerrors.ErrTokenInvalidOrExpired)

	second, err := accounts.GetByEmail(context.Background(), "rodaina@example.com")
	require.NoError(t, err)
	_, err = check.Execute(context.Background(), CheckResetTokenInput{Token: *second.ResetToken})
	assert.NoError(t, err)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	forgot := NewForgotPassword(newMemoryAccounts(), &seqTokens{}, &recordingMail{}, "http://localhost:4200", 0)
	_, err := forgot.Execute(context.Background(), ForgotPasswordInput{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, domerrors.ErrAccountNotFound)
}

func TestForgotPasswordInvalidEmail(t *testing.T) {
	forgot := NewForgotPassword(newMemoryAccounts(), &seqTokens{}, &recordingMail{}, "http://localhost:4200", 0)
	_, err := forgot.Execute(context.Background(), ForgotPasswordInput{Email: "not-an-email"})
	assert.True(t, domerrors.IsValidation(err))
}

func TestCheckResetTokenReturnsAccountID(t *testing.T) {
	accounts := newMemoryAccounts()
	account := seedAccount(t, accounts)

	forgot := NewForgotPassword(accounts, &seqTokens{}, &recordingMail{}, "http://localhost:4200", 0)
	_, err := forgot.Execute(context.Background(), ForgotPasswordInput{Email: "rodaina@example.com"})
	require.NoError(t, err)
	stored, err := accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)

	check := NewCheckResetToken(accounts)
	res, err := check.Execute(context.Background(), CheckResetTokenInput{Token: *stored.ResetToken})
	require.NoError(t, err)
	assert.Equal(t, account.ID, res.AccountID)

	// Read-only: the token stays live for a second check.
	again, err := check.Execute(context.Background(), CheckResetTokenInput{Token: *stored.ResetToken})
	require.NoError(t, err)
	assert.Equal(t, res.AccountID, again.AccountID)
}

func TestCheckResetTokenExpired(t *testing.T) {
	accounts := newMemoryAccounts()
	account := seedAccount(t, accounts)

	forgot := NewForgotPassword(accounts, &seqTokens{}, &recordingMail{}, "http://localhost:4200", 0)
	_, err := forgot.Execute(context.Background(), ForgotPasswordInput{Email: "rodaina@example.com"})
	require.NoError(t, err)
	stored, err := accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	token := *stored.ResetToken
	accounts.expireResetToken(account.ID)

	check := NewCheckResetToken(accounts)
	_, err = check.Execute(context.Background(), CheckResetTokenInput{Token: token})
	assert.ErrorIs(t, err, domerrors.ErrTokenInvalidOrExpired)
}

func TestCheckResetTokenUnknown(t *testing.T) {
	check := NewCheckResetToken(newMemoryAccounts())
	for _, token := range []string{"", "no-such-token", strings.Repeat("x", 64)} {
		_, err := check.Execute(context.Background(), CheckResetTokenInput{Token: token})
		assert.ErrorIs(t, err, domerrors.ErrTokenInvalidOrExpired)
	}
}
