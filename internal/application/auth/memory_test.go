package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

// memoryAccounts is an in-memory AccountRepository with the same contract
// as the postgres implementation: unique username/email, (nil, nil) on
// missing lookups, atomic token consumption.
type memoryAccounts struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{accounts: make(map[string]*domain.Account)}
}

func (m *memoryAccounts) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return domerrors.ErrDuplicateAccount
		}
	}
	cp := *account
	m.accounts[account.ID.String()] = &cp
	return nil
}

func (m *memoryAccounts) GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id.String()]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *memoryAccounts) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return m.find(func(a *domain.Account) bool { return a.Username == username })
}

func (m *memoryAccounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return m.find(func(a *domain.Account) bool { return a.Email == email })
}

func (m *memoryAccounts) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.Account, error) {
	return m.find(func(a *domain.Account) bool { return a.Username == username || a.Email == email })
}

func (m *memoryAccounts) ConsumeVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, a := range m.accounts {
		if a.VerificationTokenLive(token, now) {
			a.MarkVerified(now)
			cp := *a
			return &cp, nil
		}
	}
	return nil, domerrors.ErrTokenInvalidOrExpired
}

func (m *memoryAccounts) GetByResetToken(ctx context.Context, token string) (*domain.Account, error) {
	now := time.Now()
	return m.find(func(a *domain.Account) bool { return a.ResetTokenLive(token, now) })
}

func (m *memoryAccounts) SetResetToken(ctx context.Context, id domain.AccountID, token string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id.String()]
	if !ok {
		return domerrors.ErrAccountNotFound
	}
	a.RequestReset(token, expiry, time.Now())
	return nil
}

func (m *memoryAccounts) ConsumeResetToken(ctx context.Context, id domain.AccountID, token, newDigest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id.String()]
	if !ok || !a.ResetTokenLive(token, time.Now()) {
		return domerrors.ErrAccountNotFound
	}
	a.CompleteReset(newDigest, time.Now())
	return nil
}

func (m *memoryAccounts) UpdateSecretDigest(ctx context.Context, id domain.AccountID, newDigest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id.String()]
	if !ok {
		return domerrors.ErrAccountNotFound
	}
	a.SecretDigest = newDigest
	a.UpdatedAt = time.Now()
	return nil
}

func (m *memoryAccounts) find(match func(*domain.Account) bool) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if match(a) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// expireVerificationToken rewinds the stored expiry for expiry tests.
func (m *memoryAccounts) expireVerificationToken(id domain.AccountID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id.String()]; ok && a.VerificationTokenExpiry != nil {
		past := time.Now().Add(-time.Minute)
		a.VerificationTokenExpiry = &past
	}
}

func (m *memoryAccounts) expireResetToken(id domain.AccountID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id.String()]; ok && a.ResetTokenExpiry != nil {
		past := time.Now().Add(-time.Minute)
		a.ResetTokenExpiry = &past
	}
}

// plainHasher is a transparent SecretHasher for tests; the salt counter
// keeps digests distinct across calls like the real hasher.
type plainHasher struct {
	mu   sync.Mutex
	next int
}

func (h *plainHasher) Hash(secret string) (string, error) {
	h.mu.Lock()
	h.next++
	n := h.next
	h.mu.Unlock()
	return fmt.Sprintf("digest:%d:%s", n, secret), nil
}

func (h *plainHasher) Verify(secret, digest string) bool {
	parts := strings.SplitN(digest, ":", 3)
	return len(parts) == 3 && parts[0] == "digest" && parts[2] == secret
}

// recordingMail captures enqueued mail for assertions.
type recordingMail struct {
	mu            sync.Mutex
	verifications []string // link URLs
	resets        []string
}

func (m *recordingMail) EnqueueVerificationMail(ctx context.Context, email, username, linkURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, linkURL)
	return nil
}

func (m *recordingMail) EnqueuePasswordResetMail(ctx context.Context, email, username, linkURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, linkURL)
	return nil
}

// seqTokens hands out predictable opaque tokens.
type seqTokens struct {
	mu   sync.Mutex
	next int
}

func (s *seqTokens) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("token-%04d", s.next), nil
}
