package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodainahassan/gatehouse/internal/domain"
	infraauth "github.com/rodainahassan/gatehouse/internal/infrastructure/auth"
)

func issueToken(t *testing.T, issuer *infraauth.SessionIssuer) (domain.AccountID, string) {
	t.Helper()
	account := &domain.Account{
		ID:       domain.NewAccountID(uuid.New()),
		Username: "rodaina",
		Email:    "rodaina@example.com",
		Verified: true,
	}
	token, err := issuer.Issue(account)
	require.NoError(t, err)
	return account.ID, token
}

func TestRequireSessionMissingToken(t *testing.T) {
	issuer := infraauth.NewSessionIssuer([]byte("gate-key"), "gatehouse", time.Hour)
	gate := NewSessionGate(issuer)
	handler := gate.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("guarded handler ran without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/auth/changePassword", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "please login first to access our services")
}

func TestRequireSessionInvalidToken(t *testing.T) {
	issuer := infraauth.NewSessionIssuer([]byte("gate-key"), "gatehouse", time.Hour)
	gate := NewSessionGate(issuer)
	handler := gate.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("guarded handler ran with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodPatch, "/auth/changePassword", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session token is invalid")
}

func TestRequireSessionExpiredToken(t *testing.T) {
	expired := infraauth.NewSessionIssuer([]byte("gate-key"), "gatehouse", -time.Minute)
	_, token := issueToken(t, expired)

	gate := NewSessionGate(infraauth.NewSessionIssuer([]byte("gate-key"), "gatehouse", time.Hour))
	handler := gate.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("guarded handler ran with an expired token")
	}))

	req := httptest.NewRequest(http.MethodPatch, "/auth/changePassword", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "login timed out, please login again")
}

func TestRequireSessionAttachesIdentity(t *testing.T) {
	issuer := infraauth.NewSessionIssuer([]byte("gate-key"), "gatehouse", time.Hour)
	accountID, token := issueToken(t, issuer)

	gate := NewSessionGate(issuer)
	var seen *domain.AccountID
	handler := gate.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		require.NotNil(t, identity)
		seen = &identity.AccountID
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPatch, "/auth/changePassword", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, accountID, *seen)
}

func TestRequireSessionAcceptsBareToken(t *testing.T) {
	issuer := infraauth.NewSessionIssuer([]byte("gate-key"), "gatehouse", time.Hour)
	_, token := issueToken(t, issuer)

	gate := NewSessionGate(issuer)
	handler := gate.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPatch, "/auth/changePassword", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireGuestRejectsAnyBearer(t *testing.T) {
	handler := RequireGuest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("guest handler ran with a bearer token present")
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	// Validity is irrelevant; presence alone rejects.
	req.Header.Set("Authorization", "Bearer anything-at-all")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "you are already logged in")
}

func TestRequireGuestPassesWithoutToken(t *testing.T) {
	handler := RequireGuest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentityFromContextWithoutGate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, IdentityFromContext(req.Context()))
}
