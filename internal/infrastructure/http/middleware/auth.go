package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

// SessionGate validates the bearer session token and attaches the decoded
// identity to the request context (see IdentityFromContext).
type SessionGate struct {
	sessions ports.SessionIssuer
}

func NewSessionGate(sessions ports.SessionIssuer) *SessionGate {
	return &SessionGate{sessions: sessions}
}

// RequireSession rejects the request with 401 unless it carries a valid,
// unexpired bearer token. The guarded handler never runs on failure.
func (m *SessionGate) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeGateErr(w, http.StatusUnauthorized, "please login first to access our services")
			return
		}
		identity, err := m.sessions.Validate(token)
		if err != nil {
			if errors.Is(err, domerrors.ErrSessionExpired) {
				writeGateErr(w, http.StatusUnauthorized, "login timed out, please login again")
				return
			}
			writeGateErr(w, http.StatusUnauthorized, "session token is invalid")
			return
		}
		ctx := WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireGuest is the inverse gate for signup/login/forgot/reset paths:
// the mere presence of a bearer token rejects the request with 403,
// independent of the token's validity.
func RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bearerToken(r) != "" {
			writeGateErr(w, http.StatusForbidden, "you are already logged in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	// Accept both "Bearer <token>" and a bare token value.
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

func writeGateErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"data":    nil,
	})
}
