package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

// SessionIssuer implements ports.SessionIssuer with HS256 under a
// server-held key. Claims carry only the account's public view.
type SessionIssuer struct {
	key    []byte
	issuer string
	ttl    time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

func NewSessionIssuer(key []byte, issuer string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{key: key, issuer: issuer, ttl: ttl}
}

func (s *SessionIssuer) Issue(account *domain.Account) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: account.Username,
		Email:    account.Email,
		Verified: account.Verified,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Validate decodes and checks the token. An expired token fails with
// ErrSessionExpired; anything else that does not verify fails with
// ErrSessionInvalid. Claims from a token that fails verification are
// never returned.
func (s *SessionIssuer) Validate(tokenString string) (*ports.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domerrors.ErrSessionExpired
		}
		return nil, domerrors.ErrSessionInvalid
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, domerrors.ErrSessionInvalid
	}
	accountID, err := domain.ParseAccountID(claims.Subject)
	if err != nil {
		return nil, domerrors.ErrSessionInvalid
	}
	return &ports.Identity{
		AccountID: accountID,
		Username:  claims.Username,
		Email:     claims.Email,
		Verified:  claims.Verified,
	}, nil
}

var _ ports.SessionIssuer = (*SessionIssuer)(nil)
