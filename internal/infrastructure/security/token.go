package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// MinTokenBytes is the floor for opaque token entropy.
const MinTokenBytes = 24

// DefaultTokenBytes matches the 32 bytes used for verification and reset
// tokens.
const DefaultTokenBytes = 32

// TokenSource implements ports.OpaqueTokenSource: random, URL-safe,
// structure-free tokens used as single-use capabilities.
type TokenSource struct {
	size int
}

func NewTokenSource(size int) *TokenSource {
	if size < MinTokenBytes {
		size = DefaultTokenBytes
	}
	return &TokenSource{size: size}
}

func (s *TokenSource) Generate() (string, error) {
	buf := make([]byte, s.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token generation: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
