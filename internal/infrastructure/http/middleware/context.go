package middleware

import (
	"context"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the verified session identity into the context.
func WithIdentity(ctx context.Context, identity *ports.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the verified identity, or nil when the
// request did not pass the session gate.
func IdentityFromContext(ctx context.Context) *ports.Identity {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return nil
	}
	id, _ := v.(*ports.Identity)
	return id
}
