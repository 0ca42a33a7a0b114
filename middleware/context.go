package middleware

import (
	"context"

	"github.com/astoria-research/astoria/auth"
)

// Context key type to avoid collisions
type contextKey string

// IdentityKey is the context key for the authenticated identity
const IdentityKey contextKey = "identity"

// WithIdentity adds an authenticated identity to the context
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext retrieves the authenticated identity from context,
// or nil when the request did not pass RequireAuth.
func GetIdentityFromContext(ctx context.Context) *auth.Identity {
	if val := ctx.Value(IdentityKey); val != nil {
		if identity, ok := val.(*auth.Identity); ok {
			return identity
		}
	}
	return nil
}
