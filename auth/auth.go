package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Authenticator is the contract the HTTP layer consumes: turn a raw bearer
// token into an authenticated identity, and gate identities on a role.
type Authenticator struct {
	verifier *TokenVerifier
	logger   *zap.Logger
}

// NewAuthenticator creates an Authenticator over the given verifier.
func NewAuthenticator(verifier *TokenVerifier, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		logger:   logger,
	}
}

// Authenticate verifies the token and extracts the identity. Every failure,
// verification or extraction, collapses to ErrUnauthorized.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	identity, err := ExtractIdentity(claims)
	if err != nil {
		// A correctly signed token without a subject is worth flagging.
		a.logger.Warn("verified token with unusable claims", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return identity, nil
}

// RequireRole returns the identity unchanged when it holds the required
// role, or ErrForbidden.
func (a *Authenticator) RequireRole(identity *Identity, required Role) (*Identity, error) {
	if err := identity.Authorize(required); err != nil {
		return nil, err
	}
	return identity, nil
}
