package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// symmetricAlg is the algorithm Supabase uses for secret-signed tokens.
const symmetricAlg = "HS256"

// KeyResolver resolves a signing key by its ID within a provider's key set.
// Satisfied by KeySetCache; tests substitute fakes.
type KeyResolver interface {
	KeyByID(ctx context.Context, origin, kid string) (*SigningKey, error)
}

// verifyStrategy is one way of establishing that a token is genuine.
// Strategies are tried in order; the first to succeed wins.
type verifyStrategy struct {
	name   string
	verify func(ctx context.Context, token string) (*Claims, error)
}

// TokenVerifier verifies bearer tokens against the project's shared secret
// first, then against the provider's published key set. Safe for concurrent
// use.
type TokenVerifier struct {
	secret     string
	origin     string
	keys       KeyResolver
	logger     *zap.Logger
	strategies []verifyStrategy
}

// NewTokenVerifier creates a TokenVerifier for the given provider origin.
// An empty secret is valid: the symmetric strategy then always fails and
// every token goes through key set verification.
func NewTokenVerifier(secret, origin string, keys KeyResolver, logger *zap.Logger) *TokenVerifier {
	v := &TokenVerifier{
		secret: secret,
		origin: origin,
		keys:   keys,
		logger: logger,
	}
	v.strategies = []verifyStrategy{
		{name: "shared_secret", verify: v.verifySymmetric},
		{name: "provider_keys", verify: v.verifyRemote},
	}
	return v
}

// Verify checks the token's signature and claims. It returns the verified
// claim set, or ErrUnauthorized wrapping the terminal cause. The cause is
// logged here and must not reach user-visible output.
func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	var lastErr error
	var lastStrategy string

	for _, s := range v.strategies {
		claims, err := s.verify(ctx, tokenString)
		if err == nil {
			return claims, nil
		}
		lastErr = err
		lastStrategy = s.name
	}

	v.logger.Warn("token rejected",
		zap.String("strategy", lastStrategy),
		zap.Error(lastErr))

	return nil, fmt.Errorf("%w: %v", ErrUnauthorized, lastErr)
}

// verifySymmetric checks the token against the project's shared JWT secret.
func (v *TokenVerifier) verifySymmetric(_ context.Context, tokenString string) (*Claims, error) {
	if v.secret == "" {
		return nil, errors.New("shared secret not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(*jwt.Token) (any, error) { return []byte(v.secret), nil },
		jwt.WithValidMethods([]string{symmetricAlg}),
		jwt.WithAudience(ExpectedAudience),
	)
	if err != nil {
		return nil, mapTokenError(err)
	}

	return tokenClaims(token)
}

// verifyRemote checks the token against the provider's published key set.
// The header is parsed without trust first; its alg and kid select the key
// and algorithm and are used for nothing else.
func (v *TokenVerifier) verifyRemote(ctx context.Context, tokenString string) (*Claims, error) {
	unverified, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: kid header not found", ErrMalformedToken)
	}

	key, err := v.keys.KeyByID(ctx, v.origin, kid)
	if err != nil {
		return nil, err
	}

	// Prefer the algorithm the key set declares for this key; fall back to
	// the token header when the key set omits it.
	alg := key.Algorithm
	if alg == "" {
		alg, _ = unverified.Header["alg"].(string)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(*jwt.Token) (any, error) { return key.Key, nil },
		jwt.WithValidMethods([]string{alg}),
		jwt.WithAudience(ExpectedAudience),
	)
	if err != nil {
		return nil, mapTokenError(err)
	}

	return tokenClaims(token)
}

// tokenClaims extracts the typed claim set from a verified token
func tokenClaims(token *jwt.Token) (*Claims, error) {
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrSignatureInvalid
	}
	return claims, nil
}

// mapTokenError translates golang-jwt parse errors into the local taxonomy.
// Expiry and audience failures pass through unchanged: they are ordinary
// claims-validation failures, not a class of their own.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	default:
		return err
	}
}
