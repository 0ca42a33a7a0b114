package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

// fakeKeyResolver serves a fixed key map and records whether it was consulted.
type fakeKeyResolver struct {
	keys  map[string]*SigningKey
	calls int
}

func (f *fakeKeyResolver) KeyByID(_ context.Context, _, kid string) (*SigningKey, error) {
	f.calls++
	if key, ok := f.keys[kid]; ok {
		return key, nil
	}
	return nil, ErrKeyNotFound
}

func defaultClaims(sub string) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Audience:  jwt.ClaimStrings{ExpectedAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func signHS256(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func signWithKid(t *testing.T, method jwt.SigningMethod, key any, kid string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerifySymmetricShortCircuits(t *testing.T) {
	resolver := &fakeKeyResolver{}
	v := NewTokenVerifier(testSecret, "https://example.supabase.co", resolver, zap.NewNop())

	token := signHS256(t, testSecret, defaultClaims("abc"))

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.Subject)
	assert.Zero(t, resolver.calls, "key set must not be consulted when the secret verifies")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	resolver := &fakeKeyResolver{}
	v := NewTokenVerifier(testSecret, "https://example.supabase.co", resolver, zap.NewNop())

	token := signHS256(t, "some-other-secret-that-is-long-enough", defaultClaims("abc"))

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyRequiresAuthenticatedAudience(t *testing.T) {
	resolver := &fakeKeyResolver{}
	v := NewTokenVerifier(testSecret, "https://example.supabase.co", resolver, zap.NewNop())

	claims := defaultClaims("abc")
	claims.Audience = jwt.ClaimStrings{"anon"}
	token := signHS256(t, testSecret, claims)

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized, "valid signature with wrong audience must fail")
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	resolver := &fakeKeyResolver{}
	v := NewTokenVerifier(testSecret, "https://example.supabase.co", resolver, zap.NewNop())

	claims := defaultClaims("abc")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := signHS256(t, testSecret, claims)

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	resolver := &fakeKeyResolver{}
	v := NewTokenVerifier(testSecret, "https://example.supabase.co", resolver, zap.NewNop())

	_, err := v.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyFallsBackToProviderKeys(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	resolver := &fakeKeyResolver{keys: map[string]*SigningKey{
		"k1": {KeyID: "k1", Algorithm: "RS256", Key: &priv.PublicKey},
	}}
	v := NewTokenVerifier(testSecret, "https://example.supabase.co", resolver, zap.NewNop())

	token := signWithKid(t, jwt.SigningMethodRS256, priv, "k1", defaultClaims("u1"))

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, 1, resolver.calls)
}

func TestVerifyFallsBackWhenSecretUnset(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	resolver := &fakeKeyResolver{keys: map[string]*SigningKey{
		"k1": {KeyID: "k1", Algorithm: "ES256", Key: &priv.PublicKey},
	}}
	v := NewTokenVerifier("", "https://example.supabase.co", resolver, zap.NewNop())

	token := signWithKid(t, jwt.SigningMethodES256, priv, "k1", defaultClaims("u1"))

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
}

func TestVerifyUnknownKid(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	// Key set only knows k1; the token claims k9.
	resolver := &fakeKeyResolver{keys: map[string]*SigningKey{
		"k1": {KeyID: "k1", Algorithm: "ES256", Key: &priv.PublicKey},
	}}
	v := NewTokenVerifier(testSecret, "https://example.supabase.co", resolver, zap.NewNop())

	token := signWithKid(t, jwt.SigningMethodES256, priv, "k9", defaultClaims("u1"))

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorContains(t, err, "signing key not found")
}

func TestVerifyRejectsKeySignatureMismatch(t *testing.T) {
	signer, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	// The kid matches but the published key is not the signing key.
	resolver := &fakeKeyResolver{keys: map[string]*SigningKey{
		"k1": {KeyID: "k1", Algorithm: "RS256", Key: &other.PublicKey},
	}}
	v := NewTokenVerifier("", "https://example.supabase.co", resolver, zap.NewNop())

	token := signWithKid(t, jwt.SigningMethodRS256, signer, "k1", defaultClaims("u1"))

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
