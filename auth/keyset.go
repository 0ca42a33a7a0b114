package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// wellKnownPath is where Supabase publishes a project's signing keys.
const wellKnownPath = "/auth/v1/.well-known/jwks.json"

// JWKS represents the JSON Web Key Set document
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a single JSON Web Key. RSA keys carry N/E, EC keys carry
// Crv/X/Y.
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// SigningKey is one entry of a provider's public key set, with its material
// already parsed into a crypto public key.
type SigningKey struct {
	KeyID     string
	Algorithm string
	Key       any // *rsa.PublicKey or *ecdsa.PublicKey
}

type keySetEntry struct {
	keys      []SigningKey
	fetchedAt time.Time
}

// KeySetCache fetches and caches provider key sets, one immutable snapshot
// per provider origin. A successful fetch is kept for the process lifetime;
// failed fetches are not cached, so the next call retries. Concurrent first
// fetches for the same origin may race; the result is idempotent and the
// last writer wins.
type KeySetCache struct {
	httpClient *http.Client
	logger     *zap.Logger

	mu   sync.RWMutex
	sets map[string]keySetEntry
}

// NewKeySetCache creates a key set cache using the given HTTP client.
// A nil client falls back to a client with a 10 second timeout.
func NewKeySetCache(httpClient *http.Client, logger *zap.Logger) *KeySetCache {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &KeySetCache{
		httpClient: httpClient,
		logger:     logger,
		sets:       make(map[string]keySetEntry),
	}
}

// Resolve returns the signing keys published by the given provider origin,
// fetching them on first use and serving the cached snapshot afterwards.
func (c *KeySetCache) Resolve(ctx context.Context, origin string) ([]SigningKey, error) {
	c.mu.RLock()
	entry, ok := c.sets[origin]
	c.mu.RUnlock()
	if ok {
		return entry.keys, nil
	}

	keys, err := c.fetch(ctx, origin)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sets[origin] = keySetEntry{keys: keys, fetchedAt: time.Now()}
	c.mu.Unlock()

	c.logger.Info("key set cached",
		zap.String("origin", origin),
		zap.Int("keys", len(keys)))

	return keys, nil
}

// KeyByID resolves the provider's key set and returns the key whose ID
// matches kid, or ErrKeyNotFound. No fresh fetch is attempted when the
// cached snapshot lacks the kid.
func (c *KeySetCache) KeyByID(ctx context.Context, origin, kid string) (*SigningKey, error) {
	keys, err := c.Resolve(ctx, origin)
	if err != nil {
		return nil, err
	}
	for i := range keys {
		if keys[i].KeyID == kid {
			return &keys[i], nil
		}
	}
	return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
}

// fetch retrieves and parses the key set from the provider's well-known
// endpoint. The request is bound to ctx so an abandoned request does not
// leave the fetch hanging.
func (c *KeySetCache) fetch(ctx context.Context, origin string) ([]SigningKey, error) {
	url := origin + wellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrKeySetFetchFailed, resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetFetchFailed, err)
	}

	keys := make([]SigningKey, 0, len(jwks.Keys))
	for i := range jwks.Keys {
		key, err := jwkPublicKey(&jwks.Keys[i])
		if err != nil {
			c.logger.Warn("skipping unusable key in key set",
				zap.String("origin", origin),
				zap.String("kid", jwks.Keys[i].Kid),
				zap.Error(err))
			continue
		}
		keys = append(keys, SigningKey{
			KeyID:     jwks.Keys[i].Kid,
			Algorithm: jwks.Keys[i].Alg,
			Key:       key,
		})
	}

	return keys, nil
}

// jwkPublicKey converts a JWK into a crypto public key
func jwkPublicKey(jwk *JWK) (any, error) {
	switch jwk.Kty {
	case "RSA":
		return jwkRSAPublicKey(jwk)
	case "EC":
		return jwkECDSAPublicKey(jwk)
	default:
		return nil, fmt.Errorf("unsupported key type %q", jwk.Kty)
	}
}

func jwkRSAPublicKey(jwk *JWK) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	var e int
	for _, b := range eBytes {
		e = e*256 + int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}

func jwkECDSAPublicKey(jwk *JWK) (*ecdsa.PublicKey, error) {
	var curve elliptic.Curve
	switch jwk.Crv {
	case "P-256":
		curve = elliptic.P256()
	case "P-384":
		curve = elliptic.P384()
	case "P-521":
		curve = elliptic.P521()
	default:
		return nil, fmt.Errorf("unsupported curve %q", jwk.Crv)
	}

	xBytes, err := base64.RawURLEncoding.DecodeString(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("failed to decode x coordinate: %w", err)
	}

	yBytes, err := base64.RawURLEncoding.DecodeString(jwk.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to decode y coordinate: %w", err)
	}

	return &ecdsa.PublicKey{
		Curve: curve,
		X:     new(big.Int).SetBytes(xBytes),
		Y:     new(big.Int).SetBytes(yBytes),
	}, nil
}
