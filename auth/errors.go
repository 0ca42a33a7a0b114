package auth

import "errors"

var (
	// ErrMalformedToken is returned when the token cannot be parsed at all
	ErrMalformedToken = errors.New("malformed token")

	// ErrSignatureInvalid is returned when the signature fails verification
	// under every attempted algorithm and key
	ErrSignatureInvalid = errors.New("token signature invalid")

	// ErrKeyNotFound is returned when no key in the provider's key set
	// matches the token's key ID
	ErrKeyNotFound = errors.New("signing key not found")

	// ErrKeySetFetchFailed is returned when the provider's key set cannot be
	// retrieved or parsed
	ErrKeySetFetchFailed = errors.New("failed to fetch key set")

	// ErrMissingIdentity is returned when verified claims lack a usable subject
	ErrMissingIdentity = errors.New("token missing subject")

	// ErrUnauthorized is the single user-visible verification failure.
	// It wraps the terminal cause, which is logged but never surfaced.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when a valid identity lacks the required role
	ErrForbidden = errors.New("forbidden")
)
