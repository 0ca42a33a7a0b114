// Package auth verifies Supabase-issued bearer tokens and enforces
// role-based access on protected operations.
//
// Verification is two-phase: tokens are checked against the project's shared
// JWT secret first (HS256, the common case), then against the provider's
// published key set (RS256/ES256) when the symmetric check fails. A verified
// claim set is mapped to an Identity carrying the subject, email, and role.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// ExpectedAudience is the audience claim Supabase sets on user access tokens.
const ExpectedAudience = "authenticated"

// UserMetadata holds the application-defined claims nested under
// "user_metadata" in a Supabase access token.
type UserMetadata struct {
	Role string `json:"role"`
}

// Claims is the claim set carried by a Supabase access token. It is
// untrusted input until signature verification succeeds.
type Claims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}
