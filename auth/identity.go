package auth

import "fmt"

// Role is an application role carried in a token's user metadata.
type Role string

const (
	// RoleResearcher is the default role for authenticated users
	RoleResearcher Role = "researcher"

	// RoleAdmin grants access to ingestion and administrative operations
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw role claim to a Role. Anything that is not exactly
// "admin" is a researcher; unrecognized values are never rejected.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleResearcher
}

// Identity is an authenticated user extracted from a verified claim set.
// Immutable; created once per request and discarded with it.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
}

// ExtractIdentity maps a verified claim set to an Identity. The subject
// claim is required; email defaults to empty and the role defaults to
// researcher when the nested role claim is absent.
func ExtractIdentity(claims *Claims) (*Identity, error) {
	if claims.Subject == "" {
		return nil, ErrMissingIdentity
	}
	return &Identity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      ParseRole(claims.UserMetadata.Role),
	}, nil
}

// Authorize checks that the identity holds the required role. Pure policy
// decision: the caller is known, just possibly under-privileged.
func (id *Identity) Authorize(required Role) error {
	if id.Role != required {
		return fmt.Errorf("%w: role %q required", ErrForbidden, required)
	}
	return nil
}
