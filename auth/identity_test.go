package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIdentity(t *testing.T) {
	t.Run("maps subject, email and nested role", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
			Email:            "a@b.com",
			UserMetadata:     UserMetadata{Role: "admin"},
		}

		identity, err := ExtractIdentity(claims)
		require.NoError(t, err)
		assert.Equal(t, "u1", identity.SubjectID)
		assert.Equal(t, "a@b.com", identity.Email)
		assert.Equal(t, RoleAdmin, identity.Role)
	})

	t.Run("defaults to researcher without a role claim", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u2"}}

		identity, err := ExtractIdentity(claims)
		require.NoError(t, err)
		assert.Equal(t, RoleResearcher, identity.Role)
		assert.Empty(t, identity.Email)
	})

	t.Run("unrecognized role is researcher, not an error", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u3"},
			UserMetadata:     UserMetadata{Role: "superuser"},
		}

		identity, err := ExtractIdentity(claims)
		require.NoError(t, err)
		assert.Equal(t, RoleResearcher, identity.Role)
	})

	t.Run("missing subject fails", func(t *testing.T) {
		_, err := ExtractIdentity(&Claims{Email: "a@b.com"})
		assert.ErrorIs(t, err, ErrMissingIdentity)
	})
}

func TestAuthorize(t *testing.T) {
	t.Run("researcher never passes an admin gate", func(t *testing.T) {
		identity := &Identity{SubjectID: "u1", Role: RoleResearcher}
		assert.ErrorIs(t, identity.Authorize(RoleAdmin), ErrForbidden)
	})

	t.Run("admin always passes an admin gate", func(t *testing.T) {
		identity := &Identity{SubjectID: "u1", Role: RoleAdmin}
		assert.NoError(t, identity.Authorize(RoleAdmin))
	})
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleResearcher, ParseRole("researcher"))
	assert.Equal(t, RoleResearcher, ParseRole(""))
	assert.Equal(t, RoleResearcher, ParseRole("Admin"))
}
