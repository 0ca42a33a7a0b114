package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/astoria-research/astoria/auth"
)

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}

func TestRequireAuth(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid token allows request and stores identity", func(t *testing.T) {
		mockAuth := new(MockAuthenticator)
		mw := NewAuthMiddleware(mockAuth, logger)

		identity := &auth.Identity{SubjectID: "user-123", Email: "user@example.com", Role: auth.RoleResearcher}
		mockAuth.On("Authenticate", mock.Anything, "valid-token").Return(identity, nil)

		handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := GetIdentityFromContext(r.Context())
			assert.Equal(t, identity, got)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockAuth.AssertExpectations(t)
	})

	t.Run("missing token returns 401 with challenge", func(t *testing.T) {
		mockAuth := new(MockAuthenticator)
		mw := NewAuthMiddleware(mockAuth, logger)

		handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		mockAuth.AssertNotCalled(t, "Authenticate")
	})

	t.Run("malformed authorization header returns 401", func(t *testing.T) {
		mockAuth := new(MockAuthenticator)
		mw := NewAuthMiddleware(mockAuth, logger)

		handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockAuth.AssertNotCalled(t, "Authenticate")
	})

	t.Run("rejected token returns generic 401", func(t *testing.T) {
		mockAuth := new(MockAuthenticator)
		mw := NewAuthMiddleware(mockAuth, logger)

		mockAuth.On("Authenticate", mock.Anything, "bad-token").Return(nil, auth.ErrUnauthorized)

		handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		// The response body must not reveal which verification step failed.
		assert.NotContains(t, w.Body.String(), "signature")
		assert.NotContains(t, w.Body.String(), "key")
		mockAuth.AssertExpectations(t)
	})
}

func TestRequireRole(t *testing.T) {
	logger := zap.NewNop()

	newHandler := func(mw *AuthMiddleware, identity *auth.Identity) (http.Handler, *bool) {
		called := false
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})
		handler := mw.RequireRole(auth.RoleAdmin)(inner)
		if identity != nil {
			handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mw.RequireRole(auth.RoleAdmin)(inner).ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
			})
		}
		return handler, &called
	}

	t.Run("admin passes", func(t *testing.T) {
		mw := NewAuthMiddleware(new(MockAuthenticator), logger)
		handler, called := newHandler(mw, &auth.Identity{SubjectID: "u1", Role: auth.RoleAdmin})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *called)
	})

	t.Run("researcher is forbidden", func(t *testing.T) {
		mw := NewAuthMiddleware(new(MockAuthenticator), logger)
		handler, called := newHandler(mw, &auth.Identity{SubjectID: "u2", Role: auth.RoleResearcher})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, *called)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		mw := NewAuthMiddleware(new(MockAuthenticator), logger)
		handler, called := newHandler(mw, nil)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, *called)
	})
}
