package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/astoria-research/astoria/app"
	"github.com/astoria-research/astoria/auth"
	"github.com/astoria-research/astoria/config"
	"github.com/astoria-research/astoria/handlers"
	"github.com/astoria-research/astoria/middleware"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		App:         config.AppConfig{Name: "Astoria", Version: "test"},
		Supabase: config.SupabaseConfig{
			URL:       "https://project.supabase.co",
			JWTSecret: testSecret,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func testDeps(t *testing.T) *app.Dependencies {
	t.Helper()

	cfg := testConfig()
	logger := zaptest.NewLogger(t)

	keys := auth.NewKeySetCache(nil, logger)
	verifier := auth.NewTokenVerifier(cfg.Supabase.JWTSecret, cfg.Supabase.URL, keys, logger)
	authenticator := auth.NewAuthenticator(verifier, logger)

	return &app.Dependencies{
		Config:         cfg,
		Logger:         logger,
		Authenticator:  authenticator,
		AuthMiddleware: middleware.NewAuthMiddleware(authenticator, logger),
		HealthHandler:  handlers.NewHealthHandler(cfg, nil, logger),
		QueryHandler:   handlers.NewQueryHandler(logger),
		SourcesHandler: handlers.NewSourcesHandler(nil, logger),
		ExploreHandler: handlers.NewExploreHandler(nil, nil, logger),
		IngestHandler:  handlers.NewIngestHandler(nil, logger),
	}
}

func signToken(t *testing.T, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   "00000000-0000-0000-0000-000000000001",
		"aud":   "authenticated",
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if role != "" {
		claims["user_metadata"] = map[string]interface{}{"role": role}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestPublicRoutes(t *testing.T) {
	handler := SetupRoutes(testDeps(t))
	ts := httptest.NewServer(handler)
	defer ts.Close()

	t.Run("health check returns ok", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("unknown endpoint is 404", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/nope")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	handler := SetupRoutes(testDeps(t))
	ts := httptest.NewServer(handler)
	defer ts.Close()

	testCases := []struct {
		name   string
		method string
		path   string
	}{
		{"submit query", "POST", "/api/query"},
		{"list sources", "GET", "/api/sources"},
		{"list ships", "GET", "/api/explore/ships"},
		{"list voyages", "GET", "/api/explore/voyages"},
		{"trigger ingestion", "POST", "/api/ingest/trigger"},
		{"list ingest sources", "GET", "/api/ingest/sources"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		})
	}
}

func TestAuthenticatedAccess(t *testing.T) {
	handler := SetupRoutes(testDeps(t))
	ts := httptest.NewServer(handler)
	defer ts.Close()

	do := func(t *testing.T, method, path, token, body string) *http.Response {
		t.Helper()
		var req *http.Request
		var err error
		if body == "" {
			req, err = http.NewRequest(method, ts.URL+path, nil)
		} else {
			req, err = http.NewRequest(method, ts.URL+path, strings.NewReader(body))
		}
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("researcher can submit queries", func(t *testing.T) {
		resp := do(t, "POST", "/api/query", signToken(t, ""), `{"question": "ships lost near Cape Horn"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("researcher cannot reach ingestion", func(t *testing.T) {
		resp := do(t, "GET", "/api/ingest/sources", signToken(t, "researcher"), "")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin can reach ingestion", func(t *testing.T) {
		resp := do(t, "GET", "/api/ingest/sources", signToken(t, "admin"), "")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token := signToken(t, "admin")
		resp := do(t, "GET", "/api/sources", token[:len(token)-2]+"xx", "")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
