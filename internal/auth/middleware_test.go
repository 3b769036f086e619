package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	mw := NewMiddleware(Config{Secret: "test-secret", Issuer: "workout.identity"}, nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run without a token")
	})

	rr := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/progress", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	require.Equal(t, "unauthorized", payload["type"])
	require.NotEmpty(t, payload["detail"])
}

func TestMiddlewareRejectsNonBearerScheme(t *testing.T) {
	mw := NewMiddleware(Config{Secret: "test-secret", Issuer: "workout.identity"}, nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	rr := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	require.Equal(t, "unauthorized", payload["type"])
}

func TestMiddlewarePassesClaimsToNext(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.identity"}
	raw := signToken(t, cfg, jwt.MapClaims{
		"sub":    "user-1",
		"iss":    cfg.Issuer,
		"exp":    time.Now().Add(time.Hour).Unix(),
		"scopes": []string{ScopeWorkoutsRead},
	})

	var got *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		require.True(t, ok)
		got = claims
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	rr := httptest.NewRecorder()
	mw := NewMiddleware(cfg, nil)
	mw.Wrap(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	require.Equal(t, "user-1", got.Subject)
	require.True(t, got.HasScope(ScopeWorkoutsRead))
}

func TestMiddlewareSkipperBypassesAuth(t *testing.T) {
	mw := NewMiddleware(Config{Secret: "test-secret", Issuer: "workout.identity"}, func(r *http.Request) bool {
		return r.URL.Path == "/healthz"
	})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.True(t, called, "skipped paths must reach the handler without a token")
	require.Equal(t, http.StatusOK, rr.Code)
}
