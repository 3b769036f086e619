package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Skipper reports whether a request may bypass authentication entirely,
// such as health checks and metric scrapes.
type Skipper func(r *http.Request) bool

// Middleware validates bearer tokens and attaches the resulting claims to
// the request context.
type Middleware struct {
	cfg     Config
	skipper Skipper
}

// NewMiddleware constructs a Middleware. A nil skipper means every request
// is authenticated.
func NewMiddleware(cfg Config, skipper Skipper) Middleware {
	return Middleware{cfg: cfg, skipper: skipper}
}

// Wrap returns a handler that authenticates the request before delegating
// to next. Rejections use the same JSON error shape as the API handlers.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipper != nil && m.skipper(r) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			writeUnauthorized(w, err)
			return
		}
		claims, err := Parse(token, m.cfg)
		if err != nil {
			writeUnauthorized(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

const bearerPrefix = "bearer "

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrMissingToken
	}
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(header[len(bearerPrefix):]), nil
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"type":   "unauthorized",
		"detail": err.Error(),
	})
}
