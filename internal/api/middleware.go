// Package api implements the note REST API using chi.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AuthMiddleware returns middleware that validates a Bearer token.
// If enabled is false, all requests pass through (disabled mode).
// If enabled is true, requests must carry a valid "Authorization: Bearer <token>" header.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return tokenAuth(enabled, token, bearerToken)
}

// StreamAuthMiddleware is AuthMiddleware for event streams. Browsers cannot
// set headers on an EventSource, so the token may also be passed as the
// access_token query parameter.
func StreamAuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return tokenAuth(enabled, token, func(r *http.Request) (string, bool) {
		if given, ok := bearerToken(r); ok {
			return given, true
		}
		given := r.URL.Query().Get("access_token")
		return given, given != ""
	})
}

func bearerToken(r *http.Request) (string, bool) {
	return strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func tokenAuth(enabled bool, token string, extract func(*http.Request) (string, bool)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			given, ok := extract(r)
			if !ok || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
