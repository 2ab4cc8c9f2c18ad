// internal/app/system/auth/apikey.go

// Package auth provides Bearer API-key authentication for the JSON API.
// There is no session or cookie auth in this service; every API consumer
// presents the configured key.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// APIKeyAuth returns middleware that requires "Authorization: Bearer <key>".
// With no key configured every request is rejected; the comparison is
// constant-time.
func APIKeyAuth(validKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	if validKey == "" {
		logger.Warn("API key not configured - all API requests will be rejected")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validKey == "" {
				http.Error(w, "API authentication not configured", http.StatusUnauthorized)
				return
			}

			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Debug("API request rejected: missing or malformed Authorization header",
					zap.String("path", r.URL.Path),
				)
				http.Error(w, "Invalid Authorization header (expected: Bearer <api-key>)", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(validKey)) != 1 {
				logger.Warn("API request rejected: invalid API key",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
