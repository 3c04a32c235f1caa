package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// BearerAuthMiddleware rejects requests without the configured token. An
// empty token disables the check.
func BearerAuthMiddleware(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := bearerToken(r)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Warn("auth failure", "path", r.URL.Path, "method", r.Method, "remote_ip", r.RemoteAddr)
				respondError(w, logger, http.StatusUnauthorized, "missing or invalid API token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
