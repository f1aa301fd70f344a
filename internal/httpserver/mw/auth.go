package mw

import (
	"net/http"
	"strings"

	"github.com/filippkowalski/heywish/internal/auth"
	"github.com/filippkowalski/heywish/internal/logger"
)

// Auth requires a valid bearer token and places the resolved user on the
// request context. Every failure is a uniform 401; the reason is only
// logged.
func Auth(verifier auth.Verifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			user, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Debug("bearer token rejected", logger.Error(err))
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}`))
}
