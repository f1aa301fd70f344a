package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/filippkowalski/heywish/internal/httpserver/deps"
	"github.com/filippkowalski/heywish/internal/logger"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports readiness: the database must answer a ping. Redis is
// optional and does not gate readiness; a cold cache only slows reads.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if d.DB != nil {
			if err := d.DB.PingContext(ctx); err != nil {
				d.Logger.Warn("readiness probe failed", logger.Error(err))
				respondJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
				return
			}
		}

		respondJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
