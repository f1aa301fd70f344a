package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/filippkowalski/heywish/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Mode   string `json:"mode,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the health of the storage components behind the API.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"postgres": checkPostgres(r.Context(), d),
			"redis":    checkRedis(r.Context(), d),
		}

		status := "ok"
		if !components["postgres"].OK {
			status = "critical"
		} else if !components["redis"].OK {
			status = "degraded"
		}

		respondJSON(w, http.StatusOK, infraResponse{
			Status:     status,
			Components: components,
		})
	}
}

func checkPostgres(ctx context.Context, d deps.Deps) componentStatus {
	if d.DB == nil {
		return componentStatus{OK: false, Error: "not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.DB.PingContext(ctx); err != nil {
		return componentStatus{OK: false, Impact: "reads and writes unavailable", Error: err.Error()}
	}
	return componentStatus{OK: true}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: true, Mode: "disabled", Impact: "public reads hit postgres directly"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Mode: "degraded", Impact: "snapshot cache bypassed", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "optimal", Impact: "snapshot cache active"}
}
