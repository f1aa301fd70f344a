package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/filippkowalski/heywish/internal/domain"
	"github.com/filippkowalski/heywish/internal/httpserver/deps"
	"github.com/filippkowalski/heywish/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondDomainError translates the sentinel errors to HTTP statuses.
// Anything unrecognized is logged and becomes a generic 500 so internals
// never leak to clients.
func respondDomainError(w http.ResponseWriter, d deps.Deps, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyReserved):
		respondError(w, http.StatusBadRequest, "wish is already reserved")
	case errors.Is(err, domain.ErrSelfReserve):
		respondError(w, http.StatusBadRequest, "cannot reserve your own wish")
	case errors.Is(err, domain.ErrNotReserver):
		respondError(w, http.StatusForbidden, "you have not reserved this wish")
	case errors.Is(err, domain.ErrInvalid):
		respondError(w, http.StatusBadRequest, "invalid request")
	default:
		d.Logger.Error("request failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
