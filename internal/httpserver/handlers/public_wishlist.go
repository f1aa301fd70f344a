package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/filippkowalski/heywish/internal/httpserver/deps"
)

// reserverCookie identifies an anonymous reserver across visits. It is the
// only credential behind anonymous unreserve, so it stays HttpOnly.
const reserverCookie = "reserver_id"

const reserverCookieMaxAge = 365 * 24 * 60 * 60 // one year, in seconds

type publicReserveRequest struct {
	WishID        int64  `json:"wishId"`
	ReserverName  string `json:"reserverName,omitempty"`
	ReserverEmail string `json:"reserverEmail,omitempty"`
}

type publicReserveResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ReserverID string `json:"reserverId"`
}

type publicReleaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// viewerID resolves the caller's reserver identifier: the cookie when
// present, otherwise the X-Reserver-ID header (non-browser clients).
func viewerID(r *http.Request) string {
	if c, err := r.Cookie(reserverCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get("X-Reserver-ID")
}

func setReserverCookie(w http.ResponseWriter, d deps.Deps, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     reserverCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   reserverCookieMaxAge,
		HttpOnly: true,
		Secure:   d.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// PublicWishlist serves the viewer-masked wishlist for a share token.
func PublicWishlist(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		if token == "" {
			respondError(w, http.StatusBadRequest, "missing share token")
			return
		}

		view, err := d.Reservations.PublicWishlist(r.Context(), token, viewerID(r))
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		respondJSON(w, http.StatusOK, view)
	}
}

// PublicReserve reserves a wish anonymously. On success the reserver
// identifier rides back as a cookie so the same visitor can unreserve later.
func PublicReserve(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		if token == "" {
			respondError(w, http.StatusBadRequest, "missing share token")
			return
		}

		var req publicReserveRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.WishID == 0 {
			respondError(w, http.StatusBadRequest, "wishId is required")
			return
		}

		id, err := d.Reservations.ReservePublic(r.Context(), token, req.WishID,
			req.ReserverName, req.ReserverEmail, viewerID(r))
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		setReserverCookie(w, d, id)
		respondJSON(w, http.StatusOK, publicReserveResponse{
			Success:    true,
			Message:    "wish reserved",
			ReserverID: id,
		})
	}
}

// PublicRelease releases a reservation held by the calling visitor.
func PublicRelease(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		if token == "" {
			respondError(w, http.StatusBadRequest, "missing share token")
			return
		}

		wishID, err := strconv.ParseInt(r.URL.Query().Get("wishId"), 10, 64)
		if err != nil || wishID == 0 {
			respondError(w, http.StatusBadRequest, "wishId is required")
			return
		}

		if err := d.Reservations.ReleasePublic(r.Context(), token, wishID, viewerID(r)); err != nil {
			respondDomainError(w, d, err)
			return
		}

		respondJSON(w, http.StatusOK, publicReleaseResponse{
			Success: true,
			Message: "reservation released",
		})
	}
}
