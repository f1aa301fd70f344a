package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filippkowalski/heywish/internal/auth"
	"github.com/filippkowalski/heywish/internal/domain"
	"github.com/filippkowalski/heywish/internal/httpserver/deps"
)

// reservedWishView is what the reserving user gets back. It carries the
// derived status instead of the raw reservation columns.
type reservedWishView struct {
	ID         int64             `json:"id"`
	WishlistID int64             `json:"wishlist_id"`
	Title      string            `json:"title"`
	URL        string            `json:"url,omitempty"`
	Price      string            `json:"price,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	Status     domain.WishStatus `json:"status"`
	ReservedAt *time.Time        `json:"reserved_at,omitempty"`
}

type reserveWishResponse struct {
	Success bool             `json:"success"`
	Wish    reservedWishView `json:"wish"`
}

func toReservedWishView(w *domain.Wish) reservedWishView {
	return reservedWishView{
		ID:         w.ID,
		WishlistID: w.WishlistID,
		Title:      w.Title,
		URL:        w.URL,
		Price:      w.Price,
		ImageURL:   w.ImageURL,
		Notes:      w.Notes,
		Status:     w.Status(),
		ReservedAt: w.ReservedAt,
	}
}

func wishIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ReserveWish reserves a wish for the authenticated user.
func ReserveWish(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, ok := wishIDParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid wish id")
			return
		}

		wish, err := d.Reservations.ReserveForUser(r.Context(), id, user)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		respondJSON(w, http.StatusOK, reserveWishResponse{
			Success: true,
			Wish:    toReservedWishView(wish),
		})
	}
}

// ReleaseWish releases a reservation held by the authenticated user.
func ReleaseWish(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, ok := wishIDParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid wish id")
			return
		}

		wish, err := d.Reservations.ReleaseForUser(r.Context(), id, user)
		if err != nil {
			// For an authenticated caller a mismatch is a request error, not
			// a permission probe.
			if errors.Is(err, domain.ErrNotReserver) {
				respondError(w, http.StatusBadRequest, "you have not reserved this wish")
				return
			}
			respondDomainError(w, d, err)
			return
		}

		respondJSON(w, http.StatusOK, reserveWishResponse{
			Success: true,
			Wish:    toReservedWishView(wish),
		})
	}
}
