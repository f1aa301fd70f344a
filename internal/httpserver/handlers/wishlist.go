package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filippkowalski/heywish/internal/auth"
	"github.com/filippkowalski/heywish/internal/domain"
	"github.com/filippkowalski/heywish/internal/httpserver/deps"
)

// ownerWishlistView is the owner's view of a wishlist.
type ownerWishlistView struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Visibility  domain.Visibility `json:"visibility"`
	ShareToken  string            `json:"share_token"`
	ShareURL    string            `json:"share_url"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ownerWishView deliberately carries no reservation fields. Owners are not
// told whether or by whom a wish has been reserved, so the surprise holds.
type ownerWishView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Price     string    `json:"price,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ownerWishlistDetail struct {
	Wishlist ownerWishlistView `json:"wishlist"`
	Wishes   []ownerWishView   `json:"wishes"`
}

type createWishlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
}

type updateWishlistRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
}

type wishRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	Price    string `json:"price,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type updateWishRequest struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	Price    *string `json:"price,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func toOwnerWishlistView(d deps.Deps, l *domain.Wishlist) ownerWishlistView {
	return ownerWishlistView{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Visibility:  l.Visibility,
		ShareToken:  l.ShareToken,
		ShareURL:    d.Reservations.ShareURL(l.ShareToken),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toOwnerWishView(w *domain.Wish) ownerWishView {
	return ownerWishView{
		ID:        w.ID,
		Title:     w.Title,
		URL:       w.URL,
		Price:     w.Price,
		ImageURL:  w.ImageURL,
		Notes:     w.Notes,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ownedWishlist fetches a wishlist and enforces ownership. A list owned by
// someone else reads as 404, same as a missing one.
func ownedWishlist(r *http.Request, d deps.Deps, id int64, ownerID int64) (*domain.Wishlist, error) {
	list, err := d.Wishlists.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != ownerID {
		return nil, fmt.Errorf("wishlist %d not owned by caller: %w", id, domain.ErrNotFound)
	}
	return list, nil
}

// ownedWish fetches a wish and enforces ownership through its wishlist.
func ownedWish(r *http.Request, d deps.Deps, id int64, ownerID int64) (*domain.Wish, *domain.Wishlist, error) {
	wish, err := d.Wishes.GetByID(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	list, err := ownedWishlist(r, d, wish.WishlistID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return wish, list, nil
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// CreateWishlist creates a wishlist for the authenticated user and mints
// its share token.
func CreateWishlist(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req createWishlistRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			respondError(w, http.StatusBadRequest, "name is required")
			return
		}
		visibility := domain.VisibilityPrivate
		if req.Visibility != "" {
			visibility = domain.Visibility(req.Visibility)
			if !visibility.Valid() {
				respondError(w, http.StatusBadRequest, "unknown visibility")
				return
			}
		}

		list, err := d.Wishlists.Create(r.Context(), &domain.Wishlist{
			OwnerID:     user.ID,
			Name:        req.Name,
			Description: req.Description,
			Visibility:  visibility,
			ShareToken:  domain.MintShareToken(),
		})
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		respondJSON(w, http.StatusCreated, toOwnerWishlistView(d, list))
	}
}

// ListWishlists returns every wishlist owned by the authenticated user.
func ListWishlists(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		lists, err := d.Wishlists.ListByOwner(r.Context(), user.ID)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		views := make([]ownerWishlistView, 0, len(lists))
		for _, l := range lists {
			views = append(views, toOwnerWishlistView(d, l))
		}
		respondJSON(w, http.StatusOK, map[string]any{"wishlists": views})
	}
}

// GetWishlist returns one owned wishlist with its wishes.
func GetWishlist(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid wishlist id")
			return
		}

		list, err := ownedWishlist(r, d, id, user.ID)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}
		wishes, err := d.Wishes.ListByWishlist(r.Context(), list.ID)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		detail := ownerWishlistDetail{
			Wishlist: toOwnerWishlistView(d, list),
			Wishes:   make([]ownerWishView, 0, len(wishes)),
		}
		for _, wi := range wishes {
			detail.Wishes = append(detail.Wishes, toOwnerWishView(wi))
		}
		respondJSON(w, http.StatusOK, detail)
	}
}

// UpdateWishlist applies a partial update to an owned wishlist.
func UpdateWishlist(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid wishlist id")
			return
		}

		var req updateWishlistRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		list, err := ownedWishlist(r, d, id, user.ID)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		if req.Name != nil {
			if *req.Name == "" {
				respondError(w, http.StatusBadRequest, "name cannot be empty")
				return
			}
			list.Name = *req.Name
		}
		if req.Description != nil {
			list.Description = *req.Description
		}
		if req.Visibility != nil {
			v := domain.Visibility(*req.Visibility)
			if !v.Valid() {
				respondError(w, http.StatusBadRequest, "unknown visibility")
				return
			}
			list.Visibility = v
		}

		updated, err := d.Wishlists.Update(r.Context(), list)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		d.Reservations.InvalidateSnapshot(r.Context(), updated.ShareToken)
		respondJSON(w, http.StatusOK, toOwnerWishlistView(d, updated))
	}
}

// DeleteWishlist soft-deletes an owned wishlist.
func DeleteWishlist(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid wishlist id")
			return
		}

		list, err := ownedWishlist(r, d, id, user.ID)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}
		if err := d.Wishlists.SoftDelete(r.Context(), list.ID, d.Now()); err != nil {
			respondDomainError(w, d, err)
			return
		}

		d.Reservations.InvalidateSnapshot(r.Context(), list.ShareToken)
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// CreateWish adds a wish to an owned wishlist.
func CreateWish(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid wishlist id")
			return
		}

		var req wishRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Title == "" {
			respondError(w, http.StatusBadRequest, "title is required")
			return
		}

		list, err := ownedWishlist(r, d, id, user.ID)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		wish, err := d.Wishes.Create(r.Context(), &domain.Wish{
			WishlistID: list.ID,
			Title:      req.Title,
			URL:        req.URL,
			Price:      req.Price,
			ImageURL:   req.ImageURL,
			Notes:      req.Notes,
		})
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		d.Reservations.InvalidateSnapshot(r.Context(), list.ShareToken)
		respondJSON(w, http.StatusCreated, toOwnerWishView(wish))
	}
}

// UpdateWish applies a partial update to a wish on an owned wishlist. The
// reservation fields are untouchable from here.
func UpdateWish(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid wish id")
			return
		}

		var req updateWishRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		wish, list, err := ownedWish(r, d, id, user.ID)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		if req.Title != nil {
			if *req.Title == "" {
				respondError(w, http.StatusBadRequest, "title cannot be empty")
				return
			}
			wish.Title = *req.Title
		}
		if req.URL != nil {
			wish.URL = *req.URL
		}
		if req.Price != nil {
			wish.Price = *req.Price
		}
		if req.ImageURL != nil {
			wish.ImageURL = *req.ImageURL
		}
		if req.Notes != nil {
			wish.Notes = *req.Notes
		}

		updated, err := d.Wishes.Update(r.Context(), wish)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}

		d.Reservations.InvalidateSnapshot(r.Context(), list.ShareToken)
		respondJSON(w, http.StatusOK, toOwnerWishView(updated))
	}
}

// DeleteWish soft-deletes a wish on an owned wishlist.
func DeleteWish(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid wish id")
			return
		}

		_, list, err := ownedWish(r, d, id, user.ID)
		if err != nil {
			respondDomainError(w, d, err)
			return
		}
		if err := d.Wishes.SoftDelete(r.Context(), id, d.Now()); err != nil {
			respondDomainError(w, d, err)
			return
		}

		d.Reservations.InvalidateSnapshot(r.Context(), list.ShareToken)
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
