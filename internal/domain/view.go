package domain

// PublicWishlistView is what a public viewer receives. Reserver identities
// never appear here: each wish carries only is_reserved plus a boolean that
// is true iff the viewer's own identifier holds the reservation.
type PublicWishlistView struct {
	Wishlist PublicWishlistSummary `json:"wishlist"`
	Wishes   []PublicWishView      `json:"wishes"`
}

type PublicWishlistSummary struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	OwnerName     string `json:"owner_name"`
	ShareURL      string `json:"share_url"`
	WishCount     int    `json:"wish_count"`
	ReservedCount int    `json:"reserved_count"`
}

type PublicWishView struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	URL              string `json:"url,omitempty"`
	Price            string `json:"price,omitempty"`
	ImageURL         string `json:"image_url,omitempty"`
	Notes            string `json:"notes,omitempty"`
	IsReserved       bool   `json:"is_reserved"`
	ReservedByViewer bool   `json:"reserved_by_viewer"`
}

// MaskSnapshot projects a snapshot onto the viewer-specific public view.
func MaskSnapshot(snap *PublicSnapshot, shareURL, viewerID string) *PublicWishlistView {
	view := &PublicWishlistView{
		Wishlist: PublicWishlistSummary{
			Name:        snap.Wishlist.Name,
			Description: snap.Wishlist.Description,
			OwnerName:   snap.OwnerName,
			ShareURL:    shareURL,
			WishCount:   len(snap.Wishes),
		},
		Wishes: make([]PublicWishView, 0, len(snap.Wishes)),
	}
	for _, w := range snap.Wishes {
		if w.Reserved() {
			view.Wishlist.ReservedCount++
		}
		view.Wishes = append(view.Wishes, PublicWishView{
			ID:               w.ID,
			Title:            w.Title,
			URL:              w.URL,
			Price:            w.Price,
			ImageURL:         w.ImageURL,
			Notes:            w.Notes,
			IsReserved:       w.Reserved(),
			ReservedByViewer: w.ReservedByViewer(viewerID),
		})
	}
	return view
}
