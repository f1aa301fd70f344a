package domain

import "time"

// WishStatus is derived from the reservation fields, never stored. The
// invariant reserved_by != nil <=> status == reserved holds by construction.
type WishStatus string

const (
	WishAvailable WishStatus = "available"
	WishReserved  WishStatus = "reserved"
)

// Wish is a single item on a wishlist. The four reservation fields move
// together: all nil when available, all set when reserved (reserver_email
// may stay nil, it is optional).
type Wish struct {
	ID         int64  `json:"id"`
	WishlistID int64  `json:"wishlist_id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Price      string `json:"price"`
	ImageURL   string `json:"image_url"`
	Notes      string `json:"notes"`

	ReservedBy    *string    `json:"reserved_by,omitempty"`
	ReserverName  *string    `json:"reserver_name,omitempty"`
	ReserverEmail *string    `json:"reserver_email,omitempty"`
	ReservedAt    *time.Time `json:"reserved_at,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Reserved reports whether the wish currently holds a reservation.
func (w *Wish) Reserved() bool {
	return w.ReservedBy != nil
}

// Status derives the state-machine state from the reservation fields.
func (w *Wish) Status() WishStatus {
	if w.Reserved() {
		return WishReserved
	}
	return WishAvailable
}

// ReservedByViewer reports whether viewerID holds the reservation on w.
// Only an exact identifier match counts; an empty viewer id never matches,
// so anonymous visitors without a cookie see every reservation as foreign.
func (w *Wish) ReservedByViewer(viewerID string) bool {
	return viewerID != "" && w.ReservedBy != nil && *w.ReservedBy == viewerID
}
