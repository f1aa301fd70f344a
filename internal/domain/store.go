package domain

import (
	"context"
	"time"
)

// Reservation carries the fields written by a successful reserve.
type Reservation struct {
	ReserverID string
	Name       string
	Email      string
	At         time.Time
}

// WishlistStore is the persistence boundary for wishlists. Implementations
// must exclude soft-deleted rows from every lookup and return ErrNotFound
// (wrapped) for absent rows.
type WishlistStore interface {
	Create(ctx context.Context, list *Wishlist) (*Wishlist, error)
	GetByID(ctx context.Context, id int64) (*Wishlist, error)
	GetByToken(ctx context.Context, token string) (*Wishlist, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Wishlist, error)
	Update(ctx context.Context, list *Wishlist) (*Wishlist, error)
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}

// WishStore is the persistence boundary for wishes. Reserve and Release
// implement the state-machine guards as single conditional updates so that
// concurrent attempts on the same wish yield exactly one winner.
type WishStore interface {
	Create(ctx context.Context, wish *Wish) (*Wish, error)
	GetByID(ctx context.Context, id int64) (*Wish, error)
	ListByWishlist(ctx context.Context, wishlistID int64) ([]*Wish, error)
	Update(ctx context.Context, wish *Wish) (*Wish, error)
	SoftDelete(ctx context.Context, id int64, at time.Time) error

	// Reserve sets the reservation fields iff the wish exists, is not
	// soft-deleted and reserved_by is NULL. Returns ErrAlreadyReserved when
	// the guard fails, ErrNotFound when the wish is gone.
	Reserve(ctx context.Context, wishID int64, res Reservation) error

	// Release clears the reservation fields iff reserved_by equals
	// reserverID. Returns ErrNotReserver on mismatch (including an
	// unreserved wish), ErrNotFound when the wish is gone.
	Release(ctx context.Context, wishID int64, reserverID string, at time.Time) error
}

// UserStore resolves owner display names for public views.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*User, error)
}

// ActivityStore appends audit records. Append-only by contract.
type ActivityStore interface {
	Append(ctx context.Context, a *Activity) error
}

// PublicSnapshot is the unmasked cacheable form of a public wishlist: the
// list, its owner's display name and the live wishes. Per-viewer masking is
// always computed per request on top of it, so one snapshot serves every
// viewer.
type PublicSnapshot struct {
	Wishlist  *Wishlist `json:"wishlist"`
	OwnerName string    `json:"owner_name"`
	Wishes    []*Wish   `json:"wishes"`
	CachedAt  time.Time `json:"cached_at"`
}

// SnapshotCache caches public snapshots by share token. Get returns
// (nil, nil) on a miss. All methods are best-effort from the service's
// point of view.
type SnapshotCache interface {
	Get(ctx context.Context, token string) (*PublicSnapshot, error)
	Save(ctx context.Context, token string, snap *PublicSnapshot) error
	Invalidate(ctx context.Context, token string) error
}
