package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Visibility controls who can see a wishlist. Only VisibilityPublic makes a
// wishlist reachable through the token-based public endpoints.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityFriends  Visibility = "friends"
	VisibilityPrivate  Visibility = "private"
	VisibilityLinkOnly Visibility = "link_only"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate, VisibilityLinkOnly:
		return true
	}
	return false
}

// Wishlist is a named collection of wishes owned by a user. Deletion is a
// soft-delete marker; deleted wishlists are invisible to every endpoint and
// eventually purged by the scheduler.
type Wishlist struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Visibility  Visibility `json:"visibility"`
	ShareToken  string     `json:"share_token"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Public reports whether the wishlist is reachable through its share token.
func (w *Wishlist) Public() bool {
	return w.Visibility == VisibilityPublic && w.DeletedAt == nil
}

// MintShareToken returns a new opaque, unguessable share token.
func MintShareToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(buf)
}
