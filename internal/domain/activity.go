package domain

import (
	"encoding/json"
	"time"
)

// Activity actions recorded by the authenticated reservation endpoints.
const (
	ActionWishReserved   = "wish_reserved"
	ActionWishUnreserved = "wish_unreserved"
)

// Activity is an append-only audit record. Rows are written once and never
// mutated; the payload snapshots the wish at the time of the action so the
// history stays readable after edits or deletion.
type Activity struct {
	ID         int64           `json:"id"`
	ActorID    int64           `json:"actor_id"`
	Action     string          `json:"action"`
	WishID     int64           `json:"wish_id"`
	WishlistID int64           `json:"wishlist_id"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}
