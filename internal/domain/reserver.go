package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// AnonymousReserverName is stored when a public reserver gives no name.
const AnonymousReserverName = "Anonymous"

// Reserver is the capability to hold and release a reservation. Whoever
// presents an identifier equal to a wish's reserved_by may release it. Two
// providers exist: the anonymous cookie identity and the authenticated user
// identity, selected by which endpoint is invoked.
type Reserver interface {
	ReserverID() string
	DisplayName() string
	ContactEmail() string
}

// AnonymousReserver is a cookie-held bearer capability, not tied to any
// account.
type AnonymousReserver struct {
	ID    string
	Name  string
	Email string
}

func (r AnonymousReserver) ReserverID() string { return r.ID }

func (r AnonymousReserver) DisplayName() string {
	if r.Name == "" {
		return AnonymousReserverName
	}
	return r.Name
}

func (r AnonymousReserver) ContactEmail() string { return r.Email }

// UserReserver derives a stable reserver identifier from an authenticated
// account.
type UserReserver struct {
	User *User
}

func (r UserReserver) ReserverID() string   { return UserReserverID(r.User.ID) }
func (r UserReserver) DisplayName() string  { return r.User.Name() }
func (r UserReserver) ContactEmail() string { return r.User.Email }

// UserReserverID returns the reserver identifier for a user id. The prefix
// keeps user-derived identifiers disjoint from minted anonymous ones.
func UserReserverID(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// MintReserverID creates a fresh anonymous reserver identifier: millisecond
// timestamp plus a random hex suffix. Opaque to clients, unguessable enough
// that presenting it acts as proof of ownership of the reservation.
func MintReserverID(now time.Time) string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), hex.EncodeToString(buf))
}
