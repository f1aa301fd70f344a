package domain

import "time"

// User is an authenticated account. Owners of wishlists and callers of the
// authenticated reservation endpoints are users; anonymous reservers are not.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Name returns the best display string for the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
