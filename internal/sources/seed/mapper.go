package seed

import (
	"fmt"
	"strings"

	"github.com/filippkowalski/heywish/internal/domain"
)

// Mapper converts seed specs to domain entities.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapUser converts a UserSpec to a domain.User.
func (m *Mapper) MapUser(spec UserSpec) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(spec.Email))
	if email == "" {
		return nil, fmt.Errorf("seed user has no email")
	}
	return &domain.User{
		Email:       email,
		DisplayName: strings.TrimSpace(spec.DisplayName),
	}, nil
}

// MapWishlist converts a WishlistSpec to a domain.Wishlist owned by ownerID.
// A missing share token is minted; a missing visibility defaults to private
// so nothing becomes publicly reachable by accident.
func (m *Mapper) MapWishlist(spec WishlistSpec, ownerID int64) (*domain.Wishlist, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("seed wishlist for %q has no name", spec.Owner)
	}

	visibility := domain.VisibilityPrivate
	if spec.Visibility != "" {
		visibility = domain.Visibility(spec.Visibility)
		if !visibility.Valid() {
			return nil, fmt.Errorf("seed wishlist %q: unknown visibility %q", spec.Name, spec.Visibility)
		}
	}

	token := spec.ShareToken
	if token == "" {
		token = domain.MintShareToken()
	}

	return &domain.Wishlist{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(spec.Name),
		Description: spec.Description,
		Visibility:  visibility,
		ShareToken:  token,
	}, nil
}

// MapWish converts a WishSpec to a domain.Wish on the given wishlist.
func (m *Mapper) MapWish(spec WishSpec, wishlistID int64) (*domain.Wish, error) {
	if strings.TrimSpace(spec.Title) == "" {
		return nil, fmt.Errorf("seed wish on wishlist %d has no title", wishlistID)
	}
	return &domain.Wish{
		WishlistID: wishlistID,
		Title:      strings.TrimSpace(spec.Title),
		URL:        spec.URL,
		Price:      spec.Price,
		ImageURL:   spec.ImageURL,
		Notes:      spec.Notes,
	}, nil
}
