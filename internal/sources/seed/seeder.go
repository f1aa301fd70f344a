package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/filippkowalski/heywish/internal/domain"
	"github.com/filippkowalski/heywish/internal/logger"
)

// UserStore is the slice of the user repository the seeder writes through.
type UserStore interface {
	UpsertByEmail(ctx context.Context, u *domain.User) (*domain.User, error)
}

// TokenStore registers API tokens for seeded users.
type TokenStore interface {
	Put(ctx context.Context, userID int64, token string) error
}

// Seeder applies a fixture file to the stores. Re-applying the same file is
// safe: users upsert by email and wishlists with a fixed share token are
// skipped when they already exist.
type Seeder struct {
	loader    *Loader
	mapper    *Mapper
	users     UserStore
	tokens    TokenStore
	wishlists domain.WishlistStore
	wishes    domain.WishStore
	logger    logger.Logger
}

// NewSeeder creates a seeder for the given fixture file.
func NewSeeder(
	seedFile string,
	users UserStore,
	tokens TokenStore,
	wishlists domain.WishlistStore,
	wishes domain.WishStore,
	log logger.Logger,
) *Seeder {
	return &Seeder{
		loader:    NewLoader(seedFile),
		mapper:    NewMapper(),
		users:     users,
		tokens:    tokens,
		wishlists: wishlists,
		wishes:    wishes,
		logger:    log,
	}
}

// Apply loads the fixture and writes it through the stores.
func (s *Seeder) Apply(ctx context.Context) error {
	cfg, err := s.loader.Load()
	if err != nil {
		return err
	}

	userIDs := make(map[string]int64, len(cfg.Users))
	for _, spec := range cfg.Users {
		u, err := s.mapper.MapUser(spec)
		if err != nil {
			return err
		}
		stored, err := s.users.UpsertByEmail(ctx, u)
		if err != nil {
			return fmt.Errorf("seeding user %q: %w", u.Email, err)
		}
		userIDs[stored.Email] = stored.ID

		if spec.APIToken != "" {
			if err := s.tokens.Put(ctx, stored.ID, spec.APIToken); err != nil {
				return fmt.Errorf("seeding token for %q: %w", u.Email, err)
			}
		}
	}

	created := 0
	for _, spec := range cfg.Wishlists {
		ownerID, ok := userIDs[spec.Owner]
		if !ok {
			return fmt.Errorf("seed wishlist %q references unknown owner %q", spec.Name, spec.Owner)
		}

		if spec.ShareToken != "" {
			_, err := s.wishlists.GetByToken(ctx, spec.ShareToken)
			if err == nil {
				s.logger.Debug("seed wishlist already present, skipping",
					logger.String("share_token", spec.ShareToken))
				continue
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("checking seed wishlist %q: %w", spec.Name, err)
			}
		}

		list, err := s.mapper.MapWishlist(spec, ownerID)
		if err != nil {
			return err
		}
		stored, err := s.wishlists.Create(ctx, list)
		if err != nil {
			return fmt.Errorf("seeding wishlist %q: %w", list.Name, err)
		}
		created++

		for _, wishSpec := range spec.Wishes {
			wish, err := s.mapper.MapWish(wishSpec, stored.ID)
			if err != nil {
				return err
			}
			if _, err := s.wishes.Create(ctx, wish); err != nil {
				return fmt.Errorf("seeding wish %q: %w", wish.Title, err)
			}
		}
	}

	s.logger.Info("seed fixture applied",
		logger.Int("users", len(cfg.Users)),
		logger.Int("wishlists_created", created))
	return nil
}
