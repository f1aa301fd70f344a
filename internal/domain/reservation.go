package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/filippkowalski/heywish/internal/logger"
)

// ReservationService implements the reservation state machine over the
// stores. It owns the public-visibility gate, the reserver-identity rules
// and snapshot cache maintenance; the hard guard checks themselves live in
// the store's conditional updates so races resolve to a single winner.
type ReservationService struct {
	wishlists WishlistStore
	wishes    WishStore
	users     UserStore
	activity  ActivityStore
	cache     SnapshotCache
	log       logger.Logger
	baseURL   string
	now       func() time.Time
}

// ReservationConfig bundles the service dependencies. Now defaults to
// time.Now; Cache may be nil when no cache is configured.
type ReservationConfig struct {
	Wishlists     WishlistStore
	Wishes        WishStore
	Users         UserStore
	Activity      ActivityStore
	Cache         SnapshotCache
	Logger        logger.Logger
	PublicBaseURL string
	Now           func() time.Time
}

func NewReservationService(cfg ReservationConfig) *ReservationService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &ReservationService{
		wishlists: cfg.Wishlists,
		wishes:    cfg.Wishes,
		users:     cfg.Users,
		activity:  cfg.Activity,
		cache:     cfg.Cache,
		log:       cfg.Logger,
		baseURL:   cfg.PublicBaseURL,
		now:       now,
	}
}

// ShareURL computes the public URL for a share token.
func (s *ReservationService) ShareURL(token string) string {
	return fmt.Sprintf("%s/w/%s", s.baseURL, token)
}

// PublicWishlist returns the viewer-masked view of a public wishlist.
// Missing and non-public wishlists are indistinguishable: both ErrNotFound.
func (s *ReservationService) PublicWishlist(ctx context.Context, token, viewerID string) (*PublicWishlistView, error) {
	snap, err := s.publicSnapshot(ctx, token)
	if err != nil {
		return nil, err
	}
	return MaskSnapshot(snap, s.ShareURL(token), viewerID), nil
}

// ReservePublic reserves a wish on behalf of an anonymous viewer. When the
// viewer has no reserver identifier yet one is minted; the caller persists
// it to the client as a cookie. Returns the identifier that now holds the
// reservation.
func (s *ReservationService) ReservePublic(ctx context.Context, token string, wishID int64, name, email, viewerID string) (string, error) {
	list, err := s.publicGate(ctx, token)
	if err != nil {
		return "", err
	}
	if _, err := s.wishOnList(ctx, wishID, list.ID); err != nil {
		return "", err
	}

	reserver := AnonymousReserver{ID: viewerID, Name: name, Email: email}
	if reserver.ID == "" {
		reserver.ID = MintReserverID(s.now())
	}

	res := Reservation{
		ReserverID: reserver.ReserverID(),
		Name:       reserver.DisplayName(),
		Email:      reserver.ContactEmail(),
		At:         s.now(),
	}
	if err := s.wishes.Reserve(ctx, wishID, res); err != nil {
		return "", err
	}

	s.invalidate(ctx, token)
	s.log.Info("wish reserved",
		logger.Int64("wish_id", wishID),
		logger.Int64("wishlist_id", list.ID))
	return reserver.ReserverID(), nil
}

// ReleasePublic releases a reservation held by the anonymous viewer
// identified by viewerID. Only an exact reserved_by match succeeds.
func (s *ReservationService) ReleasePublic(ctx context.Context, token string, wishID int64, viewerID string) error {
	list, err := s.publicGate(ctx, token)
	if err != nil {
		return err
	}
	if viewerID == "" {
		return ErrNotReserver
	}
	if _, err := s.wishOnList(ctx, wishID, list.ID); err != nil {
		return err
	}
	if err := s.wishes.Release(ctx, wishID, viewerID, s.now()); err != nil {
		return err
	}

	s.invalidate(ctx, token)
	s.log.Info("wish released",
		logger.Int64("wish_id", wishID),
		logger.Int64("wishlist_id", list.ID))
	return nil
}

// ReserveForUser reserves a wish for an authenticated user. Owners cannot
// reserve their own wishes. A wish_reserved activity record is appended.
func (s *ReservationService) ReserveForUser(ctx context.Context, wishID int64, user *User) (*Wish, error) {
	wish, err := s.wishes.GetByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	list, err := s.wishlists.GetByID(ctx, wish.WishlistID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID == user.ID {
		return nil, ErrSelfReserve
	}

	reserver := UserReserver{User: user}
	res := Reservation{
		ReserverID: reserver.ReserverID(),
		Name:       reserver.DisplayName(),
		Email:      reserver.ContactEmail(),
		At:         s.now(),
	}
	if err := s.wishes.Reserve(ctx, wishID, res); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, user.ID, ActionWishReserved, wish)
	s.invalidate(ctx, list.ShareToken)
	return s.wishes.GetByID(ctx, wishID)
}

// ReleaseForUser releases a reservation held by the authenticated user.
func (s *ReservationService) ReleaseForUser(ctx context.Context, wishID int64, user *User) (*Wish, error) {
	wish, err := s.wishes.GetByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if err := s.wishes.Release(ctx, wishID, UserReserverID(user.ID), s.now()); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, user.ID, ActionWishUnreserved, wish)
	if list, err := s.wishlists.GetByID(ctx, wish.WishlistID); err == nil {
		s.invalidate(ctx, list.ShareToken)
	}
	return s.wishes.GetByID(ctx, wishID)
}

// InvalidateSnapshot drops the cached public snapshot for a share token.
// Owner-side edits call this so public viewers do not wait out the TTL.
func (s *ReservationService) InvalidateSnapshot(ctx context.Context, token string) {
	s.invalidate(ctx, token)
}

// publicGate resolves a share token to a wishlist and enforces the
// visibility invariant.
func (s *ReservationService) publicGate(ctx context.Context, token string) (*Wishlist, error) {
	list, err := s.wishlists.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !list.Public() {
		return nil, fmt.Errorf("wishlist %d is not public: %w", list.ID, ErrNotFound)
	}
	return list, nil
}

// wishOnList fetches a wish and verifies it belongs to the given wishlist.
// A wish on a different list is reported as ErrNotFound, not as a
// permission error, to avoid leaking cross-list structure.
func (s *ReservationService) wishOnList(ctx context.Context, wishID, wishlistID int64) (*Wish, error) {
	wish, err := s.wishes.GetByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.WishlistID != wishlistID {
		return nil, fmt.Errorf("wish %d is not on wishlist %d: %w", wishID, wishlistID, ErrNotFound)
	}
	return wish, nil
}

// publicSnapshot returns the cacheable unmasked snapshot for a token,
// reading through the cache when one is configured.
func (s *ReservationService) publicSnapshot(ctx context.Context, token string) (*PublicSnapshot, error) {
	if s.cache != nil {
		snap, err := s.cache.Get(ctx, token)
		if err != nil {
			s.log.Warn("snapshot cache read failed", logger.Error(err))
		} else if snap != nil {
			return snap, nil
		}
	}

	list, err := s.publicGate(ctx, token)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.GetByID(ctx, list.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("resolving owner of wishlist %d: %w", list.ID, err)
	}
	wishes, err := s.wishes.ListByWishlist(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	snap := &PublicSnapshot{
		Wishlist:  list,
		OwnerName: owner.Name(),
		Wishes:    wishes,
		CachedAt:  s.now(),
	}
	if s.cache != nil {
		if err := s.cache.Save(ctx, token, snap); err != nil {
			s.log.Warn("snapshot cache write failed", logger.Error(err))
		}
	}
	return snap, nil
}

// invalidate drops the cached snapshot for a token. Best effort: a stale
// snapshot only delays visibility of a reservation by the cache TTL.
func (s *ReservationService) invalidate(ctx context.Context, token string) {
	if s.cache == nil || token == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, token); err != nil {
		s.log.Warn("snapshot cache invalidation failed",
			logger.String("token", token),
			logger.Error(err))
	}
}

// recordActivity appends an audit record. Failures are logged, not
// propagated: the reservation itself has already committed.
func (s *ReservationService) recordActivity(ctx context.Context, actorID int64, action string, wish *Wish) {
	payload, err := json.Marshal(map[string]string{"title": wish.Title})
	if err != nil {
		payload = []byte(`{}`)
	}
	a := &Activity{
		ActorID:    actorID,
		Action:     action,
		WishID:     wish.ID,
		WishlistID: wish.WishlistID,
		Payload:    payload,
		CreatedAt:  s.now(),
	}
	if err := s.activity.Append(ctx, a); err != nil {
		s.log.Error("failed to append activity record",
			logger.String("action", action),
			logger.Int64("wish_id", wish.ID),
			logger.Error(err))
	}
}
