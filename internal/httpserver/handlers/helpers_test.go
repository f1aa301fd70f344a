package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filippkowalski/heywish/internal/domain"
	"github.com/filippkowalski/heywish/internal/httpserver/deps"
	"github.com/filippkowalski/heywish/internal/logger"
)

type memWishlists struct {
	lists  map[int64]*domain.Wishlist
	nextID int64
}

func (m *memWishlists) Create(ctx context.Context, list *domain.Wishlist) (*domain.Wishlist, error) {
	m.nextID++
	list.ID = m.nextID
	list.CreatedAt = time.Now()
	list.UpdatedAt = list.CreatedAt
	m.lists[list.ID] = list
	return list, nil
}

func (m *memWishlists) GetByID(ctx context.Context, id int64) (*domain.Wishlist, error) {
	l, ok := m.lists[id]
	if !ok || l.DeletedAt != nil {
		return nil, fmt.Errorf("wishlist %d: %w", id, domain.ErrNotFound)
	}
	return l, nil
}

func (m *memWishlists) GetByToken(ctx context.Context, token string) (*domain.Wishlist, error) {
	for _, l := range m.lists {
		if l.ShareToken == token && l.DeletedAt == nil {
			return l, nil
		}
	}
	return nil, fmt.Errorf("wishlist token %q: %w", token, domain.ErrNotFound)
}

func (m *memWishlists) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Wishlist, error) {
	var out []*domain.Wishlist
	for _, l := range m.lists {
		if l.OwnerID == ownerID && l.DeletedAt == nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memWishlists) Update(ctx context.Context, list *domain.Wishlist) (*domain.Wishlist, error) {
	if _, ok := m.lists[list.ID]; !ok {
		return nil, fmt.Errorf("wishlist %d: %w", list.ID, domain.ErrNotFound)
	}
	list.UpdatedAt = time.Now()
	m.lists[list.ID] = list
	return list, nil
}

func (m *memWishlists) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	l, ok := m.lists[id]
	if !ok || l.DeletedAt != nil {
		return fmt.Errorf("wishlist %d: %w", id, domain.ErrNotFound)
	}
	l.DeletedAt = &at
	return nil
}

type memWishes struct {
	wishes map[int64]*domain.Wish
	nextID int64
}

func (m *memWishes) Create(ctx context.Context, wish *domain.Wish) (*domain.Wish, error) {
	m.nextID++
	wish.ID = m.nextID
	wish.CreatedAt = time.Now()
	wish.UpdatedAt = wish.CreatedAt
	m.wishes[wish.ID] = wish
	return wish, nil
}

func (m *memWishes) GetByID(ctx context.Context, id int64) (*domain.Wish, error) {
	w, ok := m.wishes[id]
	if !ok || w.DeletedAt != nil {
		return nil, fmt.Errorf("wish %d: %w", id, domain.ErrNotFound)
	}
	return w, nil
}

func (m *memWishes) ListByWishlist(ctx context.Context, wishlistID int64) ([]*domain.Wish, error) {
	var out []*domain.Wish
	for _, w := range m.wishes {
		if w.WishlistID == wishlistID && w.DeletedAt == nil {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memWishes) Update(ctx context.Context, wish *domain.Wish) (*domain.Wish, error) {
	if _, ok := m.wishes[wish.ID]; !ok {
		return nil, fmt.Errorf("wish %d: %w", wish.ID, domain.ErrNotFound)
	}
	wish.UpdatedAt = time.Now()
	m.wishes[wish.ID] = wish
	return wish, nil
}

func (m *memWishes) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	w, ok := m.wishes[id]
	if !ok || w.DeletedAt != nil {
		return fmt.Errorf("wish %d: %w", id, domain.ErrNotFound)
	}
	w.DeletedAt = &at
	return nil
}

func (m *memWishes) Reserve(ctx context.Context, wishID int64, res domain.Reservation) error {
	w, ok := m.wishes[wishID]
	if !ok || w.DeletedAt != nil {
		return fmt.Errorf("wish %d: %w", wishID, domain.ErrNotFound)
	}
	if w.ReservedBy != nil {
		return domain.ErrAlreadyReserved
	}
	w.ReservedBy = &res.ReserverID
	w.ReserverName = &res.Name
	if res.Email != "" {
		w.ReserverEmail = &res.Email
	}
	at := res.At
	w.ReservedAt = &at
	return nil
}

func (m *memWishes) Release(ctx context.Context, wishID int64, reserverID string, at time.Time) error {
	w, ok := m.wishes[wishID]
	if !ok || w.DeletedAt != nil {
		return fmt.Errorf("wish %d: %w", wishID, domain.ErrNotFound)
	}
	if w.ReservedBy == nil || *w.ReservedBy != reserverID {
		return domain.ErrNotReserver
	}
	w.ReservedBy = nil
	w.ReserverName = nil
	w.ReserverEmail = nil
	w.ReservedAt = nil
	return nil
}

type memUsers struct {
	users map[int64]*domain.User
}

func (m *memUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

type memActivities struct {
	records []*domain.Activity
}

func (m *memActivities) Append(ctx context.Context, a *domain.Activity) error {
	m.records = append(m.records, a)
	return nil
}

type testEnv struct {
	deps      deps.Deps
	wishlists *memWishlists
	wishes    *memWishes
	users     *memUsers
	activity  *memActivities
	router    chi.Router
}

// newTestEnv seeds the same fixture the service tests use: public list
// "pub" (owner 1, wishes 1-2) and private list "priv" (owner 2, wish 3).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		wishlists: &memWishlists{
			lists: map[int64]*domain.Wishlist{
				1: {ID: 1, OwnerID: 1, Name: "Birthday", Visibility: domain.VisibilityPublic, ShareToken: "pub"},
				2: {ID: 2, OwnerID: 2, Name: "Secret", Visibility: domain.VisibilityPrivate, ShareToken: "priv"},
			},
			nextID: 2,
		},
		wishes: &memWishes{
			wishes: map[int64]*domain.Wish{
				1: {ID: 1, WishlistID: 1, Title: "Headphones"},
				2: {ID: 2, WishlistID: 1, Title: "Socks"},
				3: {ID: 3, WishlistID: 2, Title: "Diary"},
			},
			nextID: 3,
		},
		users: &memUsers{users: map[int64]*domain.User{
			1: {ID: 1, Email: "owner@example.com", DisplayName: "Olivia"},
			2: {ID: 2, Email: "other@example.com"},
			3: {ID: 3, Email: "friend@example.com", DisplayName: "Frank"},
		}},
		activity: &memActivities{},
	}

	log := logger.New("error", false)
	reservations := domain.NewReservationService(domain.ReservationConfig{
		Wishlists:     env.wishlists,
		Wishes:        env.wishes,
		Users:         env.users,
		Activity:      env.activity,
		Logger:        log,
		PublicBaseURL: "https://heywish.test",
	})

	env.deps = deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Reservations:  reservations,
		Wishlists:     env.wishlists,
		Wishes:        env.wishes,
		PublicBaseURL: "https://heywish.test",
	}

	r := chi.NewRouter()
	r.Route("/public/wishlists/{token}", func(r chi.Router) {
		r.Get("/", PublicWishlist(env.deps))
		r.Post("/", PublicReserve(env.deps))
		r.Delete("/", PublicRelease(env.deps))
	})
	r.Route("/wishes/{id}", func(r chi.Router) {
		r.Post("/reserve", ReserveWish(env.deps))
		r.Delete("/reserve", ReleaseWish(env.deps))
		r.Patch("/", UpdateWish(env.deps))
		r.Delete("/", DeleteWish(env.deps))
	})
	r.Route("/wishlists", func(r chi.Router) {
		r.Post("/", CreateWishlist(env.deps))
		r.Get("/", ListWishlists(env.deps))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", GetWishlist(env.deps))
			r.Patch("/", UpdateWishlist(env.deps))
			r.Delete("/", DeleteWishlist(env.deps))
			r.Post("/wishes", CreateWish(env.deps))
		})
	})
	env.router = r

	return env
}

func reserverCookieFrom(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == reserverCookie {
			return c
		}
	}
	return nil
}
