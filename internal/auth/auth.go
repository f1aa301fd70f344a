package auth

import (
	"context"

	"github.com/filippkowalski/heywish/internal/domain"
)

// Verifier maps a bearer credential to an application user record. The
// production implementation is the Postgres api-token repository; tests
// substitute fakes.
type Verifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}

type userKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom extracts the authenticated user placed by the auth middleware.
func UserFrom(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(*domain.User)
	return u, ok
}
