package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filippkowalski/heywish/internal/auth"
	"github.com/filippkowalski/heywish/internal/domain"
	"github.com/filippkowalski/heywish/internal/logger"
)

// DBPinger is the slice of *sql.DB the readiness probes need.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// Deps is the dependency bundle handed to every route registrar. Stores are
// interfaces so handler tests run against in-memory fakes.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Reservations *domain.ReservationService
	Wishlists    domain.WishlistStore
	Wishes       domain.WishStore
	Auth         auth.Verifier

	DB          DBPinger      // nil in handler tests
	RedisClient *redis.Client // nil when the snapshot cache is disabled

	PublicBaseURL string
	CookieSecure  bool // Secure attribute on the reserver cookie

	RateBurst  int
	RatePerMin int
	TrustProxy bool
}

// Now returns the injected clock, defaulting to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
