package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/filippkowalski/heywish/internal/httpserver/deps"
	"github.com/filippkowalski/heywish/internal/httpserver/handlers"
	"github.com/filippkowalski/heywish/internal/httpserver/mw"
)

func init() { Register(registerPublic) }

// The public surface is the only unauthenticated one, so it carries the
// per-IP rate limit.
func registerPublic(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.RateBurst,
		RefillPerMin: d.RatePerMin,
		TrustProxy:   d.TrustProxy,
	})

	r.With(limit).Route("/public/wishlists/{token}", func(r chi.Router) {
		r.Get("/", handlers.PublicWishlist(d))
		r.Post("/", handlers.PublicReserve(d))
		r.Delete("/", handlers.PublicRelease(d))
	})
}
