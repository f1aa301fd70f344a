package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/filippkowalski/heywish/internal/httpserver/deps"
	"github.com/filippkowalski/heywish/internal/httpserver/handlers"
	"github.com/filippkowalski/heywish/internal/httpserver/mw"
)

func init() { Register(registerWishlists) }

func registerWishlists(r chi.Router, d deps.Deps) {
	r.With(mw.Auth(d.Auth, d.Logger)).Route("/wishlists", func(r chi.Router) {
		r.Post("/", handlers.CreateWishlist(d))
		r.Get("/", handlers.ListWishlists(d))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetWishlist(d))
			r.Patch("/", handlers.UpdateWishlist(d))
			r.Delete("/", handlers.DeleteWishlist(d))
			r.Post("/wishes", handlers.CreateWish(d))
		})
	})
}
