package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/filippkowalski/heywish/internal/httpserver/deps"
	"github.com/filippkowalski/heywish/internal/httpserver/handlers"
	"github.com/filippkowalski/heywish/internal/httpserver/mw"
)

func init() { Register(registerWishes) }

func registerWishes(r chi.Router, d deps.Deps) {
	r.With(mw.Auth(d.Auth, d.Logger)).Route("/wishes/{id}", func(r chi.Router) {
		r.Post("/reserve", handlers.ReserveWish(d))
		r.Delete("/reserve", handlers.ReleaseWish(d))
		r.Patch("/", handlers.UpdateWish(d))
		r.Delete("/", handlers.DeleteWish(d))
	})
}
