package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"provider_map/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/providers", func(r chi.Router) {
			r.Get("/map", handler(s.getProvidersMap, s.failure("Error loading providers")...))
			r.Get("/search", handler(s.getProvidersSearch, s.failure("Error searching providers")...))
			r.Get("/{slug}", handler(s.getProvider, s.failure("Error loading provider")...))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handler(s.getCategories, s.failure("Error loading categories")...))
			r.Get("/{parentID}/subcategories", handler(s.getSubcategories, s.failure("Error loading subcategories")...))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error, opts ...reply.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err, opts...)
		}
	}
}
