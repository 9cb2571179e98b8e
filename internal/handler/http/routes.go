package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// connectivity probe, no authorization
	router.Get("/ping", h.ping)

	router.Group(func(r chi.Router) {
		r.Use(h.withAuth)

		r.Route("/api/collections/{collection}/documents", func(r chi.Router) {
			r.Post("/", h.addDocument)
			r.Get("/", h.queryDocuments)
			r.Get("/{id}", h.getDocument)
			r.Put("/{id}", h.updateDocument)
			r.Delete("/{id}", h.deleteDocument)
		})
	})

	return router
}
