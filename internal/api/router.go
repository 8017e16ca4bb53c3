package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// origins is the CORS allow-list for the frontend.
func NewRouter(h *Handler, origins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(CORS(origins))

	r.Get("/", h.Status)
	r.Get("/health", h.Health)

	r.Get("/projects", h.ListProjects)
	r.Get("/skills", h.ListSkills)
	r.Post("/contacts", h.SubmitContact)

	// Unknown paths and unsupported methods answer the same JSON 404.
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r
}
