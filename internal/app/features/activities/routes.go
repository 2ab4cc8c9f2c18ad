// internal/app/features/activities/routes.go
package activities

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the activity endpoints. Mounted at
// /api/activities behind API key auth and API CORS.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/import", h.ImportHandler)
	r.Get("/", h.ListHandler)

	return r
}
