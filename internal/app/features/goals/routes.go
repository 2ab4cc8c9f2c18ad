// internal/app/features/goals/routes.go
package goals

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the yearly goals endpoints. Mounted at
// /api/goals behind API key auth and API CORS.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetHandler)
	r.Put("/", h.SaveHandler)
	r.Delete("/", h.ClearHandler)

	return r
}
