// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the dashboard view endpoint. Mounted at
// /api/dashboard behind API key auth and API CORS.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ViewHandler)

	return r
}
