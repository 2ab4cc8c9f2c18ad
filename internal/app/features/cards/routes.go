// internal/app/features/cards/routes.go
package cards

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the card configuration endpoints. Mounted at
// /api/cards behind API key auth and API CORS (see bootstrap/routes.go).
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListHandler)
	r.Get("/config", h.ConfigHandler)
	r.Post("/", h.CreateHandler)
	r.Delete("/", h.ClearHandler)
	r.Patch("/{cardID}", h.UpdateHandler)
	r.Delete("/{cardID}", h.DeleteHandler)

	return r
}
