// internal/app/features/goals/handler.go

// Package goals provides the yearly goals API.
//
// Endpoints (mounted at /api/goals):
//   - GET    / - the user's yearly goals (migrating legacy documents on read)
//   - PUT    / - replace the goals document
//   - DELETE / - clear the goals document
package goals

import (
	"net/http"

	goalstore "github.com/dalemusser/stridedash/internal/app/store/goals"
	"github.com/dalemusser/stridedash/internal/app/system/jsonutil"
	"github.com/dalemusser/stridedash/internal/domain/models"
	"go.uber.org/zap"
)

// Handler handles yearly goals API requests.
type Handler struct {
	store  *goalstore.Store
	logger *zap.Logger
}

// NewHandler creates a new goals handler.
func NewHandler(store *goalstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// saveRequest is the payload for PUT /api/goals.
type saveRequest struct {
	UserID string             `json:"user_id"`
	Goals  models.YearlyGoals `json:"goals"`
}

// GetHandler handles GET /api/goals. Legacy fixed-category documents are
// migrated and persisted by the store before this returns.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}

	goals, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load yearly goals", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to load goals")
		return
	}
	jsonutil.OK(w, goals)
}

// SaveHandler handles PUT /api/goals, storing the document verbatim.
func (h *Handler) SaveHandler(w http.ResponseWriter, r *http.Request) {
	var in saveRequest
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if in.UserID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}

	if err := h.store.Save(r.Context(), in.UserID, in.Goals); err != nil {
		h.logger.Error("failed to save yearly goals", zap.String("user_id", in.UserID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to save goals")
		return
	}

	h.logger.Debug("yearly goals saved",
		zap.String("user_id", in.UserID),
		zap.Int("activity_types", len(in.Goals.Activities)),
	)
	jsonutil.OK(w, in.Goals)
}

// ClearHandler handles DELETE /api/goals.
func (h *Handler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}

	if err := h.store.Clear(r.Context(), userID); err != nil {
		h.logger.Error("failed to clear yearly goals", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to clear goals")
		return
	}
	jsonutil.NoContent(w)
}
