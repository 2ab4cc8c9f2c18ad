// internal/app/features/cards/handler.go

// Package cards provides the dashboard card configuration API.
//
// Endpoints (mounted at /api/cards):
//   - GET    /            - visible cards in display order
//   - GET    /config      - the full dashboard document
//   - POST   /            - add a card
//   - PATCH  /{cardID}    - partially update a card
//   - DELETE /{cardID}    - delete a card (no-op when absent)
//   - DELETE /            - clear the whole dashboard document
package cards

import (
	"errors"
	"net/http"

	dashboardstore "github.com/dalemusser/stridedash/internal/app/store/dashboard"
	"github.com/dalemusser/stridedash/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Handler handles card configuration API requests.
type Handler struct {
	store     *dashboardstore.Store
	logger    *zap.Logger
	sanitizer *bluemonday.Policy
}

// NewHandler creates a new cards handler. Card titles are user input that
// ends up rendered by UI clients, so they pass through a strict HTML
// sanitizer on the way in.
func NewHandler(store *dashboardstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:     store,
		logger:    logger,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// ListHandler handles GET /api/cards.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}

	visible, err := h.store.ListVisibleCards(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list cards", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to list cards")
		return
	}
	jsonutil.OK(w, listResponse{Cards: visible})
}

// ConfigHandler handles GET /api/cards/config, returning the full document
// including hidden cards, layout, and preferences.
func (h *Handler) ConfigHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}

	cfg, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load dashboard config", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to load dashboard config")
		return
	}
	jsonutil.OK(w, cfg)
}

// CreateHandler handles POST /api/cards.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in createRequest
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if in.UserID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}
	if !in.Metric.Valid() {
		jsonutil.BadRequest(w, "metric must be one of distance, count, elevation, time")
		return
	}
	if !in.TimeFrame.Valid() {
		jsonutil.BadRequest(w, "invalid time_frame")
		return
	}

	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}

	card, err := h.store.AddCard(r.Context(), in.UserID, dashboardstore.CardInput{
		Type:          in.Type,
		ActivityTypes: in.ActivityTypes,
		TimeFrame:     in.TimeFrame,
		Metric:        in.Metric,
		Goal:          in.Goal,
		Title:         h.sanitizer.Sanitize(in.Title),
		Visible:       visible,
	})
	if err != nil {
		h.logger.Error("failed to add card", zap.String("user_id", in.UserID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to add card")
		return
	}

	h.logger.Debug("card added",
		zap.String("user_id", in.UserID),
		zap.String("card_id", card.ID),
		zap.Int("position", card.Position),
	)
	jsonutil.Created(w, card)
}

// UpdateHandler handles PATCH /api/cards/{cardID}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	var in updateRequest
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if in.UserID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}
	if in.Metric != nil && !in.Metric.Valid() {
		jsonutil.BadRequest(w, "metric must be one of distance, count, elevation, time")
		return
	}
	if in.TimeFrame != nil && !in.TimeFrame.Valid() {
		jsonutil.BadRequest(w, "invalid time_frame")
		return
	}
	if in.Title != nil {
		clean := h.sanitizer.Sanitize(*in.Title)
		in.Title = &clean
	}

	card, err := h.store.UpdateCard(r.Context(), in.UserID, cardID, dashboardstore.CardUpdate{
		Type:          in.Type,
		ActivityTypes: in.ActivityTypes,
		TimeFrame:     in.TimeFrame,
		Metric:        in.Metric,
		Goal:          in.Goal,
		ClearGoal:     in.ClearGoal,
		Title:         in.Title,
		Visible:       in.Visible,
		Position:      in.Position,
	})
	if err != nil {
		if errors.Is(err, dashboardstore.ErrNotFound) {
			jsonutil.NotFound(w, "Card not found")
			return
		}
		h.logger.Error("failed to update card",
			zap.String("user_id", in.UserID),
			zap.String("card_id", cardID),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to update card")
		return
	}
	jsonutil.OK(w, card)
}

// DeleteHandler handles DELETE /api/cards/{cardID}. Deleting an unknown id
// succeeds: the card is gone either way.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}

	if err := h.store.DeleteCard(r.Context(), userID, cardID); err != nil {
		h.logger.Error("failed to delete card",
			zap.String("user_id", userID),
			zap.String("card_id", cardID),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to delete card")
		return
	}
	jsonutil.NoContent(w)
}

// ClearHandler handles DELETE /api/cards, removing the whole dashboard
// document so the next read returns the default.
func (h *Handler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}

	if err := h.store.Clear(r.Context(), userID); err != nil {
		h.logger.Error("failed to clear dashboard config", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to clear dashboard config")
		return
	}
	jsonutil.NoContent(w)
}
