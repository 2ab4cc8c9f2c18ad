// internal/app/features/dashboard/handler.go

// Package dashboard assembles rendered dashboard cards: for every visible
// card it narrows the user's imported activities to the card's time window,
// aggregates totals for the card's activity types, and computes goal
// progress. This is the read path a UI client polls; it never writes.
package dashboard

import (
	"context"
	"net/http"

	dashboardstore "github.com/dalemusser/stridedash/internal/app/store/dashboard"
	goalstore "github.com/dalemusser/stridedash/internal/app/store/goals"
	"github.com/dalemusser/stridedash/internal/app/system/jsonutil"
	"github.com/dalemusser/stridedash/internal/app/system/metrics"
	"github.com/dalemusser/stridedash/internal/domain/models"
	"go.uber.org/zap"
)

// ActivitySource supplies a user's already-imported activity records.
type ActivitySource interface {
	ListByUser(ctx context.Context, userID string) ([]models.ActivityRecord, error)
}

// Handler handles dashboard view requests.
type Handler struct {
	cards      *dashboardstore.Store
	goals      *goalstore.Store
	activities ActivitySource
	logger     *zap.Logger
}

// NewHandler creates a new dashboard handler.
func NewHandler(cards *dashboardstore.Store, goals *goalstore.Store, activities ActivitySource, logger *zap.Logger) *Handler {
	return &Handler{cards: cards, goals: goals, activities: activities, logger: logger}
}

// ViewHandler handles GET /api/dashboard. Activities are fetched once and
// shared across all cards; each card filters and aggregates independently.
func (h *Handler) ViewHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}
	ctx := r.Context()

	visible, err := h.cards.ListVisibleCards(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load cards", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to load dashboard")
		return
	}

	records, err := h.activities.ListByUser(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load activities", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to load dashboard")
		return
	}

	yearly, err := h.goals.Get(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load yearly goals", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to load dashboard")
		return
	}

	views := make([]CardView, 0, len(visible))
	for _, card := range visible {
		windowed := metrics.Filter(records, card.TimeFrame)
		totals := metrics.Aggregate(windowed, card.ActivityTypes)
		goal := resolveGoal(card, yearly)

		views = append(views, CardView{
			ID:            card.ID,
			Type:          card.Type,
			Title:         card.Title,
			Label:         metrics.Describe(card.TimeFrame),
			ActivityTypes: card.ActivityTypes,
			TimeFrame:     card.TimeFrame,
			Metric:        card.Metric,
			Totals:        totals,
			Progress:      metrics.CalculateProgress(totals, goal, card.TimeFrame),
		})
	}

	jsonutil.OK(w, viewResponse{Cards: views})
}

// resolveGoal picks the goal a card is measured against. An inline card goal
// wins; a year-frame card tracking a single activity type falls back to that
// type's yearly target for the card's metric. Everything else has no goal.
func resolveGoal(card models.CardConfig, yearly models.YearlyGoals) *metrics.Goal {
	if card.Goal != nil {
		return &metrics.Goal{Metric: card.Metric, Target: *card.Goal}
	}
	if card.TimeFrame.Kind != models.FrameYear || len(card.ActivityTypes) != 1 {
		return nil
	}
	targets, ok := yearly.Activities[card.ActivityTypes[0]]
	if !ok {
		return nil
	}
	target, ok := targets[string(card.Metric)]
	if !ok {
		return nil
	}
	return &metrics.Goal{Metric: card.Metric, Target: target}
}
