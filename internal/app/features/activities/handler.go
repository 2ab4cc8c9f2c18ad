// internal/app/features/activities/handler.go

// Package activities provides the activity import and listing API. The
// actual provider fetch (OAuth, paging) happens in an external sync job;
// this API is where its output lands.
//
// Endpoints (mounted at /api/activities):
//   - POST /import - bulk-import provider records (idempotent per record)
//   - GET  /       - the user's imported records, newest first
package activities

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/stridedash/internal/app/system/jsonutil"
	"github.com/dalemusser/stridedash/internal/domain/models"
	"go.uber.org/zap"
)

// Repository is the slice of the activity store this feature needs.
type Repository interface {
	Import(ctx context.Context, userID string, records []models.ActivityRecord) (int, error)
	ListByUser(ctx context.Context, userID string) ([]models.ActivityRecord, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]models.ActivityRecord, error)
}

// Handler handles activity API requests.
type Handler struct {
	repo   Repository
	logger *zap.Logger
}

// NewHandler creates a new activities handler.
func NewHandler(repo Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// importRequest is the payload for POST /api/activities/import.
type importRequest struct {
	UserID     string                  `json:"user_id"`
	Activities []models.ActivityRecord `json:"activities"`
}

// ImportHandler handles POST /api/activities/import.
func (h *Handler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	var in importRequest
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if in.UserID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}
	for _, a := range in.Activities {
		if a.ProviderID == 0 {
			jsonutil.BadRequest(w, "every activity needs a provider id")
			return
		}
	}

	written, err := h.repo.Import(r.Context(), in.UserID, in.Activities)
	if err != nil {
		h.logger.Error("failed to import activities",
			zap.String("user_id", in.UserID),
			zap.Int("count", len(in.Activities)),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to import activities")
		return
	}

	h.logger.Info("activities imported",
		zap.String("user_id", in.UserID),
		zap.Int("written", written),
	)
	jsonutil.OK(w, map[string]int{"imported": written})
}

// ListHandler handles GET /api/activities. An optional since parameter
// (RFC 3339) limits the result to records starting on or after that instant,
// so the sync job can check what already landed without paging all history.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonutil.BadRequest(w, "user_id is required")
		return
	}

	var records []models.ActivityRecord
	var err error
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			jsonutil.BadRequest(w, "since must be an RFC 3339 timestamp")
			return
		}
		records, err = h.repo.ListSince(r.Context(), userID, since)
	} else {
		records, err = h.repo.ListByUser(r.Context(), userID)
	}
	if err != nil {
		h.logger.Error("failed to list activities", zap.String("user_id", userID), zap.Error(err))
		jsonutil.InternalError(w, "Failed to list activities")
		return
	}
	if records == nil {
		records = []models.ActivityRecord{}
	}
	jsonutil.OK(w, map[string]any{"activities": records})
}
