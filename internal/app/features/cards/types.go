// internal/app/features/cards/types.go
package cards

import (
	"github.com/dalemusser/stridedash/internal/domain/models"
)

// createRequest is the payload for POST /api/cards.
type createRequest struct {
	UserID        string           `json:"user_id"`
	Type          string           `json:"type"`
	ActivityTypes []string         `json:"activity_types"`
	TimeFrame     models.TimeFrame `json:"time_frame"`
	Metric        models.Metric    `json:"metric"`
	Goal          *float64         `json:"goal,omitempty"`
	Title         string           `json:"title"`
	Visible       *bool            `json:"visible,omitempty"` // default true
}

// updateRequest is the payload for PATCH /api/cards/{cardID}. Absent fields
// are left unchanged; clear_goal removes the goal.
type updateRequest struct {
	UserID        string            `json:"user_id"`
	Type          *string           `json:"type,omitempty"`
	ActivityTypes []string          `json:"activity_types,omitempty"`
	TimeFrame     *models.TimeFrame `json:"time_frame,omitempty"`
	Metric        *models.Metric    `json:"metric,omitempty"`
	Goal          *float64          `json:"goal,omitempty"`
	ClearGoal     bool              `json:"clear_goal,omitempty"`
	Title         *string           `json:"title,omitempty"`
	Visible       *bool             `json:"visible,omitempty"`
	Position      *int              `json:"position,omitempty"`
}

// listResponse is the body for GET /api/cards.
type listResponse struct {
	Cards []models.CardConfig `json:"cards"`
}
