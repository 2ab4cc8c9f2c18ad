// internal/app/features/dashboard/types.go
package dashboard

import (
	"github.com/dalemusser/stridedash/internal/app/system/metrics"
	"github.com/dalemusser/stridedash/internal/domain/models"
)

// CardView is one rendered dashboard card: the card's configuration plus the
// aggregated totals and goal progress for its window. Progress is null when
// the card has no goal, which clients show differently from 0%.
type CardView struct {
	ID            string                `json:"id"`
	Type          string                `json:"type"`
	Title         string                `json:"title"`
	Label         string                `json:"label"`
	ActivityTypes []string              `json:"activity_types"`
	TimeFrame     models.TimeFrame      `json:"time_frame"`
	Metric        models.Metric         `json:"metric"`
	Totals        models.ActivityTotals `json:"totals"`
	Progress      *metrics.Progress     `json:"progress,omitempty"`
}

// viewResponse is the body for GET /api/dashboard.
type viewResponse struct {
	Cards []CardView `json:"cards"`
}
