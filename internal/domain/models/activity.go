// internal/domain/models/activity.go
package models

import "time"

// ActivityRecord is one imported exercise session from the activity provider.
// Records are immutable once imported; re-imports replace the whole record
// keyed by (user_id, provider_id).
//
// Units follow the provider's API: distance and elevation gain in meters,
// moving and elapsed time in seconds.
type ActivityRecord struct {
	ProviderID  int64     `bson:"provider_id"          json:"id"`
	UserID      string    `bson:"user_id"              json:"user_id"`
	Type        string    `bson:"type"                 json:"type"`
	Name        string    `bson:"name,omitempty"       json:"name,omitempty"`
	Distance    float64   `bson:"distance"             json:"distance"`
	MovingTime  int64     `bson:"moving_time"          json:"moving_time"`
	ElapsedTime int64     `bson:"elapsed_time"         json:"elapsed_time"`
	Elevation   float64   `bson:"total_elevation_gain" json:"total_elevation_gain"`
	StartDate   time.Time `bson:"start_date"           json:"start_date"`
}

// ActivityTotals is the summed metrics for a set of activity records.
// The zero value is the additive identity, returned whenever no records match.
type ActivityTotals struct {
	Count       int     `json:"count"`
	Distance    float64 `json:"distance"`
	MovingTime  int64   `json:"moving_time"`
	ElapsedTime int64   `json:"elapsed_time"`
	Elevation   float64 `json:"elevation_gain"`
}

// Add accumulates one record's metrics into the totals.
func (t *ActivityTotals) Add(a ActivityRecord) {
	t.Count++
	t.Distance += a.Distance
	t.MovingTime += a.MovingTime
	t.ElapsedTime += a.ElapsedTime
	t.Elevation += a.Elevation
}

// Metric names a single aggregated value a card or goal can track.
type Metric string

const (
	MetricDistance  Metric = "distance"
	MetricCount     Metric = "count"
	MetricElevation Metric = "elevation"
	MetricTime      Metric = "time"
)

// Valid reports whether m is one of the known metric names.
func (m Metric) Valid() bool {
	switch m {
	case MetricDistance, MetricCount, MetricElevation, MetricTime:
		return true
	}
	return false
}

// Value selects the metric's field from the totals. Count is widened to
// float64 so all metrics compare against float goal targets.
func (m Metric) Value(t ActivityTotals) float64 {
	switch m {
	case MetricDistance:
		return t.Distance
	case MetricCount:
		return float64(t.Count)
	case MetricElevation:
		return t.Elevation
	case MetricTime:
		return float64(t.MovingTime)
	}
	return 0
}
