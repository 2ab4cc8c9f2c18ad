// internal/app/system/metrics/progress.go
package metrics

import (
	"time"

	"github.com/dalemusser/stridedash/internal/domain/models"
)

// Goal is a target for exactly one metric.
type Goal struct {
	Metric models.Metric `json:"metric"`
	Target float64       `json:"target"`
}

// Progress is accumulated metric value measured against a goal. Ratio is
// unclamped so values above 1 signal over-achievement. Projected is the
// linear full-window extrapolation of Current; it is nil for frames where an
// elapsed fraction is not meaningful (all-time and custom).
type Progress struct {
	Current   float64  `json:"current"`
	Target    float64  `json:"target"`
	Ratio     float64  `json:"ratio"`
	Projected *float64 `json:"projected,omitempty"`
}

// CalculateProgress compares totals against a goal for the given frame.
// A nil goal returns nil: "no goal set" is a distinct state from zero
// progress. A non-positive target yields ratio 0 rather than dividing by
// zero.
func CalculateProgress(totals models.ActivityTotals, goal *Goal, frame models.TimeFrame) *Progress {
	return CalculateProgressAt(totals, goal, frame, time.Now().UTC())
}

// CalculateProgressAt is CalculateProgress with an explicit anchor time.
func CalculateProgressAt(totals models.ActivityTotals, goal *Goal, frame models.TimeFrame, now time.Time) *Progress {
	if goal == nil {
		return nil
	}

	current := goal.Metric.Value(totals)
	p := &Progress{Current: current, Target: goal.Target}
	if goal.Target > 0 {
		p.Ratio = current / goal.Target
	}

	// Pace projection only applies to the named calendar frames: a custom
	// window has no defined relationship to now and all-time has no bounds.
	switch frame.Kind {
	case models.FrameWeek, models.FrameMonth, models.FrameYear:
		start, end, ok := Window(frame, now)
		if !ok || !now.After(start) {
			break
		}
		elapsed := now.Sub(start).Seconds() / end.Sub(start).Seconds()
		if elapsed > 1 {
			elapsed = 1
		}
		projected := current / elapsed
		p.Projected = &projected
	}

	return p
}
