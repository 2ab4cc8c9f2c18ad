// internal/app/system/metrics/timeframe.go
package metrics

import (
	"fmt"
	"time"

	"github.com/dalemusser/stridedash/internal/domain/models"
)

// Window resolves a frame to its half-open interval [start, end) anchored at
// now. bounded is false for the all-time frame, which has no interval.
// Weeks start on Monday; all calendar math is done in now's location.
func Window(frame models.TimeFrame, now time.Time) (start, end time.Time, bounded bool) {
	switch frame.Kind {
	case models.FrameWeek:
		start = weekStart(now)
		return start, start.AddDate(0, 0, 7), true
	case models.FrameMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), true
	case models.FrameYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), true
	case models.FrameCustom:
		return frame.Start, frame.End, true
	}
	return time.Time{}, time.Time{}, false
}

// weekStart returns midnight on the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// Filter narrows activities to those whose start date falls inside the
// frame's window anchored at the current time. A nil slice is tolerated and
// yields an empty result, so callers may filter before data has loaded.
func Filter(activities []models.ActivityRecord, frame models.TimeFrame) []models.ActivityRecord {
	return FilterAt(activities, frame, time.Now().UTC())
}

// FilterAt is Filter with an explicit anchor time. A record is included iff
// start <= StartDate < end; the exclusive end keeps records on a window seam
// from being counted in two adjacent windows.
func FilterAt(activities []models.ActivityRecord, frame models.TimeFrame, now time.Time) []models.ActivityRecord {
	out := make([]models.ActivityRecord, 0, len(activities))
	start, end, bounded := Window(frame, now)
	if !bounded {
		return append(out, activities...)
	}
	for _, a := range activities {
		if !a.StartDate.Before(start) && a.StartDate.Before(end) {
			out = append(out, a)
		}
	}
	return out
}

// Describe returns the stable human label for a frame, for display only.
func Describe(frame models.TimeFrame) string {
	switch frame.Kind {
	case models.FrameWeek:
		return "this week"
	case models.FrameMonth:
		return "this month"
	case models.FrameYear:
		return "this year"
	case models.FrameAll:
		return "all time"
	case models.FrameCustom:
		// End is exclusive; show the last day inside the window.
		last := frame.End.AddDate(0, 0, -1)
		return fmt.Sprintf("%s – %s", frame.Start.Format("Jan 2, 2006"), last.Format("Jan 2, 2006"))
	}
	return string(frame.Kind)
}
