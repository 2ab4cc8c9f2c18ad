// internal/domain/models/timeframe.go
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FrameKind names the calendar window a card aggregates over.
type FrameKind string

const (
	FrameWeek   FrameKind = "week"
	FrameMonth  FrameKind = "month"
	FrameYear   FrameKind = "year"
	FrameAll    FrameKind = "all"
	FrameCustom FrameKind = "custom"
)

// TimeFrame is a named or explicit date window. For the named kinds the
// actual interval is anchored to "now" when the frame is resolved, not when
// the frame was created; Start/End are only meaningful for FrameCustom.
type TimeFrame struct {
	Kind  FrameKind `bson:"kind"            json:"kind"`
	Start time.Time `bson:"start,omitempty" json:"start,omitempty"`
	End   time.Time `bson:"end,omitempty"   json:"end,omitempty"`
}

// Week returns the current-week frame. Convenience for the common default.
func Week() TimeFrame { return TimeFrame{Kind: FrameWeek} }

// Custom returns an explicit [start, end) frame.
func Custom(start, end time.Time) TimeFrame {
	return TimeFrame{Kind: FrameCustom, Start: start, End: end}
}

// Valid reports whether the frame has a known kind and, for custom frames,
// a usable interval.
func (f TimeFrame) Valid() bool {
	switch f.Kind {
	case FrameWeek, FrameMonth, FrameYear, FrameAll:
		return true
	case FrameCustom:
		return !f.Start.IsZero() && !f.End.IsZero() && f.Start.Before(f.End)
	}
	return false
}

// UnmarshalJSON accepts either the object form {"kind":...,"start":...} or a
// bare string ("week") as stored by older dashboard documents.
func (f *TimeFrame) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var kind string
		if err := json.Unmarshal(data, &kind); err != nil {
			return err
		}
		*f = TimeFrame{Kind: FrameKind(kind)}
		return nil
	}
	type frame TimeFrame // drop methods to avoid recursion
	var v frame
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = TimeFrame(v)
	return nil
}

// String returns the frame kind, with the explicit range for custom frames.
func (f TimeFrame) String() string {
	if f.Kind == FrameCustom {
		return fmt.Sprintf("custom[%s, %s)", f.Start.Format("2006-01-02"), f.End.Format("2006-01-02"))
	}
	return string(f.Kind)
}
