// Package testutil provides fixtures shared by store and handler tests.
// Store and handler tests run against the in-memory kv port, so no live
// MongoDB is needed.
package testutil

import (
	"testing"
	"time"

	"github.com/dalemusser/stridedash/internal/domain/models"
)

// Anchor is the fixed "now" tests resolve time frames against:
// a Wednesday, so the surrounding week/month/year windows are unambiguous.
var Anchor = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

// MustParseTime parses a YYYY-MM-DD date in UTC, failing the test on error.
func MustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return ts
}

// Activity returns a record with the given identity and start date and
// round numbers for the summed fields, so expected totals stay readable.
func Activity(providerID int64, typ string, start time.Time) models.ActivityRecord {
	return models.ActivityRecord{
		ProviderID:  providerID,
		Type:        typ,
		Name:        typ + " session",
		Distance:    10000,
		MovingTime:  3600,
		ElapsedTime: 3900,
		Elevation:   100,
		StartDate:   start,
	}
}
