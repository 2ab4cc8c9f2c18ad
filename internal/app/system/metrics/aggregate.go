// internal/app/system/metrics/aggregate.go

// Package metrics is the activity aggregation and goal-progress engine.
// Everything here is a pure function over already-fetched activity records;
// fetching and persistence live elsewhere.
package metrics

import "github.com/dalemusser/stridedash/internal/domain/models"

// Aggregate sums the metrics of every record whose type is in types.
// Non-matching records are ignored; an empty slice or empty type set yields
// the zero totals. Each field of the result is the exact sum of that field
// across the matching subset.
func Aggregate(activities []models.ActivityRecord, types []string) models.ActivityTotals {
	match := make(map[string]bool, len(types))
	for _, t := range types {
		match[t] = true
	}

	var totals models.ActivityTotals
	for _, a := range activities {
		if match[a.Type] {
			totals.Add(a)
		}
	}
	return totals
}

// AggregateByTypes computes one independent aggregation per requested type
// label. Matching is exact per label: a record whose type equals none of the
// labels contributes to none of the groups, and a record contributes to every
// group whose label equals its type. Groups are never merged, so overlapping
// label sets from a caller count records once per matching group.
func AggregateByTypes(activities []models.ActivityRecord, types []string) map[string]models.ActivityTotals {
	out := make(map[string]models.ActivityTotals, len(types))
	for _, t := range types {
		out[t] = Aggregate(activities, []string{t})
	}
	return out
}
