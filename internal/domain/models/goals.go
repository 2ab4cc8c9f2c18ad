// internal/domain/models/goals.go
package models

import "encoding/json"

// GoalTargets maps a metric name (distance, count, elevation, time) to its
// yearly target. Absence of a metric means "no goal", which is distinct from
// a zero target.
type GoalTargets map[string]float64

// YearlyGoals is the persisted per-user yearly goal document. Activity type
// names are open-ended ("cycling", "running", "swimming", anything the
// provider reports); Combined holds targets for user-defined groups of types
// and always exists, even when empty.
type YearlyGoals struct {
	Activities map[string]GoalTargets `json:"activities"`
	Visibility map[string]bool        `json:"visibility"`
	Combined   map[string]GoalTargets `json:"combined"`
}

// EmptyYearlyGoals returns a goals document with all maps allocated.
func EmptyYearlyGoals() YearlyGoals {
	return YearlyGoals{
		Activities: make(map[string]GoalTargets),
		Visibility: make(map[string]bool),
		Combined:   make(map[string]GoalTargets),
	}
}

// legacyGoalKeys maps the retired fixed-category keys to their open
// activity-type names.
var legacyGoalKeys = map[string]string{
	"rides": "cycling",
	"runs":  "running",
	"swims": "swimming",
}

// IsLegacyGoalsDocument reports whether raw is the retired fixed-category
// goals shape: any of rides/runs/swims at the top level or inside visibility.
func IsLegacyGoalsDocument(raw map[string]json.RawMessage) bool {
	for legacy := range legacyGoalKeys {
		if _, ok := raw[legacy]; ok {
			return true
		}
	}
	if v, ok := raw["visibility"]; ok {
		var vis map[string]json.RawMessage
		if err := json.Unmarshal(v, &vis); err == nil {
			for legacy := range legacyGoalKeys {
				if _, ok := vis[legacy]; ok {
					return true
				}
			}
		}
	}
	return false
}

// MigrateLegacyGoals converts a legacy document into the current shape.
// Only categories present in the legacy document appear in the result;
// missing ones stay absent rather than being zero-filled.
func MigrateLegacyGoals(raw map[string]json.RawMessage) YearlyGoals {
	goals := EmptyYearlyGoals()

	for legacy, current := range legacyGoalKeys {
		v, ok := raw[legacy]
		if !ok {
			continue
		}
		var targets GoalTargets
		if err := json.Unmarshal(v, &targets); err != nil || targets == nil {
			continue
		}
		goals.Activities[current] = targets
	}

	if v, ok := raw["visibility"]; ok {
		var vis map[string]bool
		if err := json.Unmarshal(v, &vis); err == nil {
			for legacy, current := range legacyGoalKeys {
				if visible, ok := vis[legacy]; ok {
					goals.Visibility[current] = visible
				}
			}
		}
	}

	return goals
}
