// internal/app/store/goals/goalstore.go
package goalstore

import (
	"context"
	"encoding/json"
	"fmt"

	kvstore "github.com/dalemusser/stridedash/internal/app/store/kv"
	"github.com/dalemusser/stridedash/internal/domain/models"
)

// DocumentKey is the logical key the yearly goals document is stored under.
const DocumentKey = "yearly_goals"

// Store persists per-user yearly goal documents through the kv port.
type Store struct {
	kv kvstore.Store
}

// New creates a goals store on top of the given kv port.
func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Get returns the user's yearly goals. A document in the retired
// fixed-category shape (rides/runs/swims) is migrated to the open
// activity-type shape and written back before returning, so migration runs
// at most once per document. Absence and malformed JSON yield an empty
// goals document; only kv transport failures are surfaced.
func (s *Store) Get(ctx context.Context, userID string) (models.YearlyGoals, error) {
	data, ok, err := s.kv.Get(ctx, userID, DocumentKey)
	if err != nil {
		return models.YearlyGoals{}, fmt.Errorf("load yearly goals: %w", err)
	}
	if !ok {
		return models.EmptyYearlyGoals(), nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return models.EmptyYearlyGoals(), nil
	}

	if models.IsLegacyGoalsDocument(raw) {
		goals := models.MigrateLegacyGoals(raw)
		// Eager write-back: downstream code only ever sees the current
		// shape, and detection never fires again for this document.
		if err := s.Save(ctx, userID, goals); err != nil {
			return models.YearlyGoals{}, err
		}
		return goals, nil
	}

	var goals models.YearlyGoals
	if err := json.Unmarshal([]byte(data), &goals); err != nil {
		return models.EmptyYearlyGoals(), nil
	}
	if goals.Activities == nil {
		goals.Activities = make(map[string]models.GoalTargets)
	}
	if goals.Visibility == nil {
		goals.Visibility = make(map[string]bool)
	}
	if goals.Combined == nil {
		goals.Combined = make(map[string]models.GoalTargets)
	}
	return goals, nil
}

// Save persists the full goals document verbatim.
func (s *Store) Save(ctx context.Context, userID string, goals models.YearlyGoals) error {
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encode yearly goals: %w", err)
	}
	if err := s.kv.Set(ctx, userID, DocumentKey, string(data)); err != nil {
		return fmt.Errorf("save yearly goals: %w", err)
	}
	return nil
}

// Clear deletes the persisted document.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.kv.Delete(ctx, userID, DocumentKey)
}
