// internal/app/store/dashboard/dashboardstore.go
package dashboardstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	kvstore "github.com/dalemusser/stridedash/internal/app/store/kv"
	"github.com/dalemusser/stridedash/internal/domain/models"
	"github.com/google/uuid"
)

// DocumentKey is the logical key the dashboard document is stored under.
const DocumentKey = "dashboard_config"

var (
	// ErrNotFound is returned when a card id is not in the dashboard.
	ErrNotFound = errors.New("card not found")
	// ErrIDConflict is returned when card id generation collides twice in a
	// row. With uuid ids this means the document is corrupt, not unlucky.
	ErrIDConflict = errors.New("could not generate a unique card id")
)

// Store persists per-user dashboard documents through the kv port. Every
// operation is a whole-document read-modify-write; there is no partial
// update and no cross-call transaction.
type Store struct {
	kv    kvstore.Store
	now   func() time.Time
	newID func() string
}

// New creates a dashboard store on top of the given kv port.
func New(kv kvstore.Store) *Store {
	return &Store{
		kv:    kv,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Get returns the user's dashboard document. Absence and malformed JSON both
// yield a fresh default document rather than an error; only transport
// failures from the kv port are surfaced. Documents written before the
// preferences/layout fields existed are backfilled with defaults.
func (s *Store) Get(ctx context.Context, userID string) (models.DashboardConfig, error) {
	data, ok, err := s.kv.Get(ctx, userID, DocumentKey)
	if err != nil {
		return models.DashboardConfig{}, fmt.Errorf("load dashboard config: %w", err)
	}
	if !ok {
		return models.DefaultDashboard(), nil
	}

	var cfg models.DashboardConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		// Unreadable documents are treated the same as absent ones.
		return models.DefaultDashboard(), nil
	}

	if cfg.Version == 0 {
		cfg.Version = models.DashboardVersion
	}
	if cfg.Layout == "" {
		cfg.Layout = "grid"
	}
	defaults := models.DefaultPreferences()
	if cfg.Preferences.DefaultCardSize == "" {
		cfg.Preferences.DefaultCardSize = defaults.DefaultCardSize
	}
	if cfg.Preferences.DefaultTimeFrame == "" {
		cfg.Preferences.DefaultTimeFrame = defaults.DefaultTimeFrame
	}
	return cfg, nil
}

// Save persists the full document. Callers are responsible for the document
// invariants; Save only guarantees a successful encode.
func (s *Store) Save(ctx context.Context, userID string, cfg models.DashboardConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode dashboard config: %w", err)
	}
	if err := s.kv.Set(ctx, userID, DocumentKey, string(data)); err != nil {
		return fmt.Errorf("save dashboard config: %w", err)
	}
	return nil
}

// CardInput holds the fields for creating a new card. ID, position, and
// timestamps are assigned by AddCard.
type CardInput struct {
	Type          string
	ActivityTypes []string
	TimeFrame     models.TimeFrame
	Metric        models.Metric
	Goal          *float64
	Title         string
	Visible       bool
}

// AddCard creates a card with a fresh id, a position one past the current
// maximum (1 on an empty dashboard), and created/updated timestamps, then
// persists the document. Id generation retries exactly once on collision.
func (s *Store) AddCard(ctx context.Context, userID string, input CardInput) (models.CardConfig, error) {
	cfg, err := s.Get(ctx, userID)
	if err != nil {
		return models.CardConfig{}, err
	}

	id := s.newID()
	if _, taken := cfg.Cards.Get(id); taken {
		id = s.newID()
		if _, taken := cfg.Cards.Get(id); taken {
			return models.CardConfig{}, ErrIDConflict
		}
	}

	now := s.now()
	card := models.CardConfig{
		ID:            id,
		Type:          input.Type,
		ActivityTypes: input.ActivityTypes,
		TimeFrame:     input.TimeFrame,
		Metric:        input.Metric,
		Goal:          input.Goal,
		Title:         input.Title,
		Visible:       input.Visible,
		Position:      cfg.Cards.MaxPosition() + 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	cfg.Cards.Set(card)

	if err := s.Save(ctx, userID, cfg); err != nil {
		return models.CardConfig{}, err
	}
	return card, nil
}

// CardUpdate holds the partial updates for a card. Nil fields are left
// untouched; ClearGoal removes the goal entirely (distinct from setting 0).
type CardUpdate struct {
	Type          *string
	ActivityTypes []string
	TimeFrame     *models.TimeFrame
	Metric        *models.Metric
	Goal          *float64
	ClearGoal     bool
	Title         *string
	Visible       *bool
	Position      *int
}

// UpdateCard merges updates over an existing card, refreshes UpdatedAt, and
// persists. The card's id and CreatedAt are never changed. Returns
// ErrNotFound when no card has the given id: silently dropping an update
// could mask a lost edit.
func (s *Store) UpdateCard(ctx context.Context, userID, id string, update CardUpdate) (models.CardConfig, error) {
	cfg, err := s.Get(ctx, userID)
	if err != nil {
		return models.CardConfig{}, err
	}

	card, ok := cfg.Cards.Get(id)
	if !ok {
		return models.CardConfig{}, ErrNotFound
	}

	if update.Type != nil {
		card.Type = *update.Type
	}
	if update.ActivityTypes != nil {
		card.ActivityTypes = update.ActivityTypes
	}
	if update.TimeFrame != nil {
		card.TimeFrame = *update.TimeFrame
	}
	if update.Metric != nil {
		card.Metric = *update.Metric
	}
	if update.ClearGoal {
		card.Goal = nil
	} else if update.Goal != nil {
		card.Goal = update.Goal
	}
	if update.Title != nil {
		card.Title = *update.Title
	}
	if update.Visible != nil {
		card.Visible = *update.Visible
	}
	if update.Position != nil {
		card.Position = *update.Position
	}
	card.UpdatedAt = s.now()
	cfg.Cards.Set(card)

	if err := s.Save(ctx, userID, cfg); err != nil {
		return models.CardConfig{}, err
	}
	return card, nil
}

// DeleteCard removes a card. Deleting an id that is already gone is a
// silent no-op.
func (s *Store) DeleteCard(ctx context.Context, userID, id string) error {
	cfg, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !cfg.Cards.Delete(id) {
		return nil
	}
	return s.Save(ctx, userID, cfg)
}

// ListVisibleCards returns the visible cards in display order: ascending by
// position, with insertion order breaking ties. Duplicate positions can only
// come from direct document edits; the stable sort keeps them harmless.
func (s *Store) ListVisibleCards(ctx context.Context, userID string) ([]models.CardConfig, error) {
	cfg, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards := make([]models.CardConfig, 0, cfg.Cards.Len())
	for _, c := range cfg.Cards.Cards() {
		if c.Visible {
			cards = append(cards, c)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Position < cards[j].Position
	})
	return cards, nil
}

// Clear deletes the persisted document; the next Get returns the default.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.kv.Delete(ctx, userID, DocumentKey)
}
