package dashboardstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	kvstore "github.com/dalemusser/stridedash/internal/app/store/kv"
	"github.com/dalemusser/stridedash/internal/domain/models"
	"github.com/dalemusser/stridedash/internal/testutil"
)

const testUser = "user-1"

// newTestStore returns a store with deterministic time and id generation.
func newTestStore() (*Store, *kvstore.Memory) {
	kv := kvstore.NewMemory()
	s := New(kv)
	s.now = func() time.Time { return testutil.Anchor }
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("card-%d", n)
	}
	return s, kv
}

func rideInput(title string) CardInput {
	return CardInput{
		Type:          "summary",
		ActivityTypes: []string{"Ride"},
		TimeFrame:     models.Week(),
		Metric:        models.MetricDistance,
		Title:         title,
		Visible:       true,
	}
}

func TestGet_DefaultOnAbsence(t *testing.T) {
	s, _ := newTestStore()

	cfg, err := s.Get(context.Background(), testUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(models.DefaultDashboard(), cfg, cmp.AllowUnexported(models.CardMap{})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_DefaultOnGarbage(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()

	if err := kv.Set(ctx, testUser, DocumentKey, "{not json"); err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Version != models.DashboardVersion || cfg.Cards.Len() != 0 {
		t.Errorf("config = %+v, want fresh default", cfg)
	}
}

func TestGet_BackfillsOlderDocuments(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()

	// A document written before layout and preferences existed.
	if err := kv.Set(ctx, testUser, DocumentKey, `{"cards":{}}`); err != nil {
		t.Fatal(err)
	}

	cfg, err := s.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Version != models.DashboardVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, models.DashboardVersion)
	}
	if cfg.Layout != "grid" {
		t.Errorf("Layout = %q, want grid", cfg.Layout)
	}
	if diff := cmp.Diff(models.DefaultPreferences(), cfg.Preferences); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestAddCard_AssignsIDPositionTimestamps(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	first, err := s.AddCard(ctx, testUser, rideInput("Weekly Rides"))
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if first.ID != "card-1" || first.Position != 1 {
		t.Errorf("first card = %q/pos %d, want card-1/pos 1", first.ID, first.Position)
	}
	if !first.CreatedAt.Equal(testutil.Anchor) || !first.UpdatedAt.Equal(testutil.Anchor) {
		t.Errorf("timestamps = %v/%v, want anchor", first.CreatedAt, first.UpdatedAt)
	}

	second, err := s.AddCard(ctx, testUser, rideInput("Monthly Rides"))
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if second.Position != 2 {
		t.Errorf("second card position = %d, want 2", second.Position)
	}

	// Both cards persisted.
	cfg, err := s.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Cards.Len() != 2 {
		t.Errorf("Cards.Len = %d, want 2", cfg.Cards.Len())
	}
}

func TestAddCard_IDCollisionRetriesOnce(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	// Every id the generator produces is already taken.
	s.newID = func() string { return "dup" }
	if _, err := s.AddCard(ctx, testUser, rideInput("A")); err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if _, err := s.AddCard(ctx, testUser, rideInput("B")); err != ErrIDConflict {
		t.Errorf("err = %v, want ErrIDConflict", err)
	}
}

func TestUpdateCard(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	card, err := s.AddCard(ctx, testUser, rideInput("Weekly Rides"))
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}

	later := testutil.Anchor.Add(time.Hour)
	s.now = func() time.Time { return later }

	title := "Renamed"
	goal := 100000.0
	visible := false
	got, err := s.UpdateCard(ctx, testUser, card.ID, CardUpdate{
		Title:   &title,
		Goal:    &goal,
		Visible: &visible,
	})
	if err != nil {
		t.Fatalf("UpdateCard: %v", err)
	}
	if got.Title != "Renamed" || got.Goal == nil || *got.Goal != 100000 || got.Visible {
		t.Errorf("card = %+v, want merged updates", got)
	}
	if got.Metric != models.MetricDistance {
		t.Errorf("Metric = %q, untouched field changed", got.Metric)
	}
	if !got.CreatedAt.Equal(testutil.Anchor) {
		t.Errorf("CreatedAt = %v, want unchanged", got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want refreshed", got.UpdatedAt)
	}
}

func TestUpdateCard_ClearGoal(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	input := rideInput("Weekly Rides")
	goal := 50000.0
	input.Goal = &goal
	card, err := s.AddCard(ctx, testUser, input)
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}

	got, err := s.UpdateCard(ctx, testUser, card.ID, CardUpdate{ClearGoal: true})
	if err != nil {
		t.Fatalf("UpdateCard: %v", err)
	}
	if got.Goal != nil {
		t.Errorf("Goal = %v, want nil after clear", *got.Goal)
	}
}

func TestUpdateCard_NotFound(t *testing.T) {
	s, _ := newTestStore()

	title := "x"
	if _, err := s.UpdateCard(context.Background(), testUser, "missing", CardUpdate{Title: &title}); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCard(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	card, err := s.AddCard(ctx, testUser, rideInput("Weekly Rides"))
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if err := s.DeleteCard(ctx, testUser, card.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}

	cfg, err := s.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Cards.Len() != 0 {
		t.Errorf("Cards.Len = %d, want 0", cfg.Cards.Len())
	}

	// Deleting again is a silent no-op.
	if err := s.DeleteCard(ctx, testUser, card.ID); err != nil {
		t.Errorf("second DeleteCard: %v", err)
	}
}

func TestListVisibleCards_OrdersByPositionThenInsertion(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	// Three cards: positions 1, 2, 3 by creation.
	a, _ := s.AddCard(ctx, testUser, rideInput("A"))
	b, _ := s.AddCard(ctx, testUser, rideInput("B"))
	c, _ := s.AddCard(ctx, testUser, rideInput("C"))

	// Reorder: a to position 3, b hidden, c to position 2.
	three, two := 3, 2
	hidden := false
	if _, err := s.UpdateCard(ctx, testUser, a.ID, CardUpdate{Position: &three}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateCard(ctx, testUser, b.ID, CardUpdate{Visible: &hidden}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateCard(ctx, testUser, c.ID, CardUpdate{Position: &two}); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListVisibleCards(ctx, testUser)
	if err != nil {
		t.Fatalf("ListVisibleCards: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != c.ID || got[1].ID != a.ID {
		t.Errorf("order = [%s, %s], want [%s, %s]", got[0].ID, got[1].ID, c.ID, a.ID)
	}
}

func TestListVisibleCards_DuplicatePositionsKeepInsertionOrder(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	a, _ := s.AddCard(ctx, testUser, rideInput("A"))
	b, _ := s.AddCard(ctx, testUser, rideInput("B"))

	one := 1
	if _, err := s.UpdateCard(ctx, testUser, b.ID, CardUpdate{Position: &one}); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListVisibleCards(ctx, testUser)
	if err != nil {
		t.Fatalf("ListVisibleCards: %v", err)
	}
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Errorf("order = [%s, %s], want insertion order on tie", got[0].ID, got[1].ID)
	}
}

func TestSaveGet_RoundTrip(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	cfg := models.DefaultDashboard()
	goal := 250000.0
	cfg.Cards.Set(models.CardConfig{
		ID:            "card-1",
		Type:          "summary",
		ActivityTypes: []string{"Run", "Ride"},
		TimeFrame:     models.Week(),
		Metric:        models.MetricDistance,
		Goal:          &goal,
		Title:         "Mixed Cardio",
		Visible:       true,
		Position:      1,
		CreatedAt:     testutil.Anchor,
		UpdatedAt:     testutil.Anchor,
	})

	if err := s.Save(ctx, testUser, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(cfg, got, cmp.AllowUnexported(models.CardMap{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	if _, err := s.AddCard(ctx, testUser, rideInput("A")); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx, testUser); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	cfg, err := s.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Cards.Len() != 0 {
		t.Errorf("Cards.Len = %d after Clear, want 0", cfg.Cards.Len())
	}
}
