package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	dashboardstore "github.com/dalemusser/stridedash/internal/app/store/dashboard"
	goalstore "github.com/dalemusser/stridedash/internal/app/store/goals"
	kvstore "github.com/dalemusser/stridedash/internal/app/store/kv"
	"github.com/dalemusser/stridedash/internal/domain/models"
	"github.com/dalemusser/stridedash/internal/testutil"
)

// fakeActivities serves a fixed record set for every user.
type fakeActivities struct {
	records []models.ActivityRecord
	err     error
}

func (f *fakeActivities) ListByUser(_ context.Context, _ string) ([]models.ActivityRecord, error) {
	return f.records, f.err
}

type testEnv struct {
	router http.Handler
	cards  *dashboardstore.Store
	goals  *goalstore.Store
}

func newTestEnv(records []models.ActivityRecord) *testEnv {
	kv := kvstore.NewMemory()
	cards := dashboardstore.New(kv)
	goals := goalstore.New(kv)
	h := NewHandler(cards, goals, &fakeActivities{records: records}, zap.NewNop())
	return &testEnv{router: Routes(h), cards: cards, goals: goals}
}

func (e *testEnv) view(t *testing.T, userID string) viewResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?user_id="+userID, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp viewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func ride(providerID int64, distance float64, start time.Time) models.ActivityRecord {
	return models.ActivityRecord{
		ProviderID: providerID,
		UserID:     "user-1",
		Type:       "Ride",
		Distance:   distance,
		MovingTime: 3600,
		StartDate:  start,
	}
}

func TestViewHandler_AggregatesPerCard(t *testing.T) {
	march := testutil.MustParseTime(t, "2025-03-10")
	env := newTestEnv([]models.ActivityRecord{
		testutil.Activity(1, "Ride", march),
		testutil.Activity(2, "Ride", march.AddDate(0, 0, 1)),
		testutil.Activity(3, "Run", march),
	})

	if _, err := env.cards.AddCard(context.Background(), "user-1", dashboardstore.CardInput{
		Type:          "summary",
		ActivityTypes: []string{"Ride"},
		TimeFrame:     models.TimeFrame{Kind: models.FrameAll},
		Metric:        models.MetricDistance,
		Title:         "All Rides",
		Visible:       true,
	}); err != nil {
		t.Fatal(err)
	}

	resp := env.view(t, "user-1")
	if len(resp.Cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(resp.Cards))
	}

	card := resp.Cards[0]
	if card.Totals.Count != 2 || card.Totals.Distance != 20000 {
		t.Errorf("Totals = %+v, want 2 rides totaling 20000", card.Totals)
	}
	if card.Label != "all time" {
		t.Errorf("Label = %q, want all time", card.Label)
	}
	if card.Progress != nil {
		t.Errorf("Progress = %+v, want nil without a goal", card.Progress)
	}
}

func TestViewHandler_CustomWindowFiltersRecords(t *testing.T) {
	env := newTestEnv([]models.ActivityRecord{
		ride(1, 30000, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)),
		ride(2, 99999, time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)),
	})

	if _, err := env.cards.AddCard(context.Background(), "user-1", dashboardstore.CardInput{
		Type:          "summary",
		ActivityTypes: []string{"Ride"},
		TimeFrame: models.Custom(
			time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		),
		Metric:  models.MetricDistance,
		Title:   "March Rides",
		Visible: true,
	}); err != nil {
		t.Fatal(err)
	}

	resp := env.view(t, "user-1")
	card := resp.Cards[0]
	if card.Totals.Count != 1 || card.Totals.Distance != 30000 {
		t.Errorf("Totals = %+v, want only the March ride", card.Totals)
	}
	if card.Label != "Mar 1, 2025 – Mar 31, 2025" {
		t.Errorf("Label = %q", card.Label)
	}
}

func TestViewHandler_InlineGoalProgress(t *testing.T) {
	march := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	env := newTestEnv([]models.ActivityRecord{ride(1, 25000, march)})

	goal := 100000.0
	if _, err := env.cards.AddCard(context.Background(), "user-1", dashboardstore.CardInput{
		Type:          "summary",
		ActivityTypes: []string{"Ride"},
		TimeFrame:     models.TimeFrame{Kind: models.FrameAll},
		Metric:        models.MetricDistance,
		Goal:          &goal,
		Title:         "Ride 100k",
		Visible:       true,
	}); err != nil {
		t.Fatal(err)
	}

	card := env.view(t, "user-1").Cards[0]
	if card.Progress == nil {
		t.Fatal("Progress = nil, want value")
	}
	if card.Progress.Ratio != 0.25 {
		t.Errorf("Ratio = %v, want 0.25", card.Progress.Ratio)
	}
	if card.Progress.Projected != nil {
		t.Errorf("Projected = %v for all-time card, want nil", *card.Progress.Projected)
	}
}

func TestViewHandler_ZeroTargetGoal(t *testing.T) {
	env := newTestEnv([]models.ActivityRecord{
		ride(1, 25000, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)),
	})

	goal := 0.0
	if _, err := env.cards.AddCard(context.Background(), "user-1", dashboardstore.CardInput{
		Type:          "summary",
		ActivityTypes: []string{"Ride"},
		TimeFrame:     models.TimeFrame{Kind: models.FrameAll},
		Metric:        models.MetricDistance,
		Goal:          &goal,
		Title:         "Placeholder",
		Visible:       true,
	}); err != nil {
		t.Fatal(err)
	}

	card := env.view(t, "user-1").Cards[0]
	if card.Progress == nil {
		t.Fatal("Progress = nil, want value for explicit zero goal")
	}
	if card.Progress.Ratio != 0 {
		t.Errorf("Ratio = %v for zero target, want 0", card.Progress.Ratio)
	}
}

func TestViewHandler_YearCardFallsBackToYearlyGoal(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	yearly := models.EmptyYearlyGoals()
	yearly.Activities["Ride"] = models.GoalTargets{"distance": 500000}
	if err := env.goals.Save(ctx, "user-1", yearly); err != nil {
		t.Fatal(err)
	}

	if _, err := env.cards.AddCard(ctx, "user-1", dashboardstore.CardInput{
		Type:          "summary",
		ActivityTypes: []string{"Ride"},
		TimeFrame:     models.TimeFrame{Kind: models.FrameYear},
		Metric:        models.MetricDistance,
		Title:         "Yearly Rides",
		Visible:       true,
	}); err != nil {
		t.Fatal(err)
	}

	card := env.view(t, "user-1").Cards[0]
	if card.Progress == nil {
		t.Fatal("Progress = nil, want yearly goal fallback")
	}
	if card.Progress.Target != 500000 {
		t.Errorf("Target = %v, want 500000", card.Progress.Target)
	}
}

func TestViewHandler_MultiTypeCardSkipsYearlyFallback(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	yearly := models.EmptyYearlyGoals()
	yearly.Activities["Ride"] = models.GoalTargets{"distance": 500000}
	if err := env.goals.Save(ctx, "user-1", yearly); err != nil {
		t.Fatal(err)
	}

	if _, err := env.cards.AddCard(ctx, "user-1", dashboardstore.CardInput{
		Type:          "summary",
		ActivityTypes: []string{"Ride", "Run"},
		TimeFrame:     models.TimeFrame{Kind: models.FrameYear},
		Metric:        models.MetricDistance,
		Title:         "Cardio",
		Visible:       true,
	}); err != nil {
		t.Fatal(err)
	}

	card := env.view(t, "user-1").Cards[0]
	if card.Progress != nil {
		t.Errorf("Progress = %+v, want nil: fallback only applies to single-type cards", card.Progress)
	}
}

func TestViewHandler_MissingUserID(t *testing.T) {
	env := newTestEnv(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
