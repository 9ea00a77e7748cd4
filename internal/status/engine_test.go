package status

import (
	"testing"
	"time"

	"github.com/oskarlind/tripkit/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d := mustDate(t, s)
	return &d
}

func floatPtr(v float64) *float64 { return &v }

// fullTrip returns a trip with every scored field populated.
func fullTrip(t *testing.T) model.Trip {
	t.Helper()
	return model.Trip{
		Name:         "Honeymoon",
		Destination:  &model.Destination{Name: "Kyoto", Country: "Japan"},
		StartDate:    datePtr(t, "2026-10-01"),
		EndDate:      datePtr(t, "2026-10-14"),
		BudgetMethod: model.BudgetMethodTotal,
		TotalBudget:  floatPtr(4000),
		TravelStyle:  model.TravelStyleMidRange,
		Notes:        "book ryokan early",
	}
}

func TestCompletion_NameOnly(t *testing.T) {
	trip := model.Trip{Name: "Somewhere"}
	if got := Completion(trip); got != 15 {
		t.Fatalf("Completion = %d, want 15", got)
	}
}

func TestCompletion_FullyPlanned(t *testing.T) {
	if got := Completion(fullTrip(t)); got != 100 {
		t.Fatalf("Completion = %d, want 100", got)
	}
}

func TestCompletion_SingleDateRoundsHalfAway(t *testing.T) {
	trip := model.Trip{
		Name:      "One-way",
		StartDate: datePtr(t, "2026-03-01"),
	}
	// 15 (name) + 12.5 (one date) = 27.5, rounds away from zero to 28.
	if got := Completion(trip); got != 28 {
		t.Fatalf("Completion = %d, want 28", got)
	}
}

func TestCompletion_MethodChosenWithoutAmountScoresPartial(t *testing.T) {
	trip := model.Trip{Name: "X", BudgetMethod: model.BudgetMethodDates}
	if got := Completion(trip); got != 25 {
		t.Fatalf("Completion = %d, want 25 (15 name + 10 partial budget)", got)
	}

	trip.DailyBudget = floatPtr(120)
	if got := Completion(trip); got != 35 {
		t.Fatalf("Completion = %d, want 35 (15 name + 20 full budget)", got)
	}
}

func TestCompletion_NoBudgetMethodScoresZero(t *testing.T) {
	trip := model.Trip{Name: "X", BudgetMethod: model.BudgetMethodNone, TotalBudget: floatPtr(500)}
	if got := Completion(trip); got != 15 {
		t.Fatalf("Completion = %d, want 15 (no-budget method earns nothing)", got)
	}
}

func TestCompletion_PlaceholderLocationDoesNotCount(t *testing.T) {
	trip := model.Trip{Name: "X", LocationID: model.LocationPlaceholder}
	if got := Completion(trip); got != 15 {
		t.Fatalf("Completion = %d, want 15 (placeholder is not a destination)", got)
	}

	trip.LocationID = "loc-42"
	if got := Completion(trip); got != 40 {
		t.Fatalf("Completion = %d, want 40", got)
	}
}

func TestDerive_PastEndDateAlwaysCompleted(t *testing.T) {
	now := mustDate(t, "2026-06-10")
	trip := model.Trip{
		Name:    "Quick hop",
		EndDate: datePtr(t, "2026-06-09"),
	}
	// Sparse planning, but the end date has passed.
	if got := Derive(trip, now); got != model.StatusCompleted {
		t.Fatalf("Derive = %q, want completed", got)
	}

	// Any non-cancelled manual status does not stop date rules.
	trip.ManualStatus = model.StatusPlanning
	if got := Derive(trip, now); got != model.StatusCompleted {
		t.Fatalf("Derive with manual planning = %q, want completed", got)
	}
}

func TestDerive_CancellationDominatesEverything(t *testing.T) {
	now := mustDate(t, "2026-06-10")
	trip := fullTrip(t)
	trip.StartDate = datePtr(t, "2026-06-05")
	trip.EndDate = datePtr(t, "2026-06-15")
	trip.ManualStatus = model.StatusCancelled

	if got := Derive(trip, now); got != model.StatusCancelled {
		t.Fatalf("Derive = %q, want cancelled despite active dates", got)
	}

	trip.EndDate = datePtr(t, "2026-06-01")
	if got := Derive(trip, now); got != model.StatusCancelled {
		t.Fatalf("Derive = %q, want cancelled despite past end date", got)
	}
}

func TestDerive_ActiveWithinInclusiveRange(t *testing.T) {
	trip := fullTrip(t)
	trip.StartDate = datePtr(t, "2026-06-05")
	trip.EndDate = datePtr(t, "2026-06-15")

	for _, day := range []string{"2026-06-05", "2026-06-10", "2026-06-15"} {
		if got := Derive(trip, mustDate(t, day)); got != model.StatusActive {
			t.Fatalf("Derive at %s = %q, want active", day, got)
		}
	}
}

func TestDerive_CompletionTiers(t *testing.T) {
	now := mustDate(t, "2026-01-01")

	draft := model.Trip{Name: "Just a name"} // 15
	if got := Derive(draft, now); got != model.StatusDraft {
		t.Fatalf("Derive = %q, want draft", got)
	}

	planning := model.Trip{ // 15 + 25 = 40, lower planning bound
		Name:        "Named",
		Destination: &model.Destination{Name: "Lisbon"},
	}
	if got := Derive(planning, now); got != model.StatusPlanning {
		t.Fatalf("Derive = %q, want planning", got)
	}
}

func TestDerive_ReadyNeedsFutureStart(t *testing.T) {
	now := mustDate(t, "2026-01-01")

	trip := fullTrip(t) // 100, starts 2026-10-01
	if got := Derive(trip, now); got != model.StatusReady {
		t.Fatalf("Derive = %q, want ready", got)
	}

	// Fully planned but no dates at all: falls back to planning.
	trip.StartDate = nil
	trip.EndDate = nil
	if got := Derive(trip, now); got != model.StatusPlanning {
		t.Fatalf("Derive without dates = %q, want planning", got)
	}
}

func TestDerive_Idempotent(t *testing.T) {
	now := mustDate(t, "2026-06-10")
	trip := fullTrip(t)

	first := Derive(trip, now)
	second := Derive(trip, now)
	if first != second {
		t.Fatalf("Derive not idempotent: %q then %q", first, second)
	}
}

func TestConfigFor_KnownStatuses(t *testing.T) {
	for _, s := range []model.Status{
		model.StatusDraft, model.StatusPlanning, model.StatusReady,
		model.StatusActive, model.StatusCompleted, model.StatusCancelled,
	} {
		cfg, err := ConfigFor(s)
		if err != nil {
			t.Fatalf("ConfigFor(%q) returned error: %v", s, err)
		}
		if cfg.Color == "" || cfg.Icon == "" || cfg.Label == "" {
			t.Fatalf("ConfigFor(%q) has empty fields: %+v", s, cfg)
		}
	}
}

func TestConfigFor_UnknownStatusFailsLoudly(t *testing.T) {
	if _, err := ConfigFor(model.Status("archived")); err == nil {
		t.Fatal("ConfigFor accepted an unknown status")
	}
}

func TestSuggestions_OrderAndOmission(t *testing.T) {
	trip := model.Trip{} // everything missing
	got := Suggestions(trip)
	want := []string{hintDestination, hintDates, hintBudget, hintStyle, hintNotes}
	if len(got) != len(want) {
		t.Fatalf("Suggestions len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Suggestions[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Satisfied fields drop out without disturbing order.
	full := fullTrip(t)
	if hints := Suggestions(full); len(hints) != 0 {
		t.Fatalf("Suggestions for full trip = %v, want none", hints)
	}

	full.Notes = ""
	full.TravelStyle = ""
	hints := Suggestions(full)
	if len(hints) != 2 || hints[0] != hintStyle || hints[1] != hintNotes {
		t.Fatalf("Suggestions = %v, want [style, notes]", hints)
	}
}

func TestSuggestions_BudgetHintWhenMethodSetWithoutAmounts(t *testing.T) {
	trip := fullTrip(t)
	trip.TotalBudget = nil
	trip.DailyBudget = nil

	hints := Suggestions(trip)
	if len(hints) != 1 || hints[0] != hintBudget {
		t.Fatalf("Suggestions = %v, want only the budget hint", hints)
	}
}
