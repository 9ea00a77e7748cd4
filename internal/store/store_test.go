package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tripkit.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return &d
}

func TestSaveAndGetTrip_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	total := 2400.0
	trip := model.Trip{
		ID:           "t1",
		Name:         "Iceland loop",
		LocationID:   "loc-7",
		Destination:  &model.Destination{Name: "Reykjavik", Country: "Iceland"},
		StartDate:    datePtr(t, "2026-07-01"),
		EndDate:      datePtr(t, "2026-07-10"),
		BudgetMethod: model.BudgetMethodTotal,
		TravelStyle:  model.TravelStyleMidRange,
		TotalBudget:  &total,
		Categories:   map[string]float64{"food": 600, "accommodation": 1200},
		Notes:        "ring road",
		Participants: []string{"ada", "linus"},
		ManualStatus: "",
	}
	if err := s.SaveTrip(trip); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	got, err := s.GetTrip("t1")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.Name != trip.Name || got.LocationID != trip.LocationID {
		t.Fatalf("loaded trip = %+v", got)
	}
	if got.Destination == nil || got.Destination.Country != "Iceland" {
		t.Fatalf("destination = %+v", got.Destination)
	}
	if got.StartDate == nil || !got.StartDate.Equal(*trip.StartDate) {
		t.Fatalf("start date = %v", got.StartDate)
	}
	if got.TotalBudget == nil || *got.TotalBudget != 2400 {
		t.Fatalf("total budget = %v", got.TotalBudget)
	}
	if got.Categories["food"] != 600 || got.Categories["accommodation"] != 1200 {
		t.Fatalf("categories = %v", got.Categories)
	}
	if len(got.Participants) != 2 || got.Participants[1] != "linus" {
		t.Fatalf("participants = %v", got.Participants)
	}
}

func TestGetTrip_Missing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetTrip("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetTrip error = %v, want ErrNotFound", err)
	}
}

func TestListTrips_SortsByStartDate(t *testing.T) {
	s := openTestStore(t)

	for _, trip := range []model.Trip{
		{ID: "b", Name: "Beta", StartDate: datePtr(t, "2026-09-01")},
		{ID: "a", Name: "Alpha", StartDate: datePtr(t, "2026-03-01")},
		{ID: "c", Name: "Undated"},
	} {
		if err := s.SaveTrip(trip); err != nil {
			t.Fatalf("SaveTrip(%s): %v", trip.ID, err)
		}
	}

	trips, err := s.ListTrips()
	if err != nil {
		t.Fatalf("ListTrips: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("len = %d, want 3", len(trips))
	}
	if trips[0].ID != "a" || trips[1].ID != "b" || trips[2].ID != "c" {
		t.Fatalf("order = %s, %s, %s", trips[0].ID, trips[1].ID, trips[2].ID)
	}
}

func TestDeleteTrip_CascadesToOwnedRows(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveTrip(model.Trip{ID: "t1", Name: "Cascade"}); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}
	if err := s.SaveLeg(model.Leg{ID: "l1", TripID: "t1", Country: "France"}); err != nil {
		t.Fatalf("SaveLeg: %v", err)
	}
	if err := s.AddExpense(model.Expense{ID: "e1", TripID: "t1", Amount: 12.5, Category: "food"}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if err := s.SaveBudget("t1", budget.TripBudget{Currency: "USD", Style: budget.StyleBalanced, Total: 100}); err != nil {
		t.Fatalf("SaveBudget: %v", err)
	}

	if err := s.DeleteTrip("t1"); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}

	legs, err := s.LegsForTrip("t1")
	if err != nil {
		t.Fatalf("LegsForTrip: %v", err)
	}
	if len(legs) != 0 {
		t.Fatalf("legs survived cascade: %v", legs)
	}
	expenses, err := s.ExpensesForTrip("t1")
	if err != nil {
		t.Fatalf("ExpensesForTrip: %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("expenses survived cascade: %v", expenses)
	}
	if _, ok, err := s.GetBudget("t1"); err != nil || ok {
		t.Fatalf("budget survived cascade (ok=%v err=%v)", ok, err)
	}
}

func TestBudget_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveTrip(model.Trip{ID: "t1", Name: "X"}); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	b := budget.TripBudget{
		Currency:      "EUR",
		Style:         budget.StyleLuxury,
		AutoSuggested: true,
		Total:         3451,
		PerDay:        493,
		Categories: budget.Categories{
			Accommodation: 1400, Food: 700, Transport: 420, Activities: 560, Misc: 371,
		},
		Thresholds: budget.Thresholds{Warn: 80, Stop: 100},
	}
	if err := s.SaveBudget("t1", b); err != nil {
		t.Fatalf("SaveBudget: %v", err)
	}

	got, ok, err := s.GetBudget("t1")
	if err != nil || !ok {
		t.Fatalf("GetBudget ok=%v err=%v", ok, err)
	}
	if got != b {
		t.Fatalf("budget round trip: got %+v, want %+v", got, b)
	}
}

func TestExpensesForTrip_MostRecentFirst(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveTrip(model.Trip{ID: "t1", Name: "X"}); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	for _, e := range []model.Expense{
		{ID: "e1", TripID: "t1", Amount: 10, SpentOn: *datePtr(t, "2026-05-01")},
		{ID: "e2", TripID: "t1", Amount: 20, SpentOn: *datePtr(t, "2026-05-03")},
		{ID: "e3", TripID: "t1", Amount: 30, SpentOn: *datePtr(t, "2026-05-02")},
	} {
		if err := s.AddExpense(e); err != nil {
			t.Fatalf("AddExpense(%s): %v", e.ID, err)
		}
	}

	expenses, err := s.ExpensesForTrip("t1")
	if err != nil {
		t.Fatalf("ExpensesForTrip: %v", err)
	}
	if len(expenses) != 3 || expenses[0].ID != "e2" || expenses[2].ID != "e1" {
		t.Fatalf("order = %v", expenses)
	}
}

func TestTripCount(t *testing.T) {
	s := openTestStore(t)

	n, err := s.TripCount()
	if err != nil || n != 0 {
		t.Fatalf("TripCount = %d, %v, want 0", n, err)
	}
	if err := s.SaveTrip(model.Trip{ID: "t1", Name: "One"}); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}
	if err := s.SaveTrip(model.Trip{ID: "t2", Name: "Two"}); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}
	if n, err = s.TripCount(); err != nil || n != 2 {
		t.Fatalf("TripCount = %d, %v, want 2", n, err)
	}
}

func TestDeleteLeg(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveTrip(model.Trip{ID: "t1", Name: "X"}); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}
	if err := s.SaveLeg(model.Leg{ID: "l1", TripID: "t1", Country: "Spain"}); err != nil {
		t.Fatalf("SaveLeg: %v", err)
	}

	if err := s.DeleteLeg("l1"); err != nil {
		t.Fatalf("DeleteLeg: %v", err)
	}
	legs, err := s.LegsForTrip("t1")
	if err != nil || len(legs) != 0 {
		t.Fatalf("legs after delete = %v, %v", legs, err)
	}
	if err := s.DeleteLeg("l1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteLeg twice = %v, want ErrNotFound", err)
	}
}

func TestLocation_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveLocation(model.Location{ID: "loc-1", Name: "Lisbon", Country: "Portugal"}); err != nil {
		t.Fatalf("SaveLocation: %v", err)
	}
	got, err := s.GetLocation("loc-1")
	if err != nil {
		t.Fatalf("GetLocation: %v", err)
	}
	if got.Name != "Lisbon" || got.Country != "Portugal" {
		t.Fatalf("location = %+v", got)
	}
	if _, err := s.GetLocation("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetLocation missing = %v, want ErrNotFound", err)
	}
}

func TestImportTracker(t *testing.T) {
	s := openTestStore(t)

	if err := s.TrackFile("/exports/may.json", 123, 456); err != nil {
		t.Fatalf("TrackFile: %v", err)
	}
	tracked, err := s.TrackedFiles()
	if err != nil {
		t.Fatalf("TrackedFiles: %v", err)
	}
	fi, ok := tracked["/exports/may.json"]
	if !ok || fi.MtimeNs != 123 || fi.SizeBytes != 456 {
		t.Fatalf("tracked = %v", tracked)
	}
}
