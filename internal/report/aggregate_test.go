package report

import (
	"math"
	"testing"
	"time"

	"github.com/oskarlind/tripkit/internal/budget"
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

func usd() Converter {
	return Converter{Home: "USD", Rates: map[string]float64{"EUR": 1.1}}
}

func TestSummarize_TotalsAndCategories(t *testing.T) {
	trip := model.Trip{
		ID:        "t1",
		StartDate: datePtr(t, "2026-05-01"),
		EndDate:   datePtr(t, "2026-05-10"),
	}
	expenses := []model.Expense{
		{Amount: 100, Currency: "USD", Category: "food", SpentOn: mustDate(t, "2026-05-01")},
		{Amount: 50, Currency: "EUR", Category: "food", SpentOn: mustDate(t, "2026-05-02")},
		{Amount: 80, Currency: "THB", Category: "", SpentOn: mustDate(t, "2026-05-02")},
	}

	now := mustDate(t, "2026-05-03")
	stats := Summarize(trip, nil, expenses, usd(), now)

	if math.Abs(stats.Total-235) > 1e-9 { // 100 + 55 + 80
		t.Fatalf("Total = %.2f, want 235", stats.Total)
	}
	if math.Abs(stats.ByCategory["food"]-155) > 1e-9 {
		t.Fatalf("food = %.2f, want 155", stats.ByCategory["food"])
	}
	if stats.ByCategory["misc"] != 80 {
		t.Fatalf("uncategorized spend = %.2f, want 80 in misc", stats.ByCategory["misc"])
	}
	if stats.Unconverted != 1 {
		t.Fatalf("Unconverted = %d, want 1 (THB has no rate)", stats.Unconverted)
	}
	if stats.DaysElapsed != 3 {
		t.Fatalf("DaysElapsed = %d, want 3", stats.DaysElapsed)
	}
	if stats.DaysRemaining != 8 {
		t.Fatalf("DaysRemaining = %d, want 8", stats.DaysRemaining)
	}
	wantBurn := 235.0 / 3
	if math.Abs(stats.DailyBurnRate-wantBurn) > 1e-9 {
		t.Fatalf("DailyBurnRate = %.2f, want %.2f", stats.DailyBurnRate, wantBurn)
	}
	if math.Abs(stats.ProjectedTotal-wantBurn*10) > 1e-9 {
		t.Fatalf("ProjectedTotal = %.2f, want %.2f", stats.ProjectedTotal, wantBurn*10)
	}
}

func TestSummarize_BudgetRelativeFields(t *testing.T) {
	trip := model.Trip{ID: "t1"}
	b := &budget.TripBudget{Total: 1000, Thresholds: budget.Thresholds{Warn: 80, Stop: 100}}
	expenses := []model.Expense{{Amount: 850, Currency: "USD", SpentOn: mustDate(t, "2026-05-01")}}

	stats := Summarize(trip, b, expenses, usd(), mustDate(t, "2026-05-02"))
	if math.Abs(stats.BudgetUsedPct-85) > 1e-9 {
		t.Fatalf("BudgetUsedPct = %.2f, want 85", stats.BudgetUsedPct)
	}
	if math.Abs(stats.Remaining-150) > 1e-9 {
		t.Fatalf("Remaining = %.2f, want 150", stats.Remaining)
	}
}

func TestAlertFor_Thresholds(t *testing.T) {
	b := &budget.TripBudget{Total: 1000, Thresholds: budget.Thresholds{Warn: 80, Stop: 100}}

	cases := []struct {
		used float64
		want Alert
	}{
		{0, AlertOK},
		{79.9, AlertOK},
		{80, AlertWarn},
		{99, AlertWarn},
		{100, AlertStop},
		{140, AlertStop},
	}
	for _, c := range cases {
		stats := model.SpendStats{BudgetUsedPct: c.used}
		if got := AlertFor(b, stats); got != c.want {
			t.Fatalf("AlertFor(%.1f%%) = %v, want %v", c.used, got, c.want)
		}
	}

	if got := AlertFor(nil, model.SpendStats{BudgetUsedPct: 500}); got != AlertOK {
		t.Fatalf("AlertFor without budget = %v, want ok", got)
	}
}

func TestSummarize_TripNotStartedHasNoBurn(t *testing.T) {
	trip := model.Trip{
		StartDate: datePtr(t, "2026-08-01"),
		EndDate:   datePtr(t, "2026-08-10"),
	}
	expenses := []model.Expense{{Amount: 300, Currency: "USD", SpentOn: mustDate(t, "2026-07-20")}}

	stats := Summarize(trip, nil, expenses, usd(), mustDate(t, "2026-07-21"))
	if stats.DaysElapsed != 0 {
		t.Fatalf("DaysElapsed = %d, want 0 before start", stats.DaysElapsed)
	}
	if stats.DailyBurnRate != 0 {
		t.Fatalf("DailyBurnRate = %.2f, want 0", stats.DailyBurnRate)
	}
	if stats.ProjectedTotal != stats.Total {
		t.Fatalf("ProjectedTotal = %.2f, want total passthrough", stats.ProjectedTotal)
	}
}

func TestByDay_GapFillAndOrder(t *testing.T) {
	expenses := []model.Expense{
		{Amount: 10, SpentOn: mustDate(t, "2026-05-01")},
		{Amount: 20, SpentOn: mustDate(t, "2026-05-01")},
		{Amount: 5, SpentOn: mustDate(t, "2026-05-03")},
		{Amount: 99, SpentOn: mustDate(t, "2026-04-01")}, // outside window
	}

	days := ByDay(expenses, usd(), mustDate(t, "2026-05-01"), mustDate(t, "2026-05-04"))
	if len(days) != 4 {
		t.Fatalf("len = %d, want 4 (gaps filled)", len(days))
	}
	if !days[0].Date.Equal(mustDate(t, "2026-05-04")) {
		t.Fatalf("days[0] = %v, want most recent first", days[0].Date)
	}
	if days[3].Amount != 30 || days[3].Expenses != 2 {
		t.Fatalf("May 1 bucket = %+v, want 30 across 2 expenses", days[3])
	}
	if days[1].Amount != 5 {
		t.Fatalf("May 3 bucket = %+v, want 5", days[1])
	}
	if days[2].Amount != 0 {
		t.Fatalf("gap day = %+v, want zero", days[2])
	}
}
