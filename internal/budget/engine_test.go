package budget

import (
	"math"
	"testing"
	"time"

	"github.com/oskarlind/tripkit/internal/costdata"
	"github.com/oskarlind/tripkit/internal/model"
)

// stubSource serves fixed cost entries keyed by normalized country name.
type stubSource map[string]costdata.CountryCosts

func (s stubSource) Lookup(country string) (costdata.CountryCosts, bool) {
	cc, ok := s[costdata.NormalizeCountry(country)]
	return cc, ok
}

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

// franceSource mirrors the mid-range fixture used throughout these
// tests: 100 + 50 + 20 + 15 per day, misc 22, per-day total 207.
func franceSource() stubSource {
	return stubSource{
		"france": {
			Accommodation:  costdata.Tiers{MidRange: "100"},
			Food:           costdata.Tiers{MidRange: "50"},
			Transportation: costdata.Tiers{MidRange: "20"},
			Entertainment:  costdata.Tiers{MidRange: "15"},
		},
	}
}

func TestDailyCosts_DerivesMisc(t *testing.T) {
	costs := DailyCosts("France", StyleBalanced, franceSource())

	if costs.Accommodation != 100 || costs.Food != 50 || costs.Transport != 20 || costs.Activities != 15 {
		t.Fatalf("looked-up categories = %+v", costs)
	}
	if costs.Misc != 22 {
		t.Fatalf("Misc = %.0f, want round(0.12*185) = 22", costs.Misc)
	}
	if costs.Sum() != 207 {
		t.Fatalf("per-day total = %.0f, want 207", costs.Sum())
	}
}

func TestDailyCosts_UnknownCountryUsesDefaults(t *testing.T) {
	costs := DailyCosts("Atlantis", StyleBalanced, franceSource())
	if costs != defaultDailyCosts[StyleBalanced] {
		t.Fatalf("costs = %+v, want balanced defaults", costs)
	}

	// A nil source degrades the same way.
	costs = DailyCosts("France", StyleFrugal, nil)
	if costs != defaultDailyCosts[StyleFrugal] {
		t.Fatalf("nil-source costs = %+v, want frugal defaults", costs)
	}
}

func TestDailyCosts_MalformedValueFallsBackPerCategory(t *testing.T) {
	src := franceSource()
	entry := src["france"]
	entry.Food = costdata.Tiers{MidRange: "n/a"}
	src["france"] = entry

	costs := DailyCosts("France", StyleBalanced, src)
	if costs.Food != defaultDailyCosts[StyleBalanced].Food {
		t.Fatalf("Food = %.0f, want default %.0f", costs.Food, defaultDailyCosts[StyleBalanced].Food)
	}
	if costs.Accommodation != 100 {
		t.Fatalf("Accommodation = %.0f, want 100 (unaffected)", costs.Accommodation)
	}
}

// A category that parses to exactly zero is treated as missing data
// and replaced by the default, matching how existing budgets were
// generated. Zero is never taken as a legitimate free category.
func TestDailyCosts_ZeroParsedValueFallsBackToDefault(t *testing.T) {
	src := stubSource{
		"france": {
			Accommodation:  costdata.Tiers{MidRange: "0"},
			Food:           costdata.Tiers{MidRange: "0"},
			Transportation: costdata.Tiers{MidRange: "0"},
			Entertainment:  costdata.Tiers{MidRange: "0"},
		},
	}

	costs := DailyCosts("France", StyleBalanced, src)
	if costs != defaultDailyCosts[StyleBalanced] {
		t.Fatalf("all-zero entry produced %+v, want full balanced defaults", costs)
	}
}

func TestSuggest_FranceThreeDayLeg(t *testing.T) {
	legs := []model.Leg{{
		Country:   "France",
		StartDate: datePtr(t, "2024-06-01"),
		EndDate:   datePtr(t, "2024-06-04"),
	}}

	b := Suggest(legs, StyleBalanced, "USD", franceSource())

	if b.Total != 621 {
		t.Fatalf("Total = %.0f, want 621 (3 days x 207)", b.Total)
	}
	if b.PerDay != 207 {
		t.Fatalf("PerDay = %.0f, want 207", b.PerDay)
	}
	want := Categories{Accommodation: 300, Food: 150, Transport: 60, Activities: 45, Misc: 66}
	if b.Categories != want {
		t.Fatalf("Categories = %+v, want %+v", b.Categories, want)
	}
	if !b.AutoSuggested {
		t.Fatal("fresh suggestion not marked auto-suggested")
	}
	if b.Thresholds.Warn != 80 || b.Thresholds.Stop != 100 {
		t.Fatalf("Thresholds = %+v, want {80 100}", b.Thresholds)
	}
	if b.Currency != "USD" {
		t.Fatalf("Currency = %q, want USD", b.Currency)
	}
}

func TestSuggest_EmptyLegsSevenDayInvariant(t *testing.T) {
	for _, style := range []Style{StyleFrugal, StyleBalanced, StyleLuxury} {
		b := Suggest(nil, style, "EUR", franceSource())
		if b.Total != b.PerDay*7 {
			t.Fatalf("style %s: Total %.0f != PerDay %.0f x 7", style, b.Total, b.PerDay)
		}
		if !b.AutoSuggested {
			t.Fatalf("style %s: not auto-suggested", style)
		}
	}
}

func TestSuggest_LegsWithoutDatesAreSkipped(t *testing.T) {
	legs := []model.Leg{
		{Country: "France", StartDate: datePtr(t, "2024-06-01"), EndDate: datePtr(t, "2024-06-04")},
		{Country: "Spain", StartDate: datePtr(t, "2024-06-04")}, // no end date
	}

	b := Suggest(legs, StyleBalanced, "USD", franceSource())
	if b.Total != 621 {
		t.Fatalf("Total = %.0f, want 621 (dateless leg must not contribute)", b.Total)
	}
}

func TestSuggest_AllLegsSkippedFallsBackToSingleDay(t *testing.T) {
	legs := []model.Leg{
		{Country: "France"},
		{Country: "Spain", EndDate: datePtr(t, "2024-06-04")},
	}

	b := Suggest(legs, StyleBalanced, "USD", franceSource())
	def := defaultDailyCosts[StyleBalanced]
	if b.Total != math.Round(def.Sum()) {
		t.Fatalf("Total = %.0f, want single-day default %.0f", b.Total, def.Sum())
	}
	if b.PerDay != b.Total {
		t.Fatalf("PerDay = %.0f, want %.0f (one inferred day)", b.PerDay, b.Total)
	}
}

func TestSuggest_MultiLegAccumulation(t *testing.T) {
	src := franceSource()
	src["spain"] = costdata.CountryCosts{
		Accommodation:  costdata.Tiers{MidRange: "80"},
		Food:           costdata.Tiers{MidRange: "40"},
		Transportation: costdata.Tiers{MidRange: "15"},
		Entertainment:  costdata.Tiers{MidRange: "15"},
	}
	legs := []model.Leg{
		{Country: "France", StartDate: datePtr(t, "2024-06-01"), EndDate: datePtr(t, "2024-06-04")}, // 3 days
		{Country: "Spain", StartDate: datePtr(t, "2024-06-04"), EndDate: datePtr(t, "2024-06-06")},  // 2 days
	}

	b := Suggest(legs, StyleBalanced, "USD", src)

	// Spain per day: 80+40+15+15 = 150, misc round(0.12*150) = 18, total 168.
	// 3x207 + 2x168 = 621 + 336 = 957 over 5 days.
	if b.Total != 957 {
		t.Fatalf("Total = %.0f, want 957", b.Total)
	}
	if b.PerDay != math.Round(957.0/5.0) {
		t.Fatalf("PerDay = %.0f, want %.0f", b.PerDay, math.Round(957.0/5.0))
	}
}

func TestValidate_FreshSuggestionIsConsistent(t *testing.T) {
	cases := [][]model.Leg{
		nil,
		{{Country: "France", StartDate: datePtr(t, "2024-06-01"), EndDate: datePtr(t, "2024-06-04")}},
		{{Country: "Nowhere"}},
	}
	for i, legs := range cases {
		b := Suggest(legs, StyleBalanced, "USD", franceSource())
		v := Validate(b)
		if !v.IsValid {
			t.Fatalf("case %d: fresh suggestion invalid, difference %.0f", i, v.Difference)
		}
	}
}

func TestValidate_DetectsRealMismatch(t *testing.T) {
	b := Suggest(nil, StyleBalanced, "USD", nil)
	b.Categories.Food += 50

	v := Validate(b)
	if v.IsValid {
		t.Fatal("Validate accepted a 50-unit mismatch")
	}
	if v.Difference != 50 {
		t.Fatalf("Difference = %.0f, want 50", v.Difference)
	}
}

func TestRecalculateTotals_WithExplicitDays(t *testing.T) {
	b := Suggest(nil, StyleBalanced, "USD", nil)
	b.Categories.Activities += 140 // user edit

	got := RecalculateTotals(b, 7)
	if got.Total != math.Round(got.Categories.Sum()) {
		t.Fatalf("Total = %.0f, want category sum %.0f", got.Total, got.Categories.Sum())
	}
	if got.PerDay != math.Round(got.Total/7) {
		t.Fatalf("PerDay = %.0f, want %.0f", got.PerDay, math.Round(got.Total/7))
	}
	if got.AutoSuggested {
		t.Fatal("recalculated budget still marked auto-suggested")
	}
}

func TestRecalculateTotals_InfersDaysFromOldPerDay(t *testing.T) {
	b := TripBudget{
		Style:  StyleBalanced,
		Total:  700,
		PerDay: 100,
		Categories: Categories{
			Accommodation: 350, Food: 140, Transport: 70, Activities: 105, Misc: 35,
		},
	}

	got := RecalculateTotals(b, 0)
	if got.Total != 700 {
		t.Fatalf("Total = %.0f, want 700", got.Total)
	}
	if got.PerDay != 100 {
		t.Fatalf("PerDay = %.0f, want 100 (7 inferred days)", got.PerDay)
	}
}

func TestRecalculateTotals_ZeroPerDayGuard(t *testing.T) {
	b := TripBudget{Categories: Categories{Food: 90}}
	got := RecalculateTotals(b, 0)
	if got.PerDay != 90 {
		t.Fatalf("PerDay = %.0f, want 90 (day count floors at 1)", got.PerDay)
	}
}

func TestConvertStyle_SameStyleKeepsAmounts(t *testing.T) {
	b := Suggest(nil, StyleBalanced, "USD", nil)

	got := ConvertStyle(b, StyleBalanced)
	if got.Categories != b.Categories {
		t.Fatalf("Categories changed on identity conversion: %+v -> %+v", b.Categories, got.Categories)
	}
	if got.Total != b.Total || got.PerDay != b.PerDay {
		t.Fatalf("totals changed on identity conversion")
	}
	if got.AutoSuggested {
		t.Fatal("identity conversion must still flip AutoSuggested to false")
	}
}

func TestConvertStyle_ScalesByMultiplierRatio(t *testing.T) {
	legs := []model.Leg{{
		Country:   "France",
		StartDate: datePtr(t, "2024-06-01"),
		EndDate:   datePtr(t, "2024-06-04"),
	}}
	b := Suggest(legs, StyleBalanced, "USD", franceSource())

	got := ConvertStyle(b, StyleLuxury)

	factor := 2.2 / 1.0
	if got.Total != math.Round(b.Total*factor) {
		t.Fatalf("Total = %.0f, want %.0f", got.Total, math.Round(b.Total*factor))
	}
	if got.Categories.Accommodation != math.Round(b.Categories.Accommodation*factor) {
		t.Fatalf("Accommodation = %.0f, want scaled+rounded", got.Categories.Accommodation)
	}
	// Day count is inferred from the OLD total/perDay pair: 621/207 = 3.
	if got.PerDay != math.Round(got.Total/3) {
		t.Fatalf("PerDay = %.0f, want %.0f over 3 inferred days", got.PerDay, math.Round(got.Total/3))
	}
	if got.Style != StyleLuxury {
		t.Fatalf("Style = %q, want luxury", got.Style)
	}
}

func TestConvertStyle_RoundingDriftStaysWithinTolerance(t *testing.T) {
	b := Suggest([]model.Leg{{
		Country:   "France",
		StartDate: datePtr(t, "2024-06-01"),
		EndDate:   datePtr(t, "2024-06-04"),
	}}, StyleBalanced, "USD", franceSource())

	got := ConvertStyle(b, StyleFrugal)
	v := Validate(got)
	if !v.IsValid {
		t.Fatalf("converted budget drifted past tolerance: difference %.0f", v.Difference)
	}
}

func TestStyleForTravelStyle(t *testing.T) {
	cases := []struct {
		in   model.TravelStyle
		want Style
		ok   bool
	}{
		{model.TravelStyleBudget, StyleFrugal, true},
		{model.TravelStyleMidRange, StyleBalanced, true},
		{model.TravelStyleLuxury, StyleLuxury, true},
		{"", "", false},
		{"Backpacker", "", false},
	}
	for _, c := range cases {
		got, ok := StyleForTravelStyle(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("StyleForTravelStyle(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
