// Package report aggregates expenses against trip budgets: totals,
// burn rates, projections, and threshold alerts for the dashboards.
// Like the engines it is pure; callers pass already-loaded entities.
package report

import (
	"sort"
	"time"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/model"
)

// Alert is the budget-consumption alert level.
type Alert int

// Alert levels, ordered by severity.
const (
	AlertOK Alert = iota
	AlertWarn
	AlertStop
)

func (a Alert) String() string {
	switch a {
	case AlertWarn:
		return "warn"
	case AlertStop:
		return "stop"
	default:
		return "ok"
	}
}

// Converter converts expense amounts into the home currency using the
// supplied rate table. Unknown currencies pass through at face value.
type Converter struct {
	Home  string
	Rates map[string]float64
}

// Convert returns the expense amount in home currency and whether a
// real conversion (or no conversion) was possible.
func (c Converter) Convert(e model.Expense) (float64, bool) {
	if e.Currency == "" || e.Currency == c.Home {
		return e.Amount, true
	}
	rate, ok := c.Rates[e.Currency]
	if !ok || rate <= 0 {
		return e.Amount, false
	}
	return e.Amount * rate, true
}

// Summarize computes spend-vs-budget statistics for one trip. The
// budget may be nil when none has been suggested yet; budget-relative
// fields stay zero in that case.
func Summarize(trip model.Trip, b *budget.TripBudget, expenses []model.Expense, conv Converter, now time.Time) model.SpendStats {
	stats := model.SpendStats{ByCategory: make(map[string]float64)}
	activeDays := make(map[string]struct{})

	for _, e := range expenses {
		amount, converted := conv.Convert(e)
		if !converted {
			stats.Unconverted++
		}
		stats.Total += amount
		category := e.Category
		if category == "" {
			category = "misc"
		}
		stats.ByCategory[category] += amount

		if !e.SpentOn.IsZero() {
			activeDays[e.SpentOn.Format(model.DateLayout)] = struct{}{}
		}
	}

	today := dateOf(now)

	// Elapsed trip days drive the burn rate; for undated trips the
	// distinct spend days stand in.
	elapsed := len(activeDays)
	if trip.StartDate != nil {
		start := dateOf(*trip.StartDate)
		if !today.Before(start) {
			until := today
			if trip.EndDate != nil && today.After(dateOf(*trip.EndDate)) {
				until = dateOf(*trip.EndDate)
			}
			elapsed = int(until.Sub(start).Hours()/24) + 1
		} else {
			elapsed = 0
		}
	}
	stats.DaysElapsed = elapsed

	if trip.EndDate != nil {
		end := dateOf(*trip.EndDate)
		if !today.After(end) {
			stats.DaysRemaining = int(end.Sub(today).Hours()/24) + 1
		}
	}

	if elapsed > 0 {
		stats.DailyBurnRate = stats.Total / float64(elapsed)
	}
	if length := trip.LengthDays(); length > 0 && stats.DailyBurnRate > 0 {
		stats.ProjectedTotal = stats.DailyBurnRate * float64(length)
	} else {
		stats.ProjectedTotal = stats.Total
	}

	if b != nil && b.Total > 0 {
		stats.BudgetUsedPct = stats.Total / b.Total * 100
		stats.Remaining = b.Total - stats.Total
	}

	return stats
}

// AlertFor evaluates a trip's consumption against its budget
// thresholds.
func AlertFor(b *budget.TripBudget, stats model.SpendStats) Alert {
	if b == nil || b.Total <= 0 {
		return AlertOK
	}
	switch {
	case stats.BudgetUsedPct >= float64(b.Thresholds.Stop):
		return AlertStop
	case stats.BudgetUsedPct >= float64(b.Thresholds.Warn):
		return AlertWarn
	default:
		return AlertOK
	}
}

// ByDay buckets expenses into calendar days over [since, until],
// filling gaps with zero days so charts show them, most recent first.
func ByDay(expenses []model.Expense, conv Converter, since, until time.Time) []model.DailySpend {
	dayMap := make(map[string]*model.DailySpend)

	for _, e := range expenses {
		if e.SpentOn.IsZero() {
			continue
		}
		day := dateOf(e.SpentOn)
		if day.Before(dateOf(since)) || day.After(dateOf(until)) {
			continue
		}
		key := day.Format(model.DateLayout)
		ds, ok := dayMap[key]
		if !ok {
			ds = &model.DailySpend{Date: day}
			dayMap[key] = ds
		}
		amount, _ := conv.Convert(e)
		ds.Amount += amount
		ds.Expenses++
	}

	day := dateOf(since)
	end := dateOf(until)
	for !day.After(end) {
		key := day.Format(model.DateLayout)
		if _, ok := dayMap[key]; !ok {
			dayMap[key] = &model.DailySpend{Date: day}
		}
		day = day.AddDate(0, 0, 1)
	}

	days := make([]model.DailySpend, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// FilterByCategory returns expenses matching the given category.
func FilterByCategory(expenses []model.Expense, category string) []model.Expense {
	if category == "" {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if e.Category == category {
			result = append(result, e)
		}
	}
	return result
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
