package model

import "time"

// SpendStats holds spend-vs-budget tracking for one trip.
type SpendStats struct {
	Total         float64
	ByCategory    map[string]float64
	BudgetUsedPct float64
	Remaining     float64

	DailyBurnRate  float64
	ProjectedTotal float64
	DaysElapsed    int
	DaysRemaining  int

	// Unconverted counts expenses whose currency had no entry in the
	// supplied rate table and were taken at face value.
	Unconverted int
}

// DailySpend holds spend for a single calendar day.
type DailySpend struct {
	Date     time.Time
	Amount   float64
	Expenses int
}
