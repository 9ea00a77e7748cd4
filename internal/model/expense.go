package model

import "time"

// Expense is a single spend record, optionally linked to a trip and a
// location. Expenses roll up against a trip's budget in reports; the
// status and budget engines never read them directly.
type Expense struct {
	ID         string
	TripID     string
	LocationID string
	Amount     float64
	Currency   string
	Category   string
	SpentOn    time.Time
	Note       string
}

// Location is a saved place that trips and expenses can reference.
type Location struct {
	ID      string
	Name    string
	Country string
}
