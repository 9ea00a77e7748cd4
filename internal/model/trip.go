// Package model defines domain types for tripkit trips, budgets, and expenses.
package model

import "time"

// DateLayout is the storage and display layout for calendar dates.
// Trip and leg dates carry no time of day.
const DateLayout = "2006-01-02"

// LocationPlaceholder is the location id assigned by the trip-creation
// flow before a real location is chosen. It does not count as a
// destination for completion scoring.
const LocationPlaceholder = "pending"

// BudgetMethod describes how a trip's budget was specified.
type BudgetMethod string

// Budget methods.
const (
	BudgetMethodTotal BudgetMethod = "total-budget"
	BudgetMethodDates BudgetMethod = "trip-dates"
	BudgetMethodBoth  BudgetMethod = "both"
	BudgetMethodNone  BudgetMethod = "no-budget"
)

// TravelStyle is the display-facing style vocabulary shown to users.
// It is distinct from the budget engine's internal style enum; the only
// bridge between the two is budget.StyleForTravelStyle.
type TravelStyle string

// Display travel styles.
const (
	TravelStyleBudget   TravelStyle = "Budget"
	TravelStyleMidRange TravelStyle = "Mid-range"
	TravelStyleLuxury   TravelStyle = "Luxury"
)

// Status is a trip lifecycle state. Except for StatusCancelled it is
// always derived on demand from dates and completion, never read back
// from storage as source of truth.
type Status string

// Trip lifecycle states.
const (
	StatusDraft     Status = "draft"
	StatusPlanning  Status = "planning"
	StatusReady     Status = "ready"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Destination is the legacy embedded destination snapshot kept on trips
// created before locations became first-class entities.
type Destination struct {
	Name    string
	Country string
}

// Trip represents one planned or past journey.
type Trip struct {
	ID          string
	Name        string
	LocationID  string
	Destination *Destination

	StartDate *time.Time
	EndDate   *time.Time

	BudgetMethod            BudgetMethod
	TravelStyle             TravelStyle // empty when unset
	TotalBudget             *float64
	DailyBudget             *float64
	EmergencyFundPercentage float64

	// Categories holds per-category budgeted amounts keyed by category
	// name. Keys are not fixed; accommodation, food, transport,
	// activities, shopping and misc are the usual ones.
	Categories map[string]float64

	// Status is the legacy persisted lifecycle field. It is written for
	// backward compatibility with previously saved trips and never read
	// as authoritative.
	Status Status

	// ManualStatus overrides the derived status when set. In practice
	// only StatusCancelled is forced this way.
	ManualStatus Status

	Notes        string
	Participants []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDestination reports whether the trip has a usable destination:
// either an embedded destination name or a real (non-placeholder)
// location reference.
func (t Trip) HasDestination() bool {
	if t.Destination != nil && t.Destination.Name != "" {
		return true
	}
	return t.LocationID != "" && t.LocationID != LocationPlaceholder
}

// HasBudgetAmount reports whether either budget amount is set.
func (t Trip) HasBudgetAmount() bool {
	return t.TotalBudget != nil || t.DailyBudget != nil
}

// Country returns the trip's country, preferring the embedded
// destination snapshot.
func (t Trip) Country() string {
	if t.Destination != nil && t.Destination.Country != "" {
		return t.Destination.Country
	}
	return ""
}

// LengthDays returns the inclusive trip length in days, or 0 when
// either date is missing.
func (t Trip) LengthDays() int {
	if t.StartDate == nil || t.EndDate == nil {
		return 0
	}
	d := int(t.EndDate.Sub(*t.StartDate).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	return d
}

// Leg is a single-country segment of a multi-destination trip with its
// own date range.
type Leg struct {
	ID        string
	TripID    string
	Country   string
	StartDate *time.Time
	EndDate   *time.Time
	Position  int
}
