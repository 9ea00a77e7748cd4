// Package status derives a trip's lifecycle state and planning
// completion from its field population and date relationship to now.
// All functions are pure; nothing here reads storage or the clock.
package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oskarlind/tripkit/internal/model"
)

// Field weights for the completion checklist. They sum to 100.
const (
	weightName        = 15
	weightDestination = 25
	weightDates       = 25
	weightBudgetFull  = 20
	weightBudgetHalf  = 10 // method chosen but no amount yet
	weightStyle       = 10
	weightNotes       = 5
)

// Completion thresholds for the derived status.
const (
	planningThreshold = 40
	readyThreshold    = 80
)

// Completion returns a 0-100 score measuring how fully a trip's
// planning fields are populated. Rounding is half-away-from-zero.
func Completion(t model.Trip) int {
	var earned float64

	if strings.TrimSpace(t.Name) != "" {
		earned += weightName
	}
	if t.HasDestination() {
		earned += weightDestination
	}

	switch {
	case t.StartDate != nil && t.EndDate != nil:
		earned += weightDates
	case t.StartDate != nil || t.EndDate != nil:
		earned += weightDates / 2.0
	}

	if t.BudgetMethod != "" && t.BudgetMethod != model.BudgetMethodNone {
		if t.HasBudgetAmount() {
			earned += weightBudgetFull
		} else {
			earned += weightBudgetHalf
		}
	}

	if t.TravelStyle != "" {
		earned += weightStyle
	}
	if strings.TrimSpace(t.Notes) != "" {
		earned += weightNotes
	}

	return int(math.Round(earned))
}

// Derive computes the trip's lifecycle state at the given time.
// Decision order: manual cancellation, then date rules, then
// completion-based rules. Date rules dominate completion except for
// the cancellation override; a trip whose end date has passed is
// completed no matter how sparse its planning is.
func Derive(t model.Trip, now time.Time) model.Status {
	if t.ManualStatus == model.StatusCancelled {
		return model.StatusCancelled
	}

	today := dateOf(now)
	if t.EndDate != nil && today.After(dateOf(*t.EndDate)) {
		return model.StatusCompleted
	}
	if t.StartDate != nil && t.EndDate != nil &&
		!today.Before(dateOf(*t.StartDate)) && !today.After(dateOf(*t.EndDate)) {
		return model.StatusActive
	}

	completion := Completion(t)
	switch {
	case completion < planningThreshold:
		return model.StatusDraft
	case completion < readyThreshold:
		return model.StatusPlanning
	default:
		if t.StartDate != nil && today.Before(dateOf(*t.StartDate)) {
			return model.StatusReady
		}
		// Well planned but no confirmed future start date.
		return model.StatusPlanning
	}
}

// dateOf truncates a timestamp to its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Config holds display attributes for one lifecycle state.
type Config struct {
	Color string // hex color for terminal rendering
	Icon  string // single-cell glyph shown before the label
	Label string
}

var statusConfigs = map[model.Status]Config{
	model.StatusDraft:     {Color: "#878580", Icon: "✎", Label: "Draft"},
	model.StatusPlanning:  {Color: "#4385BE", Icon: "◌", Label: "Planning"},
	model.StatusReady:     {Color: "#3AA99F", Icon: "⚑", Label: "Ready to go"},
	model.StatusActive:    {Color: "#879A39", Icon: "✈", Label: "Active"},
	model.StatusCompleted: {Color: "#8B7EC8", Icon: "✔", Label: "Completed"},
	model.StatusCancelled: {Color: "#D14D41", Icon: "✘", Label: "Cancelled"},
}

// ConfigFor returns the display config for a status. An unknown status
// is a programmer error and returns an error rather than a guessed
// default, so configuration drift surfaces early.
func ConfigFor(s model.Status) (Config, error) {
	cfg, ok := statusConfigs[s]
	if !ok {
		return Config{}, fmt.Errorf("unknown trip status %q", s)
	}
	return cfg, nil
}

// Next-step hint texts, in emission order.
const (
	hintDestination = "Add a destination so costs can be estimated"
	hintDates       = "Pick start and end dates"
	hintBudget      = "Set a budget amount for the trip"
	hintStyle       = "Choose a travel style"
	hintNotes       = "Jot down notes about the plan"
)

// Suggestions returns human-readable next-step hints for unmet
// planning fields, in a fixed order: destination, dates, budget,
// style, notes. Satisfied fields are omitted.
func Suggestions(t model.Trip) []string {
	var hints []string

	if !t.HasDestination() {
		hints = append(hints, hintDestination)
	}
	if t.StartDate == nil || t.EndDate == nil {
		hints = append(hints, hintDates)
	}
	noMethod := t.BudgetMethod == "" || t.BudgetMethod == model.BudgetMethodNone
	if noMethod || !t.HasBudgetAmount() {
		hints = append(hints, hintBudget)
	}
	if t.TravelStyle == "" {
		hints = append(hints, hintStyle)
	}
	if strings.TrimSpace(t.Notes) == "" {
		hints = append(hints, hintNotes)
	}

	return hints
}
