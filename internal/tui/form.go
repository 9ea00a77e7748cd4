package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/store"
)

// addTripValues backs the add-trip form fields.
type addTripValues struct {
	name      string
	city      string
	country   string
	startDate string
	endDate   string
	style     string
	notes     string
}

func newAddTripForm(vals *addTripValues) *huh.Form {
	validDate := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, err := time.Parse(model.DateLayout, strings.TrimSpace(s)); err != nil {
			return fmt.Errorf("use YYYY-MM-DD")
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trip name").
				Value(&vals.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Destination city").
				Placeholder("optional").
				Value(&vals.city),
			huh.NewInput().
				Title("Country").
				Placeholder("optional").
				Value(&vals.country),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				Validate(validDate).
				Value(&vals.startDate),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				Validate(validDate).
				Value(&vals.endDate),
			huh.NewSelect[string]().
				Title("Travel style").
				Options(
					huh.NewOption("Budget", string(model.TravelStyleBudget)),
					huh.NewOption("Mid-range", string(model.TravelStyleMidRange)),
					huh.NewOption("Luxury", string(model.TravelStyleLuxury)),
				).
				Value(&vals.style),
			huh.NewText().
				Title("Notes").
				Placeholder("optional").
				Value(&vals.notes),
		),
	)
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	if a.addForm.State == huh.StateCompleted {
		a.addForm = nil
		if err := a.saveNewTrip(); err == nil {
			return a, loadDataCmd(a.dbPath)
		}
		return a, nil
	}

	if a.addForm.State == huh.StateAborted {
		a.addForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) saveNewTrip() error {
	st, err := store.Open(a.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	now := time.Now()
	trip := model.Trip{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(a.addVals.name),
		TravelStyle: model.TravelStyle(a.addVals.style),
		Notes:       strings.TrimSpace(a.addVals.notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	city := strings.TrimSpace(a.addVals.city)
	country := strings.TrimSpace(a.addVals.country)
	if city != "" || country != "" {
		trip.Destination = &model.Destination{Name: city, Country: country}
	}
	if s := strings.TrimSpace(a.addVals.startDate); s != "" {
		if d, err := time.Parse(model.DateLayout, s); err == nil {
			trip.StartDate = &d
		}
	}
	if s := strings.TrimSpace(a.addVals.endDate); s != "" {
		if d, err := time.Parse(model.DateLayout, s); err == nil {
			trip.EndDate = &d
		}
	}
	if trip.StartDate != nil || trip.EndDate != nil {
		trip.BudgetMethod = model.BudgetMethodDates
	}

	return st.SaveTrip(trip)
}
