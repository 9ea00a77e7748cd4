package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/status"
	"github.com/oskarlind/tripkit/internal/tui/components"
	"github.com/oskarlind/tripkit/internal/tui/theme"
)

func (a App) renderTripsTab(cw, contentH int) string {
	t := theme.Active
	var b strings.Builder

	now := time.Now()
	var active, upcoming int
	var totalBudget float64
	for _, trip := range a.trips {
		switch status.Derive(trip, now) {
		case model.StatusActive:
			active++
		case model.StatusReady, model.StatusPlanning, model.StatusDraft:
			upcoming++
		}
		if tb, ok := a.budgets[trip.ID]; ok {
			totalBudget += tb.Total
		}
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Trips", fmt.Sprintf("%d", len(a.trips)), ""},
		{"Active", fmt.Sprintf("%d", active), "traveling now"},
		{"Upcoming", fmt.Sprintf("%d", upcoming), "in planning"},
		{"Budgeted", cli.FormatMoney(totalBudget, a.cfg.General.Currency), "across all trips"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	if len(a.trips) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No trips yet. Press [n] to plan one.")
		b.WriteString(components.ContentCard("Trips", empty, cw))
		return b.String()
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selectedName := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedMuted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceHover)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	innerW := components.CardInnerWidth(cw)
	nameW := innerW / 3
	if nameW > 28 {
		nameW = 28
	}

	// Keep the cursor visible: window the list to the card height.
	visible := contentH - 9
	if visible < 3 {
		visible = 3
	}
	first := 0
	if a.cursor >= visible {
		first = a.cursor - visible + 1
	}
	last := first + visible
	if last > len(a.trips) {
		last = len(a.trips)
	}

	var list strings.Builder
	for i := first; i < last; i++ {
		trip := a.trips[i]
		dest := trip.Country()
		if trip.Destination != nil && trip.Destination.Name != "" {
			dest = trip.Destination.Name
			if trip.Destination.Country != "" {
				dest += ", " + trip.Destination.Country
			}
		}
		if dest == "" {
			dest = "—"
		}

		name := truncStr(trip.Name, nameW)
		dates := cli.FormatDateRange(trip.StartDate, trip.EndDate)
		pct := status.Completion(trip)

		ns, ms := nameStyle, mutedStyle
		prefix := "  "
		if i == a.cursor {
			ns, ms = selectedName, selectedMuted
			prefix = markerStyle.Render("▸ ")
			list.WriteString(prefix)
		} else {
			list.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(prefix))
		}

		list.WriteString(ns.Render(fmt.Sprintf("%-*s", nameW, name)))
		list.WriteString(ms.Render(fmt.Sprintf("  %-22s", truncStr(dest, 22))))
		list.WriteString(statusBadge(trip))
		list.WriteString(ms.Render(fmt.Sprintf("  %3d%%  ", pct)))
		list.WriteString(ms.Render(dates))
		list.WriteString("\n")
	}

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Trips (%d)", len(a.trips)),
		strings.TrimRight(list.String(), "\n"),
		cw,
	))
	b.WriteString("\n")

	// Detail strip for the selected trip: completion + next steps
	if trip := a.selectedTrip(); trip != nil {
		pct := status.Completion(*trip)
		var detail strings.Builder
		detail.WriteString(components.ProgressBar(float64(pct)/100, 30))
		hints := status.Suggestions(*trip)
		if len(hints) > 0 {
			detail.WriteString("\n")
			for _, hint := range hints {
				detail.WriteString(mutedStyle.Render("• " + hint))
				detail.WriteString("\n")
			}
		}
		b.WriteString(components.ContentCard(
			"Plan: "+truncStr(trip.Name, 40),
			strings.TrimRight(detail.String(), "\n"),
			cw,
		))
	}

	return b.String()
}
