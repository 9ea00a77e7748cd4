package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/tui/components"
	"github.com/oskarlind/tripkit/internal/tui/theme"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	trip := a.selectedTrip()
	if trip == nil {
		return components.ContentCard("Budget",
			mutedStyle.Render("No trip selected. Pick one on the Trips tab."), cw)
	}

	tb, ok := a.budgets[trip.ID]
	if !ok {
		body := mutedStyle.Render("No budget yet for this trip.\n\nRun `tripkit budget suggest " +
			truncStr(trip.Name, 30) + "` to generate one.")
		return components.ContentCard("Budget: "+truncStr(trip.Name, 40), body, cw)
	}

	var b strings.Builder

	days := trip.LengthDays()
	daysDetail := "inferred from totals"
	if days > 0 {
		daysDetail = cli.FormatDayCount(days)
	}
	source := "set by hand"
	if tb.AutoSuggested {
		source = "auto-suggested"
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Total", cli.FormatMoney(tb.Total, tb.Currency), source},
		{"Per Day", cli.FormatMoney(tb.PerDay, tb.Currency), daysDetail},
		{"Style", string(tb.Style), ""},
		{"Thresholds", fmt.Sprintf("%d%% / %d%%", tb.Thresholds.Warn, tb.Thresholds.Stop), "warn / stop"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Category allocation bars
	innerW := components.CardInnerWidth(cw)
	barMax := innerW - 32
	if barMax < 8 {
		barMax = 8
	}

	categories := []struct {
		name   string
		amount float64
	}{
		{"accommodation", tb.Categories.Accommodation},
		{"food", tb.Categories.Food},
		{"transport", tb.Categories.Transport},
		{"activities", tb.Categories.Activities},
		{"misc", tb.Categories.Misc},
	}
	peak := 0.0
	for _, c := range categories {
		if c.amount > peak {
			peak = c.amount
		}
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var catBody strings.Builder
	for _, c := range categories {
		barLen := 0
		if peak > 0 {
			barLen = int(c.amount / peak * float64(barMax))
		}
		share := 0.0
		if tb.Total > 0 {
			share = c.amount / tb.Total * 100
		}
		fmt.Fprintf(&catBody, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-14s", c.name)),
			barStyle.Render(strings.Repeat("█", barLen)),
			amtStyle.Render(fmt.Sprintf("%s (%.0f%%)", cli.FormatMoney(c.amount, tb.Currency), share)),
		)
	}

	// Consistency check between category sum and total
	v := budget.Validate(tb)
	if !v.IsValid {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		fmt.Fprintf(&catBody, "\n%s",
			warn.Render(fmt.Sprintf("Categories differ from total by %s",
				cli.FormatMoney(v.Difference, tb.Currency))))
	}

	b.WriteString(components.ContentCard("Allocation", strings.TrimRight(catBody.String(), "\n"), cw))

	return b.String()
}
