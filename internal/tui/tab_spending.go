package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/report"
	"github.com/oskarlind/tripkit/internal/tui/components"
	"github.com/oskarlind/tripkit/internal/tui/theme"
)

func (a App) renderSpendingTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	currency := a.cfg.General.Currency

	trip := a.selectedTrip()
	if trip == nil {
		return components.ContentCard("Spending",
			mutedStyle.Render("No trip selected. Pick one on the Trips tab."), cw)
	}

	expenses := a.expenses[trip.ID]
	stats, tb := a.statsFor(*trip)

	var b strings.Builder

	burnDetail := ""
	if stats.DaysElapsed > 0 {
		burnDetail = fmt.Sprintf("over %s", cli.FormatDayCount(stats.DaysElapsed))
	}
	remainingVal := "—"
	remainingDetail := "no budget set"
	if tb != nil && tb.Total > 0 {
		remainingVal = cli.FormatMoney(stats.Remaining, currency)
		remainingDetail = fmt.Sprintf("of %s", cli.FormatMoney(tb.Total, tb.Currency))
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Spent", cli.FormatMoney(stats.Total, currency), fmt.Sprintf("%d expenses", len(expenses))},
		{"Remaining", remainingVal, remainingDetail},
		{"Burn Rate", cli.FormatMoney(stats.DailyBurnRate, currency) + "/day", burnDetail},
		{"Projected", cli.FormatMoney(stats.ProjectedTotal, currency), "at current pace"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Budget consumption bar
	if tb != nil && tb.Total > 0 {
		barW := components.CardInnerWidth(cw) - 20
		if barW < 10 {
			barW = 10
		}
		bar := components.BudgetBar("Budget", stats.BudgetUsedPct,
			tb.Thresholds.Warn, tb.Thresholds.Stop, 8, barW)
		b.WriteString(components.ContentCard("Consumption", bar, cw))
		b.WriteString("\n")
	}

	if len(expenses) == 0 {
		b.WriteString(components.ContentCard("Daily Spend",
			mutedStyle.Render("No expenses recorded yet."), cw))
		return b.String()
	}

	// Daily spend chart over the last two weeks of activity
	until := time.Now()
	if trip.EndDate != nil && trip.EndDate.Before(until) {
		until = *trip.EndDate
	}
	since := until.AddDate(0, 0, -13)
	days := report.ByDay(expenses, a.converter(), since, until)

	chartVals := make([]float64, len(days))
	chartLabels := make([]string, len(days))
	for i, d := range days {
		// ByDay is newest-first; charts read oldest-left.
		idx := len(days) - 1 - i
		chartVals[idx] = d.Amount
		chartLabels[idx] = fmt.Sprintf("%d", d.Date.Day())
	}

	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard(
		"Daily Spend (14d)",
		components.BarChart(chartVals, chartLabels, t.Blue, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	// Category breakdown
	type catAmount struct {
		name   string
		amount float64
	}
	cats := make([]catAmount, 0, len(stats.ByCategory))
	for name, amount := range stats.ByCategory {
		cats = append(cats, catAmount{name, amount})
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].amount > cats[j].amount })

	innerW := components.CardInnerWidth(cw)
	barMax := innerW - 32
	if barMax < 8 {
		barMax = 8
	}
	peak := 0.0
	if len(cats) > 0 {
		peak = cats[0].amount
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var catBody strings.Builder
	for _, c := range cats {
		barLen := 0
		if peak > 0 {
			barLen = int(c.amount / peak * float64(barMax))
		}
		fmt.Fprintf(&catBody, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-14s", truncStr(c.name, 14))),
			barStyle.Render(strings.Repeat("█", barLen)),
			amtStyle.Render(cli.FormatMoney(c.amount, currency)),
		)
	}
	if stats.Unconverted > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		fmt.Fprintf(&catBody, "\n%s", warn.Render(fmt.Sprintf(
			"%d expenses in currencies without a configured rate (counted at face value)",
			stats.Unconverted)))
	}

	b.WriteString(components.ContentCard("By Category", strings.TrimRight(catBody.String(), "\n"), cw))

	return b.String()
}
