package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/oskarlind/tripkit/internal/tui/theme"
)

// ProgressBar renders a plain progress bar with percentage, used by the
// loading screen and plan-completion displays.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForSpend returns green/yellow/orange/red based on how much of
// the budget has been consumed relative to the warn and stop marks.
func ColorForSpend(usedPct float64, warnPct, stopPct int) string {
	t := theme.Active
	switch {
	case usedPct >= float64(stopPct):
		return string(t.Red)
	case usedPct >= float64(warnPct):
		return string(t.Orange)
	case usedPct >= float64(warnPct)*0.75:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// BudgetBar renders a labeled spend-vs-budget bar with percentage.
// usedPct is 0-100; warn and stop marks pick the fill color.
func BudgetBar(label string, usedPct float64, warnPct, stopPct, labelW, barWidth int) string {
	t := theme.Active

	frac := usedPct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForSpend(usedPct, warnPct, stopPct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorForSpend(usedPct, warnPct, stopPct))).
		Background(t.Surface).
		Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(frac) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", usedPct))
}
