package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/oskarlind/tripkit/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with trip count and an
// optional budget alert pill.
func RenderStatusBar(width, tripCount int, alert string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	right := fmt.Sprintf("%d trips ", tripCount)
	if alert != "" {
		alertStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
		right = alertStyle.Render(alert) + "  " + right
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
