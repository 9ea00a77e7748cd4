package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/config"
	"github.com/oskarlind/tripkit/internal/tui/components"
	"github.com/oskarlind/tripkit/internal/tui/theme"
)

const (
	settingsFieldCurrency = iota
	settingsFieldStyle
	settingsFieldTheme
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

// updateSettings handles key events on the settings tab. Returns false
// when the key should fall through to the global handlers.
func (a App) updateSettings(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	key := msg.String()

	if a.settings.editing {
		switch key {
		case "enter":
			a.settingsSave()
			a.settings.editing = false
			a.settings.saved = a.settings.saveErr == nil
			return true, a, nil
		case "esc":
			a.settings.editing = false
			return true, a, nil
		}
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return true, a, cmd
	}

	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return true, a, nil
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return true, a, nil
	case "enter":
		m, cmd := a.settingsStartEdit()
		return true, m, cmd
	}

	return false, a, nil
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldCurrency:
		ti.Placeholder = "USD"
		ti.SetValue(a.cfg.General.Currency)
	case settingsFieldStyle:
		ti.Placeholder = "frugal, balanced, luxury"
		ti.SetValue(a.cfg.General.DefaultStyle)
	case settingsFieldTheme:
		names := make([]string, len(theme.All))
		for i, t := range theme.All {
			names[i] = t.Name
		}
		ti.Placeholder = strings.Join(names, ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldCurrency:
		if len(val) == 3 {
			a.cfg.General.Currency = strings.ToUpper(val)
		}
	case settingsFieldStyle:
		switch budget.Style(strings.ToLower(val)) {
		case budget.StyleFrugal, budget.StyleBalanced, budget.StyleLuxury:
			a.cfg.General.DefaultStyle = strings.ToLower(val)
		}
	case settingsFieldTheme:
		for _, t := range theme.All {
			if t.Name == val {
				a.cfg.Appearance.Theme = val
				theme.SetActive(val)
				break
			}
		}
	}

	a.settings.saveErr = config.Save(a.cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	fields := []struct {
		label string
		value string
	}{
		{"Home Currency", a.cfg.General.Currency},
		{"Default Style", a.cfg.General.DefaultStyle},
		{"Theme", a.cfg.Appearance.Theme},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	rateCount := len(a.cfg.Rates)
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Database:        ") + valueStyle.Render(a.dbPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Trips loaded:    ") + valueStyle.Render(fmt.Sprintf("%d", len(a.trips))) + "\n")
	infoBody.WriteString(labelStyle.Render("Exchange rates:  ") + valueStyle.Render(fmt.Sprintf("%d configured", rateCount)) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:       ") + valueStyle.Render(fmt.Sprintf("%.2fs", a.loadTime.Seconds())) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
