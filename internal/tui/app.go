// Package tui provides the interactive Bubble Tea dashboard for tripkit.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/config"
	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/report"
	"github.com/oskarlind/tripkit/internal/status"
	"github.com/oskarlind/tripkit/internal/store"
	"github.com/oskarlind/tripkit/internal/tui/components"
	"github.com/oskarlind/tripkit/internal/tui/theme"
)

// DataLoadedMsg is sent when the store snapshot finishes loading.
type DataLoadedMsg struct {
	Trips    []model.Trip
	Budgets  map[string]budget.TripBudget
	Expenses map[string][]model.Expense
	LoadTime time.Duration
	Err      error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	trips    []model.Trip
	budgets  map[string]budget.TripBudget
	expenses map[string][]model.Expense
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Config snapshot taken at startup
	cfg    config.Config
	dbPath string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    int // selected trip, shared by all trip-scoped tabs

	// Settings tab state
	settings settingsState

	// Add-trip form (huh)
	addForm *huh.Form
	addVals addTripValues

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	compactWidth     = 110
	maxContentWidth  = 170

	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(dbPath string, cfg config.Config) App {
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		dbPath:   dbPath,
		cfg:      cfg,
		budgets:  map[string]budget.TripBudget{},
		expenses: map[string][]model.Expense{},
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.addForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		case tea.MouseButtonWheelDown:
			if a.cursor < len(a.trips)-1 {
				a.cursor++
			}
			return a, nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// Add-trip form intercepts all keys while active
		if a.addForm != nil {
			return a.updateAddForm(msg)
		}

		// Settings tab owns its keys
		if a.activeTab == 3 {
			if handled, m, cmd := a.updateSettings(msg); handled {
				return m, cmd
			}
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			return a, loadDataCmd(a.dbPath)
		case "n":
			a.addVals = addTripValues{style: string(model.TravelStyleMidRange)}
			a.addForm = newAddTripForm(&a.addVals)
			if a.width > 0 {
				a.addForm = a.addForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.addForm.Init()
		case "j", "down":
			if a.cursor < len(a.trips)-1 {
				a.cursor++
			}
			return a, nil
		case "k", "up":
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		case "g":
			a.cursor = 0
			return a, nil
		case "G":
			if len(a.trips) > 0 {
				a.cursor = len(a.trips) - 1
			}
			return a, nil
		case "enter":
			if a.activeTab == 0 {
				a.activeTab = 1
			}
			return a, nil
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.trips = msg.Trips
		a.budgets = msg.Budgets
		a.expenses = msg.Expenses
		a.loadErr = msg.Err
		a.loaded = true
		a.loadTime = msg.LoadTime
		if a.cursor >= len(a.trips) {
			a.cursor = len(a.trips) - 1
		}
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.addForm != nil {
		return a.updateAddForm(msg)
	}

	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// selectedTrip returns the trip under the cursor, or nil.
func (a App) selectedTrip() *model.Trip {
	if a.cursor < 0 || a.cursor >= len(a.trips) {
		return nil
	}
	return &a.trips[a.cursor]
}

func (a App) converter() report.Converter {
	return report.Converter{Home: a.cfg.General.Currency, Rates: a.cfg.Rates}
}

// statsFor computes spend stats for one trip from the loaded snapshot.
func (a App) statsFor(t model.Trip) (model.SpendStats, *budget.TripBudget) {
	var b *budget.TripBudget
	if tb, ok := a.budgets[t.ID]; ok {
		b = &tb
	}
	stats := report.Summarize(t, b, a.expenses[t.ID], a.converter(), time.Now())
	return stats, b
}

// worstAlert scans all trips for the most severe budget alert.
func (a App) worstAlert() string {
	worst := report.AlertOK
	for _, t := range a.trips {
		stats, b := a.statsFor(t)
		if alert := report.AlertFor(b, stats); alert > worst {
			worst = alert
		}
	}
	switch worst {
	case report.AlertStop:
		return "⛔ budget exceeded"
	case report.AlertWarn:
		return "⚠ budget warning"
	default:
		return ""
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.addForm != nil {
		return a.addForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  tripkit needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ tripkit"))
	b.WriteString(subtitleStyle.Render(" · Travel Planner"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading trips..."))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"t b s x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Select trip"},
		{"Enter", "Open budget for selected trip"},
		{"n", "New trip"},
		{"r", "Reload data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, len(a.trips), a.worstAlert())

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderTripsTab(cw, contentH)
	case 1:
		content = a.renderBudgetTab(cw)
	case 2:
		content = a.renderSpendingTab(cw)
	case 3:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd loads the full store snapshot in a background command.
func loadDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		st, err := store.Open(dbPath)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		defer st.Close()

		trips, err := st.ListTrips()
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		budgets := make(map[string]budget.TripBudget, len(trips))
		expenses := make(map[string][]model.Expense, len(trips))
		for _, t := range trips {
			if b, ok, err := st.GetBudget(t.ID); err == nil && ok {
				budgets[t.ID] = b
			}
			if ex, err := st.ExpensesForTrip(t.ID); err == nil && len(ex) > 0 {
				expenses[t.ID] = ex
			}
		}

		return DataLoadedMsg{
			Trips:    trips,
			Budgets:  budgets,
			Expenses: expenses,
			LoadTime: time.Since(start),
		}
	}
}

// statusBadge renders a trip's derived status with its configured color.
func statusBadge(t model.Trip) string {
	st := status.Derive(t, time.Now())
	cfg, err := status.ConfigFor(st)
	if err != nil {
		return string(st)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Color)).Background(theme.Active.Surface)
	return style.Render(cfg.Icon + " " + cfg.Label)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-space separator
	}
	return -1
}
