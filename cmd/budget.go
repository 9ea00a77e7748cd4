package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/report"
	"github.com/oskarlind/tripkit/internal/store"
)

var flagBudgetStyle string

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Suggest, edit, and check trip budgets",
}

var budgetSuggestCmd = &cobra.Command{
	Use:   "suggest <trip>",
	Short: "Generate a budget from destination cost data",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSuggest,
}

var budgetShowCmd = &cobra.Command{
	Use:   "show <trip>",
	Short: "Show the trip's budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <trip> <category> <amount>",
	Short: "Set one category amount and rebalance totals",
	Args:  cobra.ExactArgs(3),
	RunE:  runBudgetSet,
}

var budgetConvertCmd = &cobra.Command{
	Use:   "convert <trip> <style>",
	Short: "Rescale the budget to a different travel style",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetConvert,
}

var budgetCheckCmd = &cobra.Command{
	Use:   "check <trip>",
	Short: "Check spend against the budget thresholds",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetCheck,
}

func init() {
	budgetSuggestCmd.Flags().StringVar(&flagBudgetStyle, "style", "", "Override style (frugal, balanced, luxury)")

	budgetCmd.AddCommand(budgetSuggestCmd, budgetShowCmd, budgetSetCmd, budgetConvertCmd, budgetCheckCmd)
	rootCmd.AddCommand(budgetCmd)
}

// styleForTrip resolves the engine style: explicit flag, then the
// trip's travel style, then the configured default.
func styleForTrip(trip model.Trip, defaultStyle string) (budget.Style, error) {
	if flagBudgetStyle != "" {
		s, err := parseEngineStyle(flagBudgetStyle)
		if err != nil {
			return "", err
		}
		return s, nil
	}
	if s, ok := budget.StyleForTravelStyle(trip.TravelStyle); ok {
		return s, nil
	}
	if s, err := parseEngineStyle(defaultStyle); err == nil {
		return s, nil
	}
	return budget.StyleBalanced, nil
}

func parseEngineStyle(s string) (budget.Style, error) {
	switch budget.Style(strings.ToLower(s)) {
	case budget.StyleFrugal:
		return budget.StyleFrugal, nil
	case budget.StyleBalanced:
		return budget.StyleBalanced, nil
	case budget.StyleLuxury:
		return budget.StyleLuxury, nil
	default:
		return "", fmt.Errorf("unknown style %q: use frugal, balanced, or luxury", s)
	}
}

// legsForBudget returns stored legs, synthesizing one from the trip's
// own destination and dates when none exist.
func legsForBudget(st *store.Store, trip model.Trip) ([]model.Leg, error) {
	legs, err := st.LegsForTrip(trip.ID)
	if err != nil {
		return nil, err
	}
	if len(legs) > 0 {
		return legs, nil
	}
	if trip.Country() != "" || trip.StartDate != nil {
		return []model.Leg{{
			TripID:    trip.ID,
			Country:   trip.Country(),
			StartDate: trip.StartDate,
			EndDate:   trip.EndDate,
		}}, nil
	}
	return nil, nil
}

func runBudgetSuggest(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	trip, err := findTrip(st, args[0])
	if err != nil {
		return err
	}

	style, err := styleForTrip(trip, cfg.General.DefaultStyle)
	if err != nil {
		return err
	}

	legs, err := legsForBudget(st, trip)
	if err != nil {
		return err
	}

	b := budget.Suggest(legs, style, cfg.General.Currency, costSource())
	if err := st.SaveBudget(trip.ID, b); err != nil {
		return err
	}

	fmt.Printf("Suggested %s budget for %s\n", b.Style, trip.Name)
	printBudget(b)
	return nil
}

func runBudgetShow(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	trip, err := findTrip(st, args[0])
	if err != nil {
		return err
	}

	b, ok, err := st.GetBudget(trip.ID)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("No budget for %s. Run `tripkit budget suggest %s` first.\n", trip.Name, shortID(trip.ID))
		return nil
	}

	fmt.Printf("Budget for %s\n", trip.Name)
	printBudget(b)
	return nil
}

func printBudget(b budget.TripBudget) {
	source := "set by hand"
	if b.AutoSuggested {
		source = "auto-suggested"
	}

	rows := [][]string{
		{"Total", cli.FormatMoney(b.Total, b.Currency)},
		{"Per day", cli.FormatMoney(b.PerDay, b.Currency)},
		{"Style", string(b.Style)},
		{"Source", source},
		{"Thresholds", fmt.Sprintf("warn %d%% / stop %d%%", b.Thresholds.Warn, b.Thresholds.Stop)},
		{"---"},
		{"accommodation", cli.FormatMoney(b.Categories.Accommodation, b.Currency)},
		{"food", cli.FormatMoney(b.Categories.Food, b.Currency)},
		{"transport", cli.FormatMoney(b.Categories.Transport, b.Currency)},
		{"activities", cli.FormatMoney(b.Categories.Activities, b.Currency)},
		{"misc", cli.FormatMoney(b.Categories.Misc, b.Currency)},
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	if v := budget.Validate(b); !v.IsValid {
		fmt.Printf("\n  Categories differ from total by %s\n", cli.FormatMoney(v.Difference, b.Currency))
	}
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	trip, err := findTrip(st, args[0])
	if err != nil {
		return err
	}

	b, ok, err := st.GetBudget(trip.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no budget for %s: run `tripkit budget suggest` first", trip.Name)
	}

	var amount float64
	if _, err := fmt.Sscanf(args[2], "%f", &amount); err != nil || amount < 0 {
		return fmt.Errorf("invalid amount %q", args[2])
	}

	switch strings.ToLower(args[1]) {
	case "accommodation":
		b.Categories.Accommodation = amount
	case "food":
		b.Categories.Food = amount
	case "transport", "transportation":
		b.Categories.Transport = amount
	case "activities", "entertainment":
		b.Categories.Activities = amount
	case "misc":
		b.Categories.Misc = amount
	default:
		return fmt.Errorf("unknown category %q: use accommodation, food, transport, activities, or misc", args[1])
	}

	b = budget.RecalculateTotals(b, trip.LengthDays())
	if err := st.SaveBudget(trip.ID, b); err != nil {
		return err
	}

	fmt.Printf("Updated %s for %s\n", strings.ToLower(args[1]), trip.Name)
	printBudget(b)
	return nil
}

func runBudgetConvert(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	trip, err := findTrip(st, args[0])
	if err != nil {
		return err
	}

	newStyle, err := parseEngineStyle(args[1])
	if err != nil {
		return err
	}

	b, ok, err := st.GetBudget(trip.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no budget for %s: run `tripkit budget suggest` first", trip.Name)
	}
	if b.Style == newStyle {
		fmt.Printf("Budget is already %s\n", newStyle)
		return nil
	}

	oldTotal := b.Total
	b = budget.ConvertStyle(b, newStyle)
	if err := st.SaveBudget(trip.ID, b); err != nil {
		return err
	}

	fmt.Printf("Converted %s to %s: %s → %s\n",
		trip.Name, newStyle,
		cli.FormatMoney(oldTotal, b.Currency),
		cli.FormatMoney(b.Total, b.Currency))
	printBudget(b)
	return nil
}

func runBudgetCheck(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	trip, err := findTrip(st, args[0])
	if err != nil {
		return err
	}

	b, ok, err := st.GetBudget(trip.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no budget for %s: run `tripkit budget suggest` first", trip.Name)
	}

	expenses, err := st.ExpensesForTrip(trip.ID)
	if err != nil {
		return err
	}

	stats := summarizeTrip(cfg, trip, &b, expenses)
	alert := report.AlertFor(&b, stats)

	fmt.Printf("\n  %s\n", cli.RenderBudgetBar(stats.BudgetUsedPct, b.Thresholds.Warn, b.Thresholds.Stop, 30))
	fmt.Printf("  Spent %s of %s (%s remaining)\n",
		cli.FormatMoney(stats.Total, cfg.General.Currency),
		cli.FormatMoney(b.Total, b.Currency),
		cli.FormatMoney(stats.Remaining, cfg.General.Currency))

	switch alert {
	case report.AlertStop:
		fmt.Println("  ⛔ Budget exceeded, stop spending")
	case report.AlertWarn:
		fmt.Println("  ⚠ Approaching budget limit")
	default:
		fmt.Println("  ✓ Within budget")
	}
	return nil
}
