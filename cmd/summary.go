package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/config"
	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <trip>",
	Short: "Spend-vs-budget summary for one trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

// summarizeTrip is the shared aggregation path used by the spend
// commands.
func summarizeTrip(cfg config.Config, trip model.Trip, b *budget.TripBudget, expenses []model.Expense) model.SpendStats {
	conv := report.Converter{Home: cfg.General.Currency, Rates: cfg.Rates}
	return report.Summarize(trip, b, expenses, conv, time.Now())
}

func runSummary(_ *cobra.Command, args []string) error {
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

	expenses, err := st.ExpensesForTrip(trip.ID)
	if err != nil {
		return err
	}

	var b *budget.TripBudget
	if tb, ok, err := st.GetBudget(trip.ID); err == nil && ok {
		b = &tb
	}

	stats := summarizeTrip(cfg, trip, b, expenses)
	currency := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING  %s", cli.Truncate(trip.Name, 36))))
	fmt.Println()

	rows := [][]string{
		{"Spent", cli.FormatMoney(stats.Total, currency)},
		{"Expenses", cli.FormatNumber(int64(len(expenses)))},
	}
	if stats.DaysElapsed > 0 {
		rows = append(rows, []string{"Days elapsed", cli.FormatDayCount(stats.DaysElapsed)})
		rows = append(rows, []string{"Burn rate", cli.FormatMoney(stats.DailyBurnRate, currency) + "/day"})
	}
	if stats.DaysRemaining > 0 {
		rows = append(rows, []string{"Days remaining", cli.FormatDayCount(stats.DaysRemaining)})
	}
	rows = append(rows, []string{"Projected", cli.FormatMoney(stats.ProjectedTotal, currency)})

	if b != nil && b.Total > 0 {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Budget", cli.FormatMoney(b.Total, b.Currency)})
		rows = append(rows, []string{"Used", cli.FormatPercent(stats.BudgetUsedPct)})
		rows = append(rows, []string{"Remaining", cli.FormatMoney(stats.Remaining, currency)})
	}

	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	if b != nil && b.Total > 0 {
		fmt.Printf("\n  %s\n", cli.RenderBudgetBar(stats.BudgetUsedPct, b.Thresholds.Warn, b.Thresholds.Stop, 30))
	}

	// Category breakdown, largest first
	if len(stats.ByCategory) > 0 {
		type cat struct {
			name   string
			amount float64
		}
		cats := make([]cat, 0, len(stats.ByCategory))
		peak := 0.0
		for name, amount := range stats.ByCategory {
			cats = append(cats, cat{name, amount})
			if amount > peak {
				peak = amount
			}
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i].amount > cats[j].amount })

		fmt.Println()
		for _, c := range cats {
			fmt.Println(cli.RenderHorizontalBar(c.name, c.amount, peak, 28, currency))
		}
	}

	if stats.Unconverted > 0 {
		fmt.Printf("\n  %d expenses in currencies without a configured rate (counted at face value)\n", stats.Unconverted)
	}
	return nil
}
