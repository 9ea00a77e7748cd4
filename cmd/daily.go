package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/report"
)

var flagDailyDays int

var dailyCmd = &cobra.Command{
	Use:   "daily <trip>",
	Short: "Daily spend breakdown with sparkline",
	Args:  cobra.ExactArgs(1),
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDailyDays, "days", "n", 14, "Window in days")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, args []string) error {
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
	if len(expenses) == 0 {
		fmt.Printf("\n  No expenses recorded for %s yet.\n", trip.Name)
		return nil
	}

	until := time.Now()
	if trip.EndDate != nil && trip.EndDate.Before(until) {
		until = *trip.EndDate
	}
	since := until.AddDate(0, 0, -(flagDailyDays - 1))

	conv := report.Converter{Home: cfg.General.Currency, Rates: cfg.Rates}
	days := report.ByDay(expenses, conv, since, until)

	// Sparkline reads oldest-left; ByDay is newest-first.
	spark := make([]float64, len(days))
	for i, d := range days {
		spark[len(days)-1-i] = d.Amount
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY SPEND  Last %dd", flagDailyDays)))
	fmt.Printf("\n  %s\n\n", cli.RenderSparkline(spark))

	rows := make([][]string, 0, len(days))
	var total float64
	for i, d := range days {
		total += d.Amount

		// days is newest-first, so the previous day sits one index later.
		delta := ""
		if i+1 < len(days) {
			delta = cli.FormatDelta(d.Amount, days[i+1].Amount, cfg.General.Currency)
		}
		rows = append(rows, []string{
			d.Date.Format(model.DateLayout),
			cli.FormatMoney(d.Amount, cfg.General.Currency),
			delta,
			cli.FormatNumber(int64(d.Expenses)),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"total", cli.FormatMoney(total, cfg.General.Currency), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Spent", "Δ", "Expenses"},
		Rows:    rows,
	}))
	return nil
}
