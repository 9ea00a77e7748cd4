package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/config"
	"github.com/oskarlind/tripkit/internal/costdata"
)

var costsCmd = &cobra.Command{
	Use:   "costs [country]",
	Short: "Show daily cost estimates for a destination",
	Long: "Without arguments, lists all known destinations. With a country,\n" +
		"shows the per-category daily costs at each travel style.",
	Args: cobra.MaximumNArgs(1),
	RunE: runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)
}

func runCosts(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	overrides, err := costdata.LoadOverrides(config.CostsPath())
	if err != nil {
		return fmt.Errorf("loading cost overrides: %w", err)
	}
	table := costdata.NewTable(overrides)

	if len(args) == 0 {
		fmt.Println("\n  Known destinations:")
		for _, country := range table.Countries() {
			fmt.Printf("    %s\n", country)
		}
		fmt.Println("\n  Add your own in " + config.CostsPath())
		return nil
	}

	country := args[0]
	if _, ok := table.Lookup(country); !ok {
		fmt.Printf("No cost data for %q; estimates fall back to the built-in defaults.\n", country)
	}

	currency := cfg.General.Currency
	styles := []budget.Style{budget.StyleFrugal, budget.StyleBalanced, budget.StyleLuxury}

	rows := make([][]string, 0, len(styles))
	for _, style := range styles {
		costs := budget.DailyCosts(country, style, table)
		rows = append(rows, []string{
			string(style),
			cli.FormatMoney(costs.Accommodation, currency),
			cli.FormatMoney(costs.Food, currency),
			cli.FormatMoney(costs.Transport, currency),
			cli.FormatMoney(costs.Activities, currency),
			cli.FormatMoney(costs.Misc, currency),
			cli.FormatMoney(costs.Sum(), currency),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Daily costs: " + costdata.NormalizeCountry(country),
		Headers: []string{"Style", "Stay", "Food", "Transport", "Fun", "Misc", "Total/day"},
		Rows:    rows,
	}))
	return nil
}
