// Package cmd implements the tripkit CLI commands.
package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Home currency: %s\n", cfg.General.Currency)
	fmt.Printf("    Default style: %s\n", cfg.General.DefaultStyle)
	fmt.Printf("    Data dir:      %s\n", dataDir(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Rates]")
	if len(cfg.Rates) == 0 {
		fmt.Println("    No exchange rates configured.")
		fmt.Printf("    Add a [rates] table to %s, e.g. EUR = 1.08\n", config.Path())
	} else {
		currencies := make([]string, 0, len(cfg.Rates))
		for c := range cfg.Rates {
			currencies = append(currencies, c)
		}
		sort.Strings(currencies)
		for _, c := range currencies {
			fmt.Printf("    1 %s = %.4f %s\n", c, cfg.Rates[c], cfg.General.Currency)
		}
	}
	fmt.Println()

	fmt.Println("  Run `tripkit setup` to reconfigure.")
	return nil
}
