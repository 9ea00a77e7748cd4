package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to tripkit!")
	fmt.Println()

	// 1. Home currency
	fmt.Println("  1. Home currency")
	fmt.Println("     Expenses in other currencies convert into this one.")
	fmt.Printf("     Current: %s\n", cfg.General.Currency)
	fmt.Print("     > ")
	currency, _ := reader.ReadString('\n')
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) == 3 {
		cfg.General.Currency = currency
	}
	fmt.Println()

	// 2. Default travel style
	fmt.Println("  2. Default travel style")
	fmt.Println("     (1) frugal")
	fmt.Println("     (2) balanced [default]")
	fmt.Println("     (3) luxury")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.DefaultStyle = "frugal"
	case "3":
		cfg.General.DefaultStyle = "luxury"
	default:
		cfg.General.DefaultStyle = "balanced"
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Tokyo Night")
	fmt.Println("     (3) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "tokyo-night"
	case "3":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `tripkit setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
