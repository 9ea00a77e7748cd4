package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status <trip>",
	Short: "Show a trip's lifecycle status and plan completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, args []string) error {
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

	derived := status.Derive(trip, time.Now())
	sc, err := status.ConfigFor(derived)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s  %s\n\n", cli.Truncate(trip.Name, 40), cli.RenderStatus(sc.Label, sc.Icon, sc.Color))
	fmt.Printf("  %s\n", cli.RenderCompletionBar(status.Completion(trip), 30))

	if hints := status.Suggestions(trip); len(hints) > 0 {
		fmt.Println("\n  Next steps:")
		for _, hint := range hints {
			fmt.Printf("    • %s\n", hint)
		}
	}
	return nil
}
