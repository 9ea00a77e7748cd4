package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/config"
	"github.com/oskarlind/tripkit/internal/costdata"
	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/store"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "tripkit",
	Short: "Local-first travel planner and budget tracker",
	Long:  "Plan trips, suggest budgets from destination cost data, and track spending.",
	RunE:  runTripList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
}

// loadConfig loads config, returning defaults on error so commands
// always have something to work with.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  config unreadable, using defaults: %v\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// dataDir resolves the effective data directory: flag, then config,
// then the XDG default.
func dataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return config.DefaultDataDir()
}

func dbPath(cfg config.Config) string {
	return filepath.Join(dataDir(cfg), "tripkit.db")
}

// openStore opens the trip database, creating the data directory on
// first use.
func openStore(cfg config.Config) (*store.Store, error) {
	dir := dataDir(cfg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return store.Open(filepath.Join(dir, "tripkit.db"))
}

// costSource builds the cost-data table with any user overrides from
// costs.toml layered on top of the built-in data.
func costSource() costdata.Source {
	overrides, err := costdata.LoadOverrides(config.CostsPath())
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  cost overrides ignored: %v\n", err)
	}
	return costdata.NewTable(overrides)
}

// findTrip resolves a trip by exact id, id prefix, or case-insensitive
// name substring, and errors on ambiguity.
func findTrip(st *store.Store, query string) (model.Trip, error) {
	if trip, err := st.GetTrip(query); err == nil {
		return trip, nil
	}

	trips, err := st.ListTrips()
	if err != nil {
		return model.Trip{}, err
	}

	var matches []model.Trip
	q := strings.ToLower(query)
	for _, t := range trips {
		if strings.HasPrefix(t.ID, query) || strings.Contains(strings.ToLower(t.Name), q) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return model.Trip{}, fmt.Errorf("no trip matches %q", query)
	case 1:
		return matches[0], nil
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = fmt.Sprintf("%s (%s)", m.Name, shortID(m.ID))
		}
		return model.Trip{}, fmt.Errorf("%q is ambiguous: %s", query, strings.Join(names, ", "))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
