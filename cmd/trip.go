package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/status"
	"github.com/oskarlind/tripkit/internal/store"
)

var (
	flagTripCity    string
	flagTripCountry string
	flagTripStart   string
	flagTripEnd     string
	flagTripStyle   string
	flagTripNotes   string
	flagTripBudget  float64
	flagTripDaily   float64
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage trips",
}

var tripAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripAdd,
}

var tripListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trips",
	RunE:  runTripList,
}

var tripShowCmd = &cobra.Command{
	Use:   "show <trip>",
	Short: "Show one trip in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripShow,
}

var tripSetCmd = &cobra.Command{
	Use:   "set <trip> <field> <value>",
	Short: "Update a trip field (name, city, country, start, end, style, notes, status)",
	Args:  cobra.ExactArgs(3),
	RunE:  runTripSet,
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete <trip>",
	Short: "Delete a trip and everything attached to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripDelete,
}

var legCmd = &cobra.Command{
	Use:   "leg",
	Short: "Manage country legs of a multi-destination trip",
}

var legAddCmd = &cobra.Command{
	Use:   "add <trip> <country> <start> <end>",
	Short: "Add a country leg",
	Args:  cobra.ExactArgs(4),
	RunE:  runLegAdd,
}

var legDeleteCmd = &cobra.Command{
	Use:   "delete <leg-id>",
	Short: "Delete a leg",
	Args:  cobra.ExactArgs(1),
	RunE:  runLegDelete,
}

func init() {
	tripAddCmd.Flags().StringVar(&flagTripCity, "city", "", "Destination city")
	tripAddCmd.Flags().StringVar(&flagTripCountry, "country", "", "Destination country")
	tripAddCmd.Flags().StringVar(&flagTripStart, "start", "", "Start date (YYYY-MM-DD)")
	tripAddCmd.Flags().StringVar(&flagTripEnd, "end", "", "End date (YYYY-MM-DD)")
	tripAddCmd.Flags().StringVar(&flagTripStyle, "style", "", "Travel style (Budget, Mid-range, Luxury)")
	tripAddCmd.Flags().StringVar(&flagTripNotes, "notes", "", "Free-form notes")
	tripAddCmd.Flags().Float64Var(&flagTripBudget, "budget", 0, "Total budget amount")
	tripAddCmd.Flags().Float64Var(&flagTripDaily, "daily", 0, "Daily budget amount")

	legCmd.AddCommand(legAddCmd, legDeleteCmd)
	tripCmd.AddCommand(tripAddCmd, tripListCmd, tripShowCmd, tripSetCmd, tripDeleteCmd, legCmd)
	rootCmd.AddCommand(tripCmd)
}

func parseDateFlag(val, name string) (*time.Time, error) {
	if val == "" {
		return nil, nil
	}
	d, err := time.Parse(model.DateLayout, val)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: use YYYY-MM-DD", name, val)
	}
	return &d, nil
}

// budgetMethodFor derives the budget method from which inputs are set.
func budgetMethodFor(hasAmount, hasDates bool) model.BudgetMethod {
	switch {
	case hasAmount && hasDates:
		return model.BudgetMethodBoth
	case hasAmount:
		return model.BudgetMethodTotal
	case hasDates:
		return model.BudgetMethodDates
	default:
		return model.BudgetMethodNone
	}
}

func runTripAdd(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	start, err := parseDateFlag(flagTripStart, "start")
	if err != nil {
		return err
	}
	end, err := parseDateFlag(flagTripEnd, "end")
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("end date is before start date")
	}

	now := time.Now()
	trip := model.Trip{
		ID:        uuid.NewString(),
		Name:      args[0],
		Notes:     flagTripNotes,
		CreatedAt: now,
		UpdatedAt: now,
		StartDate: start,
		EndDate:   end,
	}

	if flagTripCity != "" || flagTripCountry != "" {
		trip.Destination = &model.Destination{Name: flagTripCity, Country: flagTripCountry}
	}
	if flagTripStyle != "" {
		style, ok := parseTravelStyle(flagTripStyle)
		if !ok {
			return fmt.Errorf("unknown style %q: use Budget, Mid-range, or Luxury", flagTripStyle)
		}
		trip.TravelStyle = style
	}
	if flagTripBudget > 0 {
		trip.TotalBudget = &flagTripBudget
	}
	if flagTripDaily > 0 {
		trip.DailyBudget = &flagTripDaily
	}
	trip.BudgetMethod = budgetMethodFor(trip.HasBudgetAmount(), start != nil || end != nil)

	if err := st.SaveTrip(trip); err != nil {
		return err
	}

	fmt.Printf("Created trip %s (%s)\n", trip.Name, shortID(trip.ID))
	pct := status.Completion(trip)
	fmt.Printf("Plan completion: %d%%\n", pct)
	for _, hint := range status.Suggestions(trip) {
		fmt.Printf("  • %s\n", hint)
	}
	return nil
}

func parseTravelStyle(s string) (model.TravelStyle, bool) {
	switch strings.ToLower(s) {
	case "budget":
		return model.TravelStyleBudget, true
	case "mid-range", "midrange", "mid":
		return model.TravelStyleMidRange, true
	case "luxury":
		return model.TravelStyleLuxury, true
	default:
		return "", false
	}
}

func runTripList(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	trips, err := st.ListTrips()
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		fmt.Println("\n  No trips yet. Create one with `tripkit trip add <name>`.")
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(trips))
	for _, t := range trips {
		dest := t.Country()
		if t.Destination != nil && t.Destination.Name != "" {
			dest = t.Destination.Name
		}
		if dest == "" {
			dest = "—"
		}

		st := status.Derive(t, now)
		label := string(st)
		if sc, err := status.ConfigFor(st); err == nil {
			label = sc.Icon + " " + sc.Label
		}

		rows = append(rows, []string{
			cli.Truncate(t.Name, 28),
			cli.Truncate(dest, 20),
			cli.FormatDateRange(t.StartDate, t.EndDate),
			label,
			strconv.Itoa(status.Completion(t)) + "%",
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Trips (%d)", len(trips)),
		Headers: []string{"Name", "Destination", "Dates", "Status", "Plan"},
		Rows:    rows,
	}))
	return nil
}

func runTripShow(_ *cobra.Command, args []string) error {
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

	now := time.Now()
	derived := status.Derive(trip, now)
	statusLabel := string(derived)
	if sc, err := status.ConfigFor(derived); err == nil {
		statusLabel = cli.RenderStatus(sc.Label, sc.Icon, sc.Color)
	}

	dest := "—"
	if trip.Destination != nil {
		dest = trip.Destination.Name
		if trip.Destination.Country != "" {
			if dest != "" {
				dest += ", "
			}
			dest += trip.Destination.Country
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(trip.Name))
	fmt.Println()

	rows := [][]string{
		{"ID", shortID(trip.ID)},
		{"Destination", dest},
		{"Dates", cli.FormatDateRange(trip.StartDate, trip.EndDate)},
		{"Status", statusLabel},
		{"Plan", cli.RenderCompletionBar(status.Completion(trip), 20)},
		{"---"},
		{"Style", styleOrDash(trip.TravelStyle)},
		{"Budget method", string(trip.BudgetMethod)},
	}
	if trip.TotalBudget != nil {
		rows = append(rows, []string{"Total budget", cli.FormatMoney(*trip.TotalBudget, cfg.General.Currency)})
	}
	if trip.DailyBudget != nil {
		rows = append(rows, []string{"Daily budget", cli.FormatMoney(*trip.DailyBudget, cfg.General.Currency)})
	}
	if trip.Notes != "" {
		rows = append(rows, []string{"Notes", cli.Truncate(trip.Notes, 50)})
	}
	if len(trip.Participants) > 0 {
		rows = append(rows, []string{"Travelers", strings.Join(trip.Participants, ", ")})
	}

	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	legs, err := st.LegsForTrip(trip.ID)
	if err != nil {
		return err
	}
	if len(legs) > 0 {
		legRows := make([][]string, 0, len(legs))
		for _, leg := range legs {
			legRows = append(legRows, []string{
				shortID(leg.ID),
				leg.Country,
				cli.FormatDateRange(leg.StartDate, leg.EndDate),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Legs",
			Headers: []string{"ID", "Country", "Dates"},
			Rows:    legRows,
		}))
	}

	if hints := status.Suggestions(trip); len(hints) > 0 {
		fmt.Println("\n  Next steps:")
		for _, hint := range hints {
			fmt.Printf("    • %s\n", hint)
		}
	}
	return nil
}

func styleOrDash(s model.TravelStyle) string {
	if s == "" {
		return "—"
	}
	return string(s)
}

func runTripSet(_ *cobra.Command, args []string) error {
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

	field, value := strings.ToLower(args[1]), args[2]
	switch field {
	case "name":
		trip.Name = value
	case "city":
		if trip.Destination == nil {
			trip.Destination = &model.Destination{}
		}
		trip.Destination.Name = value
	case "country":
		if trip.Destination == nil {
			trip.Destination = &model.Destination{}
		}
		trip.Destination.Country = value
	case "start":
		d, err := parseDateFlag(value, "start")
		if err != nil {
			return err
		}
		trip.StartDate = d
	case "end":
		d, err := parseDateFlag(value, "end")
		if err != nil {
			return err
		}
		trip.EndDate = d
	case "style":
		style, ok := parseTravelStyle(value)
		if !ok {
			return fmt.Errorf("unknown style %q: use Budget, Mid-range, or Luxury", value)
		}
		trip.TravelStyle = style
	case "notes":
		trip.Notes = value
	case "status":
		// Only cancellation is forced by hand; everything else derives.
		switch strings.ToLower(value) {
		case "cancelled", "canceled":
			trip.ManualStatus = model.StatusCancelled
		case "auto", "":
			trip.ManualStatus = ""
		default:
			return fmt.Errorf("status can only be set to \"cancelled\" or \"auto\"")
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	if trip.StartDate != nil && trip.EndDate != nil && trip.EndDate.Before(*trip.StartDate) {
		return fmt.Errorf("end date is before start date")
	}

	trip.BudgetMethod = budgetMethodFor(trip.HasBudgetAmount(), trip.StartDate != nil || trip.EndDate != nil)
	trip.UpdatedAt = time.Now()

	if err := st.SaveTrip(trip); err != nil {
		return err
	}
	fmt.Printf("Updated %s of %s\n", field, trip.Name)
	fmt.Printf("Plan completion: %d%%\n", status.Completion(trip))
	return nil
}

func runTripDelete(_ *cobra.Command, args []string) error {
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
	if err := st.DeleteTrip(trip.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s and all its legs, expenses, and budget\n", trip.Name)
	return nil
}

func runLegAdd(_ *cobra.Command, args []string) error {
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

	start, err := parseDateFlag(args[2], "start")
	if err != nil {
		return err
	}
	end, err := parseDateFlag(args[3], "end")
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("end date is before start date")
	}

	legs, err := st.LegsForTrip(trip.ID)
	if err != nil {
		return err
	}

	leg := model.Leg{
		ID:        uuid.NewString(),
		TripID:    trip.ID,
		Country:   args[1],
		StartDate: start,
		EndDate:   end,
		Position:  len(legs),
	}
	if err := st.SaveLeg(leg); err != nil {
		return err
	}
	fmt.Printf("Added leg %s to %s\n", leg.Country, trip.Name)
	return nil
}

func runLegDelete(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := resolveLegID(st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteLeg(id); err != nil {
		return err
	}
	fmt.Println("Deleted leg")
	return nil
}

// resolveLegID expands an id prefix (as shown by `trip show`) into the
// full leg id.
func resolveLegID(st *store.Store, query string) (string, error) {
	trips, err := st.ListTrips()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range trips {
		legs, err := st.LegsForTrip(t.ID)
		if err != nil {
			return "", err
		}
		for _, leg := range legs {
			if leg.ID == query {
				return leg.ID, nil
			}
			if strings.HasPrefix(leg.ID, query) {
				matches = append(matches, leg.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no leg matches %q", query)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d legs, use a longer prefix", query, len(matches))
	}
}
