package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/cli"
	"github.com/oskarlind/tripkit/internal/costdata"
	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/report"
)

var (
	flagExpenseCurrency string
	flagExpenseCategory string
	flagExpenseDate     string
	flagExpenseNote     string
	flagExpenseFilter   string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Record and review trip expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <trip> <amount>",
	Short: "Record an expense",
	Args:  cobra.ExactArgs(2),
	RunE:  runExpenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list <trip>",
	Short: "List expenses, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseList,
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete <expense-id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseDelete,
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagExpenseCurrency, "currency", "c", "", "Currency code (default: home currency)")
	expenseAddCmd.Flags().StringVar(&flagExpenseCategory, "category", "", "Spend category")
	expenseAddCmd.Flags().StringVar(&flagExpenseDate, "date", "", "Spend date (YYYY-MM-DD, default today)")
	expenseAddCmd.Flags().StringVar(&flagExpenseNote, "note", "", "Free-form note")
	expenseListCmd.Flags().StringVar(&flagExpenseFilter, "category", "", "Only show one category")

	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseDeleteCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseAdd(_ *cobra.Command, args []string) error {
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

	amount, err := costdata.CleanAmount(args[1])
	if err != nil || amount <= 0 {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	spentOn := time.Now()
	if flagExpenseDate != "" {
		d, err := time.Parse(model.DateLayout, flagExpenseDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", flagExpenseDate)
		}
		spentOn = d
	}

	currency := strings.ToUpper(flagExpenseCurrency)
	if currency == "" {
		currency = cfg.General.Currency
	}

	e := model.Expense{
		ID:       uuid.NewString(),
		TripID:   trip.ID,
		Amount:   amount,
		Currency: currency,
		Category: strings.ToLower(flagExpenseCategory),
		SpentOn:  spentOn,
		Note:     flagExpenseNote,
	}
	if err := st.AddExpense(e); err != nil {
		return err
	}

	recorded := fmt.Sprintf("Recorded %s on %s", cli.FormatMoney(amount, currency), trip.Name)
	if rate, ok := cfg.Rate(currency); ok && currency != cfg.General.Currency {
		recorded += fmt.Sprintf(" (≈%s)", cli.FormatMoney(amount*rate, cfg.General.Currency))
	}
	fmt.Println(recorded)

	// Surface the running position against the budget when one exists.
	if b, ok, err := st.GetBudget(trip.ID); err == nil && ok {
		expenses, err := st.ExpensesForTrip(trip.ID)
		if err == nil {
			stats := summarizeTrip(cfg, trip, &b, expenses)
			fmt.Printf("  %s\n", cli.RenderBudgetBar(stats.BudgetUsedPct, b.Thresholds.Warn, b.Thresholds.Stop, 24))
			if report.AlertFor(&b, stats) == report.AlertStop {
				fmt.Println("  ⛔ Budget exceeded")
			}
		}
	}
	return nil
}

func runExpenseList(_ *cobra.Command, args []string) error {
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
	expenses = report.FilterByCategory(expenses, strings.ToLower(flagExpenseFilter))
	if len(expenses) == 0 {
		fmt.Printf("\n  No expenses recorded for %s yet.\n", trip.Name)
		return nil
	}

	conv := report.Converter{Home: cfg.General.Currency, Rates: cfg.Rates}

	rows := make([][]string, 0, len(expenses))
	var total float64
	for _, e := range expenses {
		converted, _ := conv.Convert(e)
		total += converted

		category := e.Category
		if category == "" {
			category = "misc"
		}
		date := "—"
		if !e.SpentOn.IsZero() {
			date = e.SpentOn.Format(model.DateLayout)
		}
		rows = append(rows, []string{
			shortID(e.ID),
			date,
			category,
			cli.FormatMoney(e.Amount, e.Currency),
			cli.Truncate(e.Note, 30),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "total", cli.FormatMoney(total, cfg.General.Currency), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Expenses: %s (%d)", trip.Name, len(expenses)),
		Headers: []string{"ID", "Date", "Category", "Amount", "Note"},
		Rows:    rows,
	}))
	return nil
}

func runExpenseDelete(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteExpense(args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted expense")
	return nil
}
