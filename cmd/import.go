package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oskarlind/tripkit/internal/importer"
)

var (
	flagImportForce   bool
	flagImportWorkers int
)

var importCmd = &cobra.Command{
	Use:   "import <trip> <dir>",
	Short: "Bulk-import expenses from exported JSON files",
	Long: "Scans a directory tree for .json expense exports and loads them into the\n" +
		"trip. Files already imported are skipped unless they changed or --force is set.",
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportForce, "force", false, "Re-import unchanged files")
	importCmd.Flags().IntVar(&flagImportWorkers, "workers", 0, "Parallel parse workers (0 = auto)")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
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

	result, err := importer.Import(st, trip.ID, args[1], importer.Options{
		Workers: flagImportWorkers,
		Force:   flagImportForce,
	})
	if err != nil {
		return err
	}

	if result.FilesScanned == 0 {
		fmt.Printf("No export files found in %s\n", args[1])
		return nil
	}

	fmt.Printf("Imported %d expenses from %d files into %s",
		result.Expenses, result.FilesImported, trip.Name)
	if result.FilesSkipped > 0 {
		fmt.Printf(" (%d unchanged, skipped)", result.FilesSkipped)
	}
	fmt.Println()

	if result.BadRows > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d rows had unusable amounts and were dropped\n", result.BadRows)
	}
	for _, err := range result.Errors {
		fmt.Fprintf(os.Stderr, "  %v\n", err)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d files failed to import", len(result.Errors))
	}
	return nil
}
