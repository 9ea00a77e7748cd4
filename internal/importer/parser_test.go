package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oskarlind/tripkit/internal/model"
	"github.com/oskarlind/tripkit/internal/store"
)

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseFile_CleansAmountsAndDropsBadRows(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "may.json", `[
		{"amount": "€1,200", "currency": "eur", "category": "Accommodation", "date": "2026-05-01"},
		{"amount": "12.50", "currency": "USD", "category": "food", "note": "lunch"},
		{"amount": "n/a", "category": "food"},
		{"amount": "0", "category": "food"}
	]`)

	result := ParseFile(path)
	if result.Err != nil {
		t.Fatalf("ParseFile: %v", result.Err)
	}
	if len(result.Expenses) != 2 {
		t.Fatalf("len = %d, want 2", len(result.Expenses))
	}
	if result.BadRows != 2 {
		t.Fatalf("BadRows = %d, want 2 (unparseable and zero)", result.BadRows)
	}

	first := result.Expenses[0]
	if first.Amount != 1200 || first.Currency != "EUR" || first.Category != "accommodation" {
		t.Fatalf("first = %+v", first)
	}
	if first.SpentOn.Format(model.DateLayout) != "2026-05-01" {
		t.Fatalf("SpentOn = %v", first.SpentOn)
	}
	if result.Expenses[1].Note != "lunch" {
		t.Fatalf("second = %+v", result.Expenses[1])
	}
}

func TestParseFile_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "broken.json", `{"not": "an array"`)

	if result := ParseFile(path); result.Err == nil {
		t.Fatal("expected parse error for malformed file")
	}
}

func TestScanDir_FindsOnlyJSON(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "a.json", "[]")
	writeExport(t, dir, "b.JSON", "[]")
	writeExport(t, dir, "notes.txt", "hi")

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len = %d, want 2", len(files))
	}
}

func TestScanDir_MissingDirIsEmpty(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil || files != nil {
		t.Fatalf("ScanDir missing dir = %v, %v", files, err)
	}
}

func TestImport_SkipsUnchangedFiles(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "tripkit.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.SaveTrip(model.Trip{ID: "t1", Name: "X"}); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	dir := t.TempDir()
	writeExport(t, dir, "may.json", `[{"amount": "10", "currency": "USD", "category": "food", "date": "2026-05-01"}]`)

	result, err := Import(st, "t1", dir, Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.FilesImported != 1 || result.Expenses != 1 {
		t.Fatalf("first run = %+v", result)
	}

	result, err = Import(st, "t1", dir, Options{})
	if err != nil {
		t.Fatalf("Import (rerun): %v", err)
	}
	if result.FilesSkipped != 1 || result.FilesImported != 0 {
		t.Fatalf("rerun = %+v", result)
	}

	result, err = Import(st, "t1", dir, Options{Force: true})
	if err != nil {
		t.Fatalf("Import (force): %v", err)
	}
	if result.FilesImported != 1 {
		t.Fatalf("force = %+v", result)
	}

	expenses, err := st.ExpensesForTrip("t1")
	if err != nil {
		t.Fatalf("ExpensesForTrip: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expenses = %d, want 2 (force re-import appends)", len(expenses))
	}
}
