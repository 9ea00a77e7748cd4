package importer

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/oskarlind/tripkit/internal/costdata"
	"github.com/oskarlind/tripkit/internal/model"
)

// RawExpense is one row of an exported expense file. Amounts arrive as
// price-like strings ("12.50", "€1,200") and are cleaned before use.
type RawExpense struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency,omitempty"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
	Note     string `json:"note,omitempty"`
	Location string `json:"location,omitempty"`
}

// ParseResult holds the outcome of parsing one export file.
type ParseResult struct {
	Path     string
	Expenses []model.Expense
	BadRows  int
	Err      error
}

// ParseFile reads one export file. Rows whose amount does not parse
// are counted and dropped rather than failing the whole file.
func ParseFile(path string) ParseResult {
	result := ParseResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	var rows []RawExpense
	if err := json.Unmarshal(data, &rows); err != nil {
		result.Err = err
		return result
	}

	for _, row := range rows {
		amount, err := costdata.CleanAmount(row.Amount)
		if err != nil || amount <= 0 {
			result.BadRows++
			continue
		}

		e := model.Expense{
			Amount:   amount,
			Currency: strings.ToUpper(strings.TrimSpace(row.Currency)),
			Category: strings.ToLower(strings.TrimSpace(row.Category)),
			Note:     row.Note,
		}
		if row.Date != "" {
			if d, err := time.Parse(model.DateLayout, row.Date); err == nil {
				e.SpentOn = d
			}
		}
		result.Expenses = append(result.Expenses, e)
	}

	return result
}
