// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/oskarlind/tripkit/internal/model"
)

// currencySymbols maps common ISO codes to their display symbol.
// Anything unlisted is rendered as "CODE amount".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
}

// FormatMoney formats an amount in the given currency, trimming
// precision as the value grows. e.g., 1234.5 USD -> "$1,235".
func FormatMoney(amount float64, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	prefix := symbol
	if !ok {
		prefix = strings.ToUpper(currency) + " "
		if currency == "" {
			prefix = ""
		}
	}

	neg := ""
	if amount < 0 {
		neg = "-"
		amount = -amount
	}

	switch {
	case amount >= 1000:
		return neg + prefix + FormatNumber(int64(math.Round(amount)))
	case amount >= 100:
		return fmt.Sprintf("%s%s%.0f", neg, prefix, amount)
	case amount >= 10:
		return fmt.Sprintf("%s%s%.1f", neg, prefix, amount)
	default:
		return fmt.Sprintf("%s%s%.2f", neg, prefix, amount)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 percentage value.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(current, previous float64, currency string) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta, currency)
	}
	return "-" + FormatMoney(-delta, currency)
}

// FormatDate renders a calendar date, or a dash when unset.
func FormatDate(d *time.Time) string {
	if d == nil {
		return "—"
	}
	return d.Format(model.DateLayout)
}

// FormatDateRange renders a trip's date span.
// e.g., "2026-07-01 → 2026-07-10 (10 days)"
func FormatDateRange(start, end *time.Time) string {
	switch {
	case start == nil && end == nil:
		return "no dates"
	case end == nil:
		return "from " + start.Format(model.DateLayout)
	case start == nil:
		return "until " + end.Format(model.DateLayout)
	}

	days := int(end.Sub(*start).Hours()/24) + 1
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s → %s (%d %s)",
		start.Format(model.DateLayout), end.Format(model.DateLayout), days, unit)
}

// FormatDayCount renders a day count with its unit.
func FormatDayCount(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// Truncate shortens a string to max runes, appending an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
