// Package costdata supplies per-country daily travel costs to the
// budget engine. Values are price-like strings (as exported by
// cost-of-living datasets) and must be cleaned before use.
package costdata

import (
	"errors"
	"strconv"
	"strings"
)

// Tiers holds one category's daily cost across the three cost tiers.
// Values are raw price strings, e.g. "95", "$1,200" or "85.50".
type Tiers struct {
	Budget   string `toml:"budget"`
	MidRange string `toml:"mid_range"`
	Luxury   string `toml:"luxury"`
}

// CountryCosts holds per-category daily costs for one country.
type CountryCosts struct {
	Accommodation Tiers `toml:"accommodation"`
	Food          Tiers `toml:"food"`
	// Transportation and Entertainment keep the dataset's own category
	// names; the budget engine maps them to transport/activities.
	Transportation Tiers `toml:"transportation"`
	Entertainment  Tiers `toml:"entertainment"`
}

// Source is the lookup interface consumed by the budget engine.
type Source interface {
	// Lookup returns the cost entry for a country, or ok=false when
	// the country is not covered.
	Lookup(country string) (CountryCosts, bool)
}

var errNoDigits = errors.New("no numeric content")

// CleanAmount parses a price-like string into a number, stripping
// currency symbols, whitespace, and thousands separators.
func CleanAmount(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ',':
			// thousands separator
		}
	}
	if b.Len() == 0 {
		return 0, errNoDigits
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}
