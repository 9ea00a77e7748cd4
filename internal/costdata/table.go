package costdata

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// builtinCosts maps lowercased country names to their typical daily
// costs per traveler. Figures are rough USD estimates; users can
// override or extend them via costs.toml in the config directory.
var builtinCosts = map[string]CountryCosts{
	"france": {
		Accommodation:  Tiers{Budget: "45", MidRange: "110", Luxury: "320"},
		Food:           Tiers{Budget: "25", MidRange: "55", Luxury: "150"},
		Transportation: Tiers{Budget: "12", MidRange: "25", Luxury: "80"},
		Entertainment:  Tiers{Budget: "10", MidRange: "25", Luxury: "90"},
	},
	"spain": {
		Accommodation:  Tiers{Budget: "35", MidRange: "85", Luxury: "250"},
		Food:           Tiers{Budget: "20", MidRange: "45", Luxury: "120"},
		Transportation: Tiers{Budget: "10", MidRange: "20", Luxury: "60"},
		Entertainment:  Tiers{Budget: "8", MidRange: "20", Luxury: "70"},
	},
	"italy": {
		Accommodation:  Tiers{Budget: "40", MidRange: "100", Luxury: "300"},
		Food:           Tiers{Budget: "25", MidRange: "50", Luxury: "140"},
		Transportation: Tiers{Budget: "12", MidRange: "22", Luxury: "70"},
		Entertainment:  Tiers{Budget: "10", MidRange: "22", Luxury: "80"},
	},
	"portugal": {
		Accommodation:  Tiers{Budget: "30", MidRange: "75", Luxury: "220"},
		Food:           Tiers{Budget: "18", MidRange: "40", Luxury: "110"},
		Transportation: Tiers{Budget: "8", MidRange: "18", Luxury: "55"},
		Entertainment:  Tiers{Budget: "8", MidRange: "18", Luxury: "60"},
	},
	"united states": {
		Accommodation:  Tiers{Budget: "70", MidRange: "160", Luxury: "450"},
		Food:           Tiers{Budget: "35", MidRange: "70", Luxury: "180"},
		Transportation: Tiers{Budget: "15", MidRange: "35", Luxury: "110"},
		Entertainment:  Tiers{Budget: "15", MidRange: "35", Luxury: "120"},
	},
	"united kingdom": {
		Accommodation:  Tiers{Budget: "55", MidRange: "130", Luxury: "380"},
		Food:           Tiers{Budget: "28", MidRange: "60", Luxury: "160"},
		Transportation: Tiers{Budget: "14", MidRange: "30", Luxury: "90"},
		Entertainment:  Tiers{Budget: "12", MidRange: "28", Luxury: "100"},
	},
	"japan": {
		Accommodation:  Tiers{Budget: "40", MidRange: "105", Luxury: "350"},
		Food:           Tiers{Budget: "22", MidRange: "50", Luxury: "160"},
		Transportation: Tiers{Budget: "15", MidRange: "30", Luxury: "85"},
		Entertainment:  Tiers{Budget: "10", MidRange: "25", Luxury: "90"},
	},
	"thailand": {
		Accommodation:  Tiers{Budget: "15", MidRange: "50", Luxury: "180"},
		Food:           Tiers{Budget: "10", MidRange: "25", Luxury: "80"},
		Transportation: Tiers{Budget: "5", MidRange: "12", Luxury: "40"},
		Entertainment:  Tiers{Budget: "6", MidRange: "15", Luxury: "55"},
	},
	"vietnam": {
		Accommodation:  Tiers{Budget: "12", MidRange: "40", Luxury: "150"},
		Food:           Tiers{Budget: "8", MidRange: "20", Luxury: "65"},
		Transportation: Tiers{Budget: "4", MidRange: "10", Luxury: "35"},
		Entertainment:  Tiers{Budget: "5", MidRange: "12", Luxury: "45"},
	},
	"indonesia": {
		Accommodation:  Tiers{Budget: "12", MidRange: "45", Luxury: "170"},
		Food:           Tiers{Budget: "8", MidRange: "20", Luxury: "70"},
		Transportation: Tiers{Budget: "5", MidRange: "12", Luxury: "40"},
		Entertainment:  Tiers{Budget: "5", MidRange: "14", Luxury: "50"},
	},
	"mexico": {
		Accommodation:  Tiers{Budget: "25", MidRange: "65", Luxury: "200"},
		Food:           Tiers{Budget: "12", MidRange: "30", Luxury: "90"},
		Transportation: Tiers{Budget: "6", MidRange: "15", Luxury: "50"},
		Entertainment:  Tiers{Budget: "8", MidRange: "18", Luxury: "65"},
	},
	"australia": {
		Accommodation:  Tiers{Budget: "55", MidRange: "130", Luxury: "360"},
		Food:           Tiers{Budget: "28", MidRange: "60", Luxury: "150"},
		Transportation: Tiers{Budget: "14", MidRange: "28", Luxury: "85"},
		Entertainment:  Tiers{Budget: "14", MidRange: "30", Luxury: "100"},
	},
	"germany": {
		Accommodation:  Tiers{Budget: "40", MidRange: "95", Luxury: "280"},
		Food:           Tiers{Budget: "22", MidRange: "48", Luxury: "130"},
		Transportation: Tiers{Budget: "10", MidRange: "22", Luxury: "70"},
		Entertainment:  Tiers{Budget: "10", MidRange: "22", Luxury: "75"},
	},
	"greece": {
		Accommodation:  Tiers{Budget: "30", MidRange: "80", Luxury: "240"},
		Food:           Tiers{Budget: "18", MidRange: "40", Luxury: "110"},
		Transportation: Tiers{Budget: "8", MidRange: "18", Luxury: "55"},
		Entertainment:  Tiers{Budget: "8", MidRange: "18", Luxury: "65"},
	},
}

// countryAliases maps common short or informal names to the table's
// canonical keys.
var countryAliases = map[string]string{
	"usa":            "united states",
	"us":             "united states",
	"america":        "united states",
	"uk":             "united kingdom",
	"england":        "united kingdom",
	"great britain":  "united kingdom",
	"holland":        "netherlands",
	"bali":           "indonesia",
	"czech republic": "czechia",
}

// NormalizeCountry canonicalizes a country name for table lookup.
func NormalizeCountry(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := countryAliases[name]; ok {
		return canonical
	}
	return name
}

// Table is a Source backed by the builtin cost table plus optional
// user overrides. Overrides win over builtin entries.
type Table struct {
	overrides map[string]CountryCosts
}

// NewTable returns a Table with the given overrides applied on top of
// the builtin data. A nil override map is fine.
func NewTable(overrides map[string]CountryCosts) *Table {
	normalized := make(map[string]CountryCosts, len(overrides))
	for name, cc := range overrides {
		normalized[NormalizeCountry(name)] = cc
	}
	return &Table{overrides: normalized}
}

// Lookup implements Source.
func (t *Table) Lookup(country string) (CountryCosts, bool) {
	key := NormalizeCountry(country)
	if cc, ok := t.overrides[key]; ok {
		return cc, true
	}
	cc, ok := builtinCosts[key]
	return cc, ok
}

// Countries returns the sorted canonical names the table covers,
// builtin and override entries combined.
func (t *Table) Countries() []string {
	seen := make(map[string]struct{}, len(builtinCosts)+len(t.overrides))
	for name := range builtinCosts {
		seen[name] = struct{}{}
	}
	for name := range t.overrides {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadOverrides reads a costs.toml override file. A missing file is
// not an error; the builtin table alone is used.
func LoadOverrides(path string) (map[string]CountryCosts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cost overrides: %w", err)
	}

	var raw struct {
		Countries map[string]CountryCosts `toml:"countries"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing cost overrides: %w", err)
	}
	return raw.Countries, nil
}
