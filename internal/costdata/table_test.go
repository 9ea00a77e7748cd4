package costdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"95", 95, false},
		{"$1,200", 1200, false},
		{" 85.50 ", 85.5, false},
		{"€45", 45, false},
		{"-12", -12, false},
		{"n/a", 0, true},
		{"", 0, true},
		{"free", 0, true},
	}
	for _, c := range cases {
		got, err := CleanAmount(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("CleanAmount(%q) = %.2f, want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("CleanAmount(%q) returned error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("CleanAmount(%q) = %.2f, want %.2f", c.in, got, c.want)
		}
	}
}

func TestNormalizeCountry(t *testing.T) {
	cases := map[string]string{
		"France":  "france",
		"  USA ":  "united states",
		"UK":      "united kingdom",
		"Bali":    "indonesia",
		"Unknown": "unknown",
	}
	for in, want := range cases {
		if got := NormalizeCountry(in); got != want {
			t.Fatalf("NormalizeCountry(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTableLookup_AliasAndCase(t *testing.T) {
	table := NewTable(nil)

	if _, ok := table.Lookup("FRANCE"); !ok {
		t.Fatal("case-insensitive lookup failed")
	}
	if _, ok := table.Lookup("usa"); !ok {
		t.Fatal("alias lookup failed")
	}
	if _, ok := table.Lookup("Narnia"); ok {
		t.Fatal("lookup for uncovered country reported ok")
	}
}

func TestTableLookup_OverridesWin(t *testing.T) {
	table := NewTable(map[string]CountryCosts{
		"France": {Accommodation: Tiers{MidRange: "999"}},
	})

	cc, ok := table.Lookup("france")
	if !ok {
		t.Fatal("override lookup failed")
	}
	if cc.Accommodation.MidRange != "999" {
		t.Fatalf("Accommodation.MidRange = %q, want override 999", cc.Accommodation.MidRange)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "costs.toml")
	content := `
[countries."Faroe Islands".accommodation]
budget = "60"
mid_range = "140"
luxury = "400"

[countries."Faroe Islands".food]
mid_range = "70"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	overrides, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	cc, ok := overrides["Faroe Islands"]
	if !ok {
		t.Fatalf("override entry missing, got %v", overrides)
	}
	if cc.Accommodation.MidRange != "140" || cc.Food.MidRange != "70" {
		t.Fatalf("override values = %+v", cc)
	}

	// Missing file is not an error.
	got, err := LoadOverrides(filepath.Join(dir, "absent.toml"))
	if err != nil || got != nil {
		t.Fatalf("absent file: overrides=%v err=%v, want nil/nil", got, err)
	}
}
