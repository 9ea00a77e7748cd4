package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234.5, "USD", "$1,235"},
		{250, "EUR", "€250"},
		{42.25, "USD", "$42.2"},
		{3.5, "GBP", "£3.50"},
		{-120, "USD", "-$120"},
		{99, "THB", "THB 99.0"},
		{12, "", "12.0"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.amount, c.currency); got != c.want {
			t.Errorf("FormatMoney(%.2f, %q) = %q, want %q", c.amount, c.currency, got, c.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-4500:    "-4,500",
	}
	for n, want := range cases {
		if got := FormatNumber(n); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

	if got := FormatDateRange(&start, &end); got != "2026-07-01 → 2026-07-10 (10 days)" {
		t.Errorf("range = %q", got)
	}
	if got := FormatDateRange(&start, nil); got != "from 2026-07-01" {
		t.Errorf("open-ended = %q", got)
	}
	if got := FormatDateRange(nil, nil); got != "no dates" {
		t.Errorf("dateless = %q", got)
	}
	if got := FormatDateRange(&start, &start); got != "2026-07-01 → 2026-07-01 (1 day)" {
		t.Errorf("single day = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "2026-07-01" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(nil); got != "—" {
		t.Errorf("FormatDate(nil) = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(150, 100, "USD"); got != "+$50.0" {
		t.Errorf("positive delta = %q", got)
	}
	if got := FormatDelta(100, 150, "USD"); got != "-$50.0" {
		t.Errorf("negative delta = %q", got)
	}
	if got := FormatDelta(80, 80, "EUR"); got != "+€0.00" {
		t.Errorf("flat delta = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Reykjavik", 5); got != "Reyk…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("ok", 5); got != "ok" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("héllo wörld", 6); got != "héllo…" {
		t.Errorf("Truncate runes = %q", got)
	}
}
