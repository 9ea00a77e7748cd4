// Package budget computes suggested multi-category travel budgets from
// destination cost data, trip duration, and a travel style, and
// supports style conversion and re-balancing. Every function is pure
// and never errors in normal operation: missing or malformed cost data
// degrades to the built-in defaults so an unknown destination still
// yields a usable estimate.
package budget

import (
	"math"
	"time"

	"github.com/oskarlind/tripkit/internal/costdata"
	"github.com/oskarlind/tripkit/internal/model"
)

// Style is the engine's internal cost-tier vocabulary, distinct from
// the display-facing model.TravelStyle.
type Style string

// Engine styles.
const (
	StyleFrugal   Style = "frugal"
	StyleBalanced Style = "balanced"
	StyleLuxury   Style = "luxury"
)

// StyleForTravelStyle maps the display vocabulary onto the engine
// vocabulary. This is the only bridge between the two enums.
func StyleForTravelStyle(ts model.TravelStyle) (Style, bool) {
	switch ts {
	case model.TravelStyleBudget:
		return StyleFrugal, true
	case model.TravelStyleMidRange:
		return StyleBalanced, true
	case model.TravelStyleLuxury:
		return StyleLuxury, true
	default:
		return "", false
	}
}

// Categories holds the five fixed budget categories, in daily or total
// amounts depending on context.
type Categories struct {
	Accommodation float64
	Food          float64
	Transport     float64
	Activities    float64
	Misc          float64
}

// Sum returns the total across all categories.
func (c Categories) Sum() float64 {
	return c.Accommodation + c.Food + c.Transport + c.Activities + c.Misc
}

func (c Categories) scale(f float64) Categories {
	return Categories{
		Accommodation: c.Accommodation * f,
		Food:          c.Food * f,
		Transport:     c.Transport * f,
		Activities:    c.Activities * f,
		Misc:          c.Misc * f,
	}
}

func (c *Categories) add(o Categories) {
	c.Accommodation += o.Accommodation
	c.Food += o.Food
	c.Transport += o.Transport
	c.Activities += o.Activities
	c.Misc += o.Misc
}

func (c Categories) rounded() Categories {
	return Categories{
		Accommodation: math.Round(c.Accommodation),
		Food:          math.Round(c.Food),
		Transport:     math.Round(c.Transport),
		Activities:    math.Round(c.Activities),
		Misc:          math.Round(c.Misc),
	}
}

// Thresholds holds alerting thresholds as percentages of budget
// consumption. They are attached to every suggestion; alert evaluation
// itself lives in the report package.
type Thresholds struct {
	Warn int
	Stop int
}

// TripBudget is the suggestion engine's output: a multi-category
// budget with derived totals.
type TripBudget struct {
	Currency string
	Style    Style

	// AutoSuggested is true until the user edits the budget; it never
	// reverts to true automatically.
	AutoSuggested bool

	Total      float64
	PerDay     float64
	Categories Categories
	Thresholds Thresholds
}

// miscRate is the share of the four looked-up categories allotted to
// miscellaneous spending.
const miscRate = 0.12

// defaultTripDays is assumed when no legs carry dates.
const defaultTripDays = 7

// defaultThresholds applied to every fresh suggestion.
var defaultThresholds = Thresholds{Warn: 80, Stop: 100}

// defaultDailyCosts are the built-in per-style fallback tables, used
// whenever a destination is unknown or its data does not parse.
var defaultDailyCosts = map[Style]Categories{
	StyleFrugal:   {Accommodation: 25, Food: 15, Transport: 8, Activities: 10, Misc: 7},
	StyleBalanced: {Accommodation: 75, Food: 40, Transport: 20, Activities: 30, Misc: 20},
	StyleLuxury:   {Accommodation: 200, Food: 100, Transport: 60, Activities: 80, Misc: 53},
}

// styleMultipliers scale budgets between styles in ConvertStyle.
var styleMultipliers = map[Style]float64{
	StyleFrugal:   0.6,
	StyleBalanced: 1.0,
	StyleLuxury:   2.2,
}

func defaultsFor(style Style) Categories {
	if d, ok := defaultDailyCosts[style]; ok {
		return d
	}
	return defaultDailyCosts[StyleBalanced]
}

// tierValue selects the cost-data tier matching an engine style.
func tierValue(t costdata.Tiers, style Style) string {
	switch style {
	case StyleFrugal:
		return t.Budget
	case StyleLuxury:
		return t.Luxury
	default:
		return t.MidRange
	}
}

// pickCost parses one category value, falling back to the default when
// the value is missing, malformed, or zero. A parsed zero is treated
// as missing data, not a legitimate free category; this matches the
// behavior budgets were historically generated with.
func pickCost(raw string, fallback float64) float64 {
	v, err := costdata.CleanAmount(raw)
	if err != nil || v == 0 {
		return fallback
	}
	return v
}

// DailyCosts returns per-category daily costs for a country at the
// given style. Unknown countries and unparseable values degrade to the
// built-in defaults per category. Misc is derived, not looked up:
// round(12% of the other four), with the default substituted when the
// computed value is zero.
func DailyCosts(country string, style Style, src costdata.Source) Categories {
	def := defaultsFor(style)

	if src == nil {
		return def
	}
	cc, ok := src.Lookup(country)
	if !ok {
		return def
	}

	costs := Categories{
		Accommodation: pickCost(tierValue(cc.Accommodation, style), def.Accommodation),
		Food:          pickCost(tierValue(cc.Food, style), def.Food),
		Transport:     pickCost(tierValue(cc.Transportation, style), def.Transport),
		Activities:    pickCost(tierValue(cc.Entertainment, style), def.Activities),
	}

	misc := math.Round(miscRate * (costs.Accommodation + costs.Food + costs.Transport + costs.Activities))
	if misc == 0 {
		misc = def.Misc
	}
	costs.Misc = misc

	return costs
}

// legDays returns the number of budget days a leg contributes:
// ceil of the date span, minimum 1.
func legDays(start, end time.Time) int {
	days := int(math.Ceil(math.Abs(end.Sub(start).Hours()) / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Suggest computes a budget across the trip's legs. Legs missing
// either date are skipped entirely. With no legs at all, a 7-day
// default-style budget is produced; when every leg was skipped, the
// single-day default table stands in as the total.
func Suggest(legs []model.Leg, style Style, currency string, src costdata.Source) TripBudget {
	if len(legs) == 0 {
		def := defaultsFor(style)
		perDay := math.Round(def.Sum())
		return TripBudget{
			Currency:      currency,
			Style:         style,
			AutoSuggested: true,
			Total:         perDay * defaultTripDays,
			PerDay:        perDay,
			Categories:    def.scale(defaultTripDays).rounded(),
			Thresholds:    defaultThresholds,
		}
	}

	var running Categories
	totalDays := 0
	for _, leg := range legs {
		if leg.StartDate == nil || leg.EndDate == nil {
			continue
		}
		days := legDays(*leg.StartDate, *leg.EndDate)
		running.add(DailyCosts(leg.Country, style, src).scale(float64(days)))
		totalDays += days
	}

	if totalDays == 0 {
		// Every leg lacked dates: the single-day default table is the
		// whole budget, not multiplied by any day count.
		running = defaultsFor(style)
		totalDays = 1
	}

	total := math.Round(running.Sum())
	return TripBudget{
		Currency:      currency,
		Style:         style,
		AutoSuggested: true,
		Total:         total,
		PerDay:        math.Round(total / float64(totalDays)),
		Categories:    running.rounded(),
		Thresholds:    defaultThresholds,
	}
}

// inferDayCount recovers a trip length from a budget's total and
// per-day amounts, flooring at one day.
func inferDayCount(total, perDay float64) int {
	if perDay <= 0 {
		return 1
	}
	days := int(math.Round(total / perDay))
	if days < 1 {
		return 1
	}
	return days
}

// RecalculateTotals rebuilds total and per-day amounts after the user
// edits category values. When tripLengthDays is zero the day count is
// inferred from the previous total/perDay ratio. The budget is marked
// user-modified.
func RecalculateTotals(b TripBudget, tripLengthDays int) TripBudget {
	total := math.Round(b.Categories.Sum())

	days := tripLengthDays
	if days < 1 {
		days = inferDayCount(total, b.PerDay)
	}

	b.Total = total
	b.PerDay = math.Round(total / float64(days))
	b.AutoSuggested = false
	return b
}

// Validation is the result of a budget consistency check.
type Validation struct {
	IsValid    bool
	Difference float64
}

// Validate checks that the category amounts sum to the stored total,
// tolerating only sub-unit rounding noise.
func Validate(b TripBudget) Validation {
	diff := math.Round(b.Categories.Sum() - b.Total)
	return Validation{
		IsValid:    math.Abs(diff) < 1,
		Difference: diff,
	}
}

// ConvertStyle rescales a budget to a new style using the fixed
// multiplier ratio between styles. Categories are rounded
// independently after scaling, so the new total is not guaranteed to
// equal their sum exactly; Validate's tolerance absorbs that drift.
// The day count is inferred from the OLD total/perDay pair before
// scaling, preserving the original trip length.
func ConvertStyle(b TripBudget, newStyle Style) TripBudget {
	oldMult, ok := styleMultipliers[b.Style]
	if !ok || oldMult == 0 {
		oldMult = styleMultipliers[StyleBalanced]
	}
	newMult, ok := styleMultipliers[newStyle]
	if !ok {
		newMult = styleMultipliers[StyleBalanced]
	}
	factor := newMult / oldMult

	days := inferDayCount(b.Total, b.PerDay)
	total := math.Round(b.Total * factor)

	b.Style = newStyle
	b.Categories = b.Categories.scale(factor).rounded()
	b.Total = total
	b.PerDay = math.Round(total / float64(days))
	b.AutoSuggested = false
	return b
}
