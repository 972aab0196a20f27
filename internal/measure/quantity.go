// Package measure parses and scales free-text ingredient quantities such as
// "4 medium", "1/2 cup" or "1 1/2 tbsp".
package measure

import (
	"math"
	"strconv"
	"strings"
)

// Class decides how a scaled amount is rounded.
type Class int

const (
	// Count units are whole things (eggs, cloves, bare numbers). They round to
	// the nearest integer and never drop below one.
	Count Class = iota
	// Continuous units (cups, grams, ...) round to one decimal place and never
	// drop below 0.1. Unknown units are treated as continuous.
	Continuous
)

var unitAliases = map[string]string{
	"c": "cup", "cup": "cup", "cups": "cup",
	"tbsp": "tbsp", "tbs": "tbsp", "tbl": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"g": "g", "gr": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"clove": "clove", "cloves": "clove",
	"bunch": "bunch", "bunches": "bunch",
	"piece": "piece", "pieces": "piece", "pc": "piece", "pcs": "piece",
	"slice": "slice", "slices": "slice",
	"can": "can", "cans": "can",
	"egg": "egg", "eggs": "egg",
	"head": "head", "heads": "head",
	"sprig": "sprig", "sprigs": "sprig",
	"small": "small", "medium": "medium", "large": "large", "whole": "whole",
}

var countUnits = map[string]bool{
	"": true, "clove": true, "bunch": true, "piece": true, "slice": true, "can": true,
	"egg": true, "head": true, "sprig": true, "small": true, "medium": true, "large": true,
	"whole": true,
}

var unicodeFractions = map[string]float64{
	"½": 0.5, "⅓": 1.0 / 3, "⅔": 2.0 / 3, "¼": 0.25, "¾": 0.75, "⅛": 0.125,
}

// CanonicalUnit lower-cases a unit and folds known aliases and plurals.
func CanonicalUnit(unit string) string {
	u := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), ".")
	if canon, ok := unitAliases[u]; ok {
		return canon
	}
	return u
}

// ClassOf reports the rounding class of a canonical unit.
func ClassOf(unit string) Class {
	if countUnits[unit] {
		return Count
	}
	return Continuous
}

// Round applies the rounding rule of the unit's class to a positive amount.
func Round(amount float64, unit string) float64 {
	if amount <= 0 {
		return 0
	}
	if ClassOf(unit) == Count {
		return math.Max(1, math.Round(amount))
	}
	return math.Max(0.1, math.Round(amount*10)/10)
}

// Quantity is a parsed amount and canonical unit. The unit keeps its original
// spelling for display. Text that does not start with a number ("to taste",
// "a pinch") is kept verbatim and is never scaled or summed.
type Quantity struct {
	Amount float64
	Unit   string

	raw      string
	unitText string
	numeric  bool
	changed  bool
}

// Parse reads a quantity string. It never fails; see Quantity.Numeric.
func Parse(s string) Quantity {
	raw := strings.TrimSpace(s)
	q := Quantity{raw: raw}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return q
	}

	amount, ok := parseNumber(fields[0])
	if !ok {
		return q
	}
	rest := fields[1:]
	if len(rest) > 0 && !strings.Contains(fields[0], "/") {
		if frac, ok := parseFraction(rest[0]); ok {
			amount += frac
			rest = rest[1:]
		}
	}

	q.Amount = amount
	q.unitText = strings.Join(rest, " ")
	q.Unit = CanonicalUnit(q.unitText)
	q.numeric = true
	return q
}

// Numeric reports whether the quantity carries a usable amount.
func (q Quantity) Numeric() bool {
	return q.numeric
}

// Scale multiplies the amount by ratio and rounds per the unit class. A ratio
// of exactly one returns the quantity untouched, original text included.
func (q Quantity) Scale(ratio float64) Quantity {
	if !q.numeric || ratio == 1 {
		return q
	}
	q.Amount = Round(q.Amount*ratio, q.Unit)
	q.changed = true
	return q
}

// Add sums two quantities with the same canonical unit. ok is false when the
// units differ or either side is not numeric.
func (q Quantity) Add(o Quantity) (Quantity, bool) {
	if !q.numeric || !o.numeric || q.Unit != o.Unit {
		return q, false
	}
	q.Amount = Round(q.Amount+o.Amount, q.Unit)
	q.changed = true
	return q, true
}

func (q Quantity) String() string {
	if !q.numeric || !q.changed {
		return q.raw
	}
	amount := strconv.FormatFloat(q.Amount, 'f', -1, 64)
	unit := q.unitText
	if unit == "" {
		unit = q.Unit
	}
	if unit == "" {
		return amount
	}
	return amount + " " + unit
}

func parseNumber(tok string) (float64, bool) {
	if v, ok := unicodeFractions[tok]; ok {
		return v, true
	}
	if v, ok := parseFraction(tok); ok {
		return v, true
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parseFraction(tok string) (float64, bool) {
	if v, ok := unicodeFractions[tok]; ok {
		return v, true
	}
	num, den, found := strings.Cut(tok, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return 0, false
	}
	d, err := strconv.Atoi(den)
	if err != nil || d <= 0 {
		return 0, false
	}
	return float64(n) / float64(d), true
}
