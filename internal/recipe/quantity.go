package recipe

import (
	"strconv"
	"strings"
)

// namedFractions maps fraction tokens to their numeric values.
//
// Thirds are truncated to two decimals (0.33, 0.67) rather than exact. This
// lossy rounding is intentional and load-bearing: stored quantities and the
// display formatter both rely on these exact values, so they must not be
// "fixed" to 1.0/3.0.
var namedFractions = map[string]float64{
	"1/8": 0.125,
	"1/4": 0.25,
	"1/3": 0.33,
	"3/8": 0.375,
	"1/2": 0.5,
	"5/8": 0.625,
	"2/3": 0.67,
	"3/4": 0.75,
	"7/8": 0.875,
}

// ParseQuantity converts a quantity token ("2", "1/2", "1 1/2", "2.5") to a
// float. It returns nil for empty or unparseable input; a quantity is never
// an error.
//
// Resolution order:
//
//  1. Mixed number "W F": W parses as a number, F contributes its named
//     fraction value (or a/b when not named). An unrecognized F contributes
//     zero, so "1 abc" parses as 1.
//  2. Named fraction from the fixed table.
//  3. Arbitrary "a/b" as float division; a zero denominator or non-numeric
//     parts fall through rather than failing.
//  4. Plain float parse.
func ParseQuantity(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if parts := strings.Fields(value); len(parts) == 2 {
		if whole, err := strconv.ParseFloat(parts[0], 64); err == nil {
			fraction, ok := namedFractions[parts[1]], true
			if fraction == 0 && strings.Contains(parts[1], "/") {
				// A malformed or zero-denominator fraction abandons the
				// whole mixed-number branch.
				fraction, ok = parseFraction(parts[1])
			}
			if ok {
				v := whole + fraction
				return &v
			}
		}
	}

	if f, ok := namedFractions[value]; ok {
		return &f
	}

	if strings.Contains(value, "/") {
		if f, ok := parseFraction(value); ok {
			return &f
		}
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return &f
	}
	return nil
}

// parseFraction evaluates "a/b". A malformed fraction or zero denominator
// reports !ok so the caller can fall through to the next rule.
func parseFraction(s string) (float64, bool) {
	num, denom, found := strings.Cut(s, "/")
	if !found || strings.Contains(denom, "/") {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(denom, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// ParseInt converts a numeric column to an optional integer. Blank or
// unparseable input is absent, never an error.
func ParseInt(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// formatFloat renders a quantity for CSV export: whole numbers without a
// decimal point, everything else with minimal digits ("0.5", "1.33").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
