package units

import (
	"math"
	"strconv"
	"strings"
)

// ToMetric converts a US measurement to metric with smart rounding.
//
// A nil quantity passes through untouched, as does any unit missing from
// the lookup table: unknown units are never errors, the pair just comes
// back unchanged.
func ToMetric(quantity *float64, unit string) (*float64, string) {
	if quantity == nil {
		return nil, unit
	}

	conv, ok := usToMetric[strings.ToLower(unit)]
	if !ok {
		return quantity, unit
	}

	converted := smartRound(*quantity*conv.Factor, conv.Unit)
	return &converted, conv.Unit
}

// ToUS converts a metric measurement to US customary. Results are rounded
// to two decimal places; no smart snapping applies in this direction.
func ToUS(quantity *float64, unit string) (*float64, string) {
	if quantity == nil {
		return nil, unit
	}

	conv, ok := metricToUS[strings.ToLower(unit)]
	if !ok {
		return quantity, unit
	}

	converted := roundTo(*quantity*conv.Factor, 2)
	return &converted, conv.Unit
}

// smartRound rounds a metric value to a user-friendly number.
//
// The closest curated threshold for the unit wins when it lies within 15%
// relative distance of the raw value; 236.588 ml (1 cup) snaps to 250 ml.
// Otherwise the value falls back to coarse rounding: nearest multiple of 5
// at or above 100, nearest integer at or above 10, one decimal place below.
// Units without a threshold list round to one decimal place.
func smartRound(value float64, unit string) float64 {
	thresholds, ok := metricRoundValues[unit]
	if !ok {
		return roundTo(value, 1)
	}

	closest := thresholds[0]
	for _, t := range thresholds[1:] {
		if math.Abs(t-value) < math.Abs(closest-value) {
			closest = t
		}
	}

	if math.Abs(closest-value)/value <= 0.15 {
		return closest
	}

	switch {
	case value >= 100:
		return math.Round(value/5) * 5
	case value >= 10:
		return math.Round(value)
	default:
		return roundTo(value, 1)
	}
}

// roundTo rounds to the given number of decimal places.
func roundTo(value float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(value*shift) / shift
}

// FormatQuantity renders a converted quantity for display.
//
// Whole numbers drop the decimal point. For the closed set of US volume
// units the fractional remainder is matched against the display fraction
// table and rendered as a mixed number ("1 1/2 cups"). Anything else shows
// as an integer at or above 10 and with one decimal place below.
func FormatQuantity(value float64, unit string) string {
	if value == math.Trunc(value) {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}

	if usVolumeUnits[strings.ToLower(unit)] {
		whole := math.Trunc(value)
		remainder := roundTo(value-whole, 2)
		for _, f := range displayFractions {
			if remainder == f.value {
				if whole > 0 {
					return strconv.FormatFloat(whole, 'f', 0, 64) + " " + f.text
				}
				return f.text
			}
		}
	}

	if value >= 10 {
		return strconv.FormatFloat(math.Round(value), 'f', 0, 64)
	}
	return strconv.FormatFloat(roundTo(value, 1), 'f', -1, 64)
}
