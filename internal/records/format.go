package records

import (
	"math"
	"strconv"
)

// Display formatting only - the stored value is never altered. Two surfaces
// exist with different rules: rounded labels for chart axes and truncated
// exact values for tooltips.

// AxisLabel renders a value for chart axis labels: rounded to the nearest
// integer above 100, one decimal below 10.
func AxisLabel(value float64) string {
	switch {
	case value > 100:
		return strconv.FormatFloat(math.Round(value), 'f', 0, 64)
	case value < 10:
		return strconv.FormatFloat(value, 'f', 1, 64)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}

// ExactValue renders a value for tooltips: truncated, never rounded, to at
// most two decimal places.
func ExactValue(value float64) string {
	truncated := math.Trunc(value*100) / 100
	return strconv.FormatFloat(truncated, 'f', -1, 64)
}
