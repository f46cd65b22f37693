package presenter

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"wsn_dashboard/internal/models"
)

// leadingFloat matches the numeric prefix of a display text ("12.5 mm/s" -> "12.5").
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseDisplayValue reads a number the way the table text is interpreted:
// leading whitespace is ignored, the longest numeric prefix wins and text
// without one is NaN.
func ParseDisplayValue(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "Infinity"), strings.HasPrefix(s, "+Infinity"):
		return math.Inf(1)
	case strings.HasPrefix(s, "-Infinity"):
		return math.Inf(-1)
	}
	m := leadingFloat.FindString(s)
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// DiffColor compares the previously displayed value with the new one.
// A NaN on either side compares false both ways and stays unchanged.
func DiffColor(prev, next float64) models.ColorTag {
	switch {
	case prev > next:
		return models.ColorDecrease
	case prev < next:
		return models.ColorIncrease
	default:
		return models.ColorUnchanged
	}
}
