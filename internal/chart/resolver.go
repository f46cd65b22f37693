package chart

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"wsn_dashboard/internal/models"
)

var (
	// ErrEmptySeries is returned when a domain is requested for a series without points.
	ErrEmptySeries = errors.New("chart: series has no points")
	// ErrSeriesLength is returned when x and y have different lengths.
	ErrSeriesLength = errors.New("chart: x and y lengths differ")
)

// zeroSnap absorbs sampling noise around the origin of the x axis.
const zeroSnap = 0.01

// Axis selects the series component a domain is computed for.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Bound is an optional user-entered axis limit.
type Bound struct {
	Value float64
	Set   bool
}

// At returns a set bound.
func At(v float64) Bound { return Bound{Value: v, Set: true} }

// ParseBound reads a bound input field. Blank or non-numeric text yields an
// unset bound, which falls back to the natural range.
func ParseBound(s string) Bound {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bound{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Bound{}
	}
	return At(v)
}

// String formats the bound the way it is written back to an input field.
func (b Bound) String() string {
	if !b.Set {
		return ""
	}
	return strconv.FormatFloat(b.Value, 'g', -1, 64)
}

// inside reports whether a set bound lies strictly within (lo, hi).
func (b Bound) inside(lo, hi float64) bool {
	return b.Set && lo < b.Value && b.Value < hi
}

// Domain is the resolved plot range of one axis plus the data range it came from.
type Domain struct {
	Lo        float64 `json:"lo"`
	Hi        float64 `json:"hi"`
	NaturalLo float64 `json:"natural_lo"`
	NaturalHi float64 `json:"natural_hi"`
}

// Resolve computes the plot domain of one axis.
//
// Each user bound replaces the natural bound only when it lies strictly inside
// the natural range; otherwise the data min/max is used. The two bounds are
// resolved independently, so overrides may cross. On the x axis a resolved
// lower bound closer to zero than 0.01 becomes exactly 0.
func Resolve(s models.Series, axis Axis, userLo, userHi Bound) (Domain, error) {
	n := s.Len()
	if n < 0 {
		return Domain{}, ErrSeriesLength
	}
	if n == 0 {
		return Domain{}, ErrEmptySeries
	}

	vals := s.Y
	if axis == AxisX {
		vals = s.X
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	d := Domain{Lo: lo, Hi: hi, NaturalLo: lo, NaturalHi: hi}
	if userLo.inside(lo, hi) {
		d.Lo = userLo.Value
	}
	if userHi.inside(lo, hi) {
		d.Hi = userHi.Value
	}
	if axis == AxisX && math.Abs(d.Lo) < zeroSnap {
		d.Lo = 0
	}
	return d, nil
}
