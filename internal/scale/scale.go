// Package scale implements the segmented linear scale used by every needle and
// tape on the panel. A gauge is described by a table of breakpoints rather than
// a ladder of comparisons; the tables live in gauges.go.
package scale

import (
	"errors"
	"fmt"
	"math"
)

// ErrBreakpointOrder is returned when segment breakpoints are not strictly increasing.
var ErrBreakpointOrder = errors.New("breakpoints must be strictly increasing")

// ErrEmptyScale is returned by Validate for a scale with no segments.
var ErrEmptyScale = errors.New("scale has no segments")

// Segment is one linear piece of a Scale. It applies from From up to the next
// segment's From (or the scale's Upper bound for the last one).
type Segment struct {
	From  float64
	Slope float64
	Base  float64 // output at From
}

// At evaluates the segment's line at v.
func (s Segment) At(v float64) float64 {
	return s.Base + s.Slope*(v-s.From)
}

// Scale maps a physical quantity to an output (needle degrees, tape offset, pixels).
//
// Below the first breakpoint the output is PegLow and above Upper it is PegHigh.
// NaN input pegs low, so a bad readout parks the needle instead of spreading NaN.
type Scale struct {
	Segments []Segment
	Upper    float64
	PegLow   float64
	PegHigh  float64
}

// Knot is an (input, output) pair used to build a continuous Scale.
type Knot struct {
	In  float64
	Out float64
}

// FromKnots builds a scale passing through each knot in order, which makes it
// continuous by construction. At least two knots are required; knots must be
// given in increasing input order.
func FromKnots(pegLow, pegHigh float64, knots ...Knot) Scale {
	s := Scale{PegLow: pegLow, PegHigh: pegHigh}
	if len(knots) < 2 {
		return s
	}
	for i := 0; i+1 < len(knots); i++ {
		a, b := knots[i], knots[i+1]
		slope := 0.0
		if b.In != a.In {
			slope = (b.Out - a.Out) / (b.In - a.In)
		}
		s.Segments = append(s.Segments, Segment{From: a.In, Slope: slope, Base: a.Out})
	}
	s.Upper = knots[len(knots)-1].In
	return s
}

// Linear is a single-segment scale mapping [from, to] onto [outFrom, outTo],
// pegging at the matching end outside the range.
func Linear(from, to, outFrom, outTo float64) Scale {
	return FromKnots(outFrom, outTo, Knot{from, outFrom}, Knot{to, outTo})
}

// Map returns the scale output for v.
func (s Scale) Map(v float64) float64 {
	if math.IsNaN(v) || len(s.Segments) == 0 || v < s.Segments[0].From {
		return s.PegLow
	}
	if v > s.Upper {
		return s.PegHigh
	}
	i := len(s.Segments) - 1
	for i > 0 && v < s.Segments[i].From {
		i--
	}
	return s.Segments[i].At(v)
}

// Lower returns the first breakpoint.
func (s Scale) Lower() float64 {
	if len(s.Segments) == 0 {
		return math.NaN()
	}
	return s.Segments[0].From
}

// Validate checks that the scale has segments and strictly increasing
// breakpoints ending at or before Upper.
func (s Scale) Validate() error {
	if len(s.Segments) == 0 {
		return ErrEmptyScale
	}
	for i := 1; i < len(s.Segments); i++ {
		if s.Segments[i].From <= s.Segments[i-1].From {
			return fmt.Errorf("segment %d at %g: %w", i, s.Segments[i].From, ErrBreakpointOrder)
		}
	}
	if s.Upper < s.Segments[len(s.Segments)-1].From {
		return fmt.Errorf("upper bound %g below last breakpoint: %w", s.Upper, ErrBreakpointOrder)
	}
	return nil
}

// Discontinuity returns the first breakpoint where the previous segment does
// not meet the next one within eps. ok is false when the scale is continuous.
func (s Scale) Discontinuity(eps float64) (at float64, ok bool) {
	for i := 1; i < len(s.Segments); i++ {
		prev, next := s.Segments[i-1], s.Segments[i]
		if math.Abs(prev.At(next.From)-next.Base) > eps {
			return next.From, true
		}
	}
	return 0, false
}

// Continuous reports whether every segment meets its successor within eps.
func (s Scale) Continuous(eps float64) bool {
	_, broken := s.Discontinuity(eps)
	return !broken
}

// Symmetric maps |v| through the scale and restores the sign of v. Used by
// needles that deflect both ways from a centre zero.
func (s Scale) Symmetric(v float64) float64 {
	out := s.Map(math.Abs(v))
	if v < 0 {
		return -out
	}
	return out
}
