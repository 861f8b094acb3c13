package orbit

import (
	"math"

	"github.com/steamgauges/extension/internal/vecmath"
)

// Approach is the closest predicted separation between two orbiting objects.
type Approach struct {
	Distance   float64 // m
	TimeOffset float64 // s from the reference UT
}

const (
	coarseSamples = 100
	refineSamples = 20
)

// ClosestApproach searches one period of a for the time at which a and b are
// closest, starting at ut.
//
// The search is a coarse-to-fine grid, not a closed-form solution: 100
// samples across the period, then a grid with a tenth of the spacing across
// ±period/100 of the best sample, then again across ±period/1000. It assumes
// the true minimum lies inside each successively narrower window. For highly
// eccentric, resonant or near-tangent orbits that assumption can fail and the
// reported minimum is only the best sampled point, not the global minimum.
//
// An open orbit (or one with no defined period) has nothing to sample; the
// current separation is returned with a zero offset.
func ClosestApproach(a, b Elements, ut float64) Approach {
	period := a.Period()
	if math.IsInf(period, 0) || math.IsNaN(period) || period <= 0 {
		return Approach{Distance: separation(a, b, ut)}
	}

	best := Approach{Distance: math.Inf(1)}
	try := func(d float64) {
		if dist := separation(a, b, ut+d); dist < best.Distance {
			best = Approach{Distance: dist, TimeOffset: d}
		}
	}

	for _, d := range CoarseSampleOffsets(period) {
		try(d)
	}

	for _, step := range []float64{period / 1000, period / 10000} {
		start := best.TimeOffset - step*refineSamples/2
		for j := 1; j < refineSamples; j++ {
			try(start + float64(j)*step)
		}
	}
	return best
}

// CoarseSampleOffsets returns the first-pass sample offsets from the
// reference UT: 100 evenly spaced points over one period, excluding "now".
func CoarseSampleOffsets(period float64) []float64 {
	offsets := make([]float64, coarseSamples)
	for k := range offsets {
		offsets[k] = float64(k+1) * period / coarseSamples
	}
	return offsets
}

func separation(a, b Elements, ut float64) float64 {
	return vecmath.Distance(a.PositionAtUT(ut), b.PositionAtUT(ut))
}
