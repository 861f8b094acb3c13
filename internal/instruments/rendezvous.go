package instruments

import (
	"github.com/steamgauges/extension/internal/digits"
	"github.com/steamgauges/extension/internal/orbit"
	"github.com/steamgauges/extension/internal/scale"
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

// driftLimit is the relative velocity, m/s, at which the drift wires peg.
const driftLimit = 10.0

// RendezvousReading is the target gauge. With no target selected only
// NoTarget is set.
type RendezvousReading struct {
	NoTarget        bool        `json:"noTarget"`
	Closure         core.Glyphs `json:"closure"`
	DriftX          float64     `json:"driftX"`
	DriftY          float64     `json:"driftY"`
	Distance        core.Glyphs `json:"distance"`
	DistanceLight   core.Light  `json:"distanceLight"`
	Inclination     float64     `json:"inclination"`
	ClosestDistance core.Glyphs `json:"closestDistance"`
	ClosestTime     core.Glyphs `json:"closestTime"`
	TargetAp        core.Glyphs `json:"targetAp"`
	TargetPe        core.Glyphs `json:"targetPe"`
}

var distanceDigits = digits.Options{Width: 5, Sign: true, Magnitude: true}

// Rendezvous evaluates the target gauge.
func Rendezvous(v core.VesselSnapshot, s RendezvousSettings, env Env) RendezvousReading {
	t, ok := v.Target.Get()
	if !ok {
		return RendezvousReading{NoTarget: true}
	}
	env = env.withDefaults()

	rel := t.RelativeVelocity
	dist := t.Distance()
	r := RendezvousReading{
		Closure: digits.Format(rel.X, digits.Options{
			Width: 4, Decimals: 1, Sign: true, Min: -99.9, Max: 999.9,
		}),
		DriftX:        scale.DriftX.Symmetric(vecmath.Clamp(rel.Y, -driftLimit, driftLimit)),
		DriftY:        scale.DriftY.Symmetric(vecmath.Clamp(rel.Z, -driftLimit, driftLimit)),
		Distance:      digits.Format(dist, distanceDigits),
		DistanceLight: core.CutoffLight(dist, s.Red, s.Yellow, s.Green),
		Inclination:   t.Orbit.Inclination - v.Orbit.Inclination,
		TargetAp:      digits.Format(t.Orbit.ApA, distanceDigits),
		TargetPe:      digits.Format(t.Orbit.PeA, distanceDigits),
	}

	if v.Orbit.Mu > 0 && t.Orbit.Mu > 0 {
		ca := env.Approaches.ClosestApproach(orbit.FromSnapshot(v.Orbit), orbit.FromSnapshot(t.Orbit), v.UT)
		r.ClosestDistance = digits.Format(ca.Distance, distanceDigits)
		r.ClosestTime = digits.HoursMinutesSeconds(ca.TimeOffset)
	}
	return r
}
