package instruments

import (
	"math"

	"github.com/steamgauges/extension/internal/aero"
	"github.com/steamgauges/extension/internal/digits"
	"github.com/steamgauges/extension/internal/scale"
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

// AirReading is the airspeed indicator: speed, terminal velocity and speed
// of sound needles, intake air balance, Mach and angle of attack.
type AirReading struct {
	Airspeed      float64     `json:"airspeed"`
	Terminal      float64     `json:"terminal"`
	TerminalShown bool        `json:"terminalShown"`
	SoundSpeed    float64     `json:"soundSpeed"`
	SoundShown    bool        `json:"soundShown"`
	Intake        float64     `json:"intake"`
	IntakeRatio   float64     `json:"intakeRatio"`
	Mach          core.Glyphs `json:"mach"`
	AoA           core.Glyphs `json:"aoa"`
	Stall         core.Light  `json:"stall"`
}

// easCoefficient is the EAS/TAS ratio: the host's value when it sends one,
// else derived from density, or 1 when EAS is off.
func easCoefficient(v core.VesselSnapshot, useEAS bool) float64 {
	if !useEAS {
		return 1
	}
	if v.EASCoefficient > 0 {
		return v.EASCoefficient
	}
	if v.Density <= 0 {
		return 1
	}
	return math.Sqrt(v.Density / aero.SeaLevelDensity)
}

// vesselMach is the host's Mach number, or the one computed from the static
// temperature.
func vesselMach(v core.VesselSnapshot) float64 {
	if v.Mach > 0 {
		return v.Mach
	}
	return aero.Mach(v.SurfaceSpeed, v.StaticTemperature).Value
}

// angleOfAttack projects the surface velocity and the nose into the pitch
// plane. Without an orientation basis the host's own value is used.
func angleOfAttack(v core.VesselSnapshot) float64 {
	if v.Flags.Landed || v.Flags.Splashed {
		return 0
	}
	if v.SurfaceVelocity.IsZero() || v.Forward.IsZero() || v.Right.IsZero() {
		return v.AngleOfAttack
	}
	return -vecmath.AngleAroundNormal(v.SurfaceVelocity, v.Forward, v.Right)
}

// Air evaluates the airspeed indicator.
func Air(v core.VesselSnapshot, s AirSettings) AirReading {
	k := easCoefficient(v, s.UseEAS)
	var r AirReading

	r.Airspeed = scale.AirspeedNeedle.Map(v.SurfaceSpeed * k)

	if term := aero.TerminalVelocity(v.Mass, v.Gravity, v.Density, v.DragParts); term.Valid() {
		r.Terminal = scale.AirspeedNeedle.Map(term.Value * k)
		r.TerminalShown = true
	}

	mach := vesselMach(v)
	if mach > 0 {
		r.SoundSpeed = scale.AirspeedNeedle.Map(v.SurfaceSpeed * k / mach)
		r.SoundShown = true
	}

	balance := aero.IntakeBalance(v.Engines, v.Intakes, aero.IntakeAir, v.FixedDeltaTime)
	r.Intake = balance.Needle()
	r.IntakeRatio = balance.Ratio

	shownMach := mach
	if shownMach < s.MinMach {
		shownMach = 0
	}
	r.Mach = digits.Format(shownMach, digits.Options{Decimals: 2, Max: 99.99})

	aoa := angleOfAttack(v)
	r.AoA = digits.Format(aoa, digits.Options{
		Width: 3, Decimals: 1, Sign: true, Rolling: true, Min: -9.9, Max: 99.9,
	})
	if !v.Flags.Landed && math.Abs(aoa) > s.CriticalAoA {
		r.Stall = core.LightRed
	}
	return r
}
