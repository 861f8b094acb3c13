// Package aero estimates atmospheric flight quantities: terminal velocity,
// speed of sound and Mach number, equivalent airspeed and intake air balance.
//
// Every estimator returns an Estimate so that a guarded division (no
// atmosphere, no drag, no demand) is visible to the caller as a Substitution
// instead of being an unexplained zero.
package aero

import (
	"math"

	"github.com/steamgauges/extension/internal/scale"
	"github.com/steamgauges/extension/pkg/core"
)

const (
	// Gamma is the heat capacity ratio of air.
	Gamma = 1.4
	// GasConstant is the specific gas constant of dry air, J/(kg·K).
	GasConstant = 287.053
	// SeaLevelDensity is the standard sea level air density, kg/m³.
	SeaLevelDensity = 1.225
	// IntakeAir is the resource name engines and intakes use for air.
	IntakeAir = "IntakeAir"
)

// Substitution records why an estimator returned a substitute value.
type Substitution uint8

const (
	Computed Substitution = iota
	NoAtmosphere
	NoDrag
	NoDemand
)

func (s Substitution) String() string {
	switch s {
	case Computed:
		return "computed"
	case NoAtmosphere:
		return "no_atmosphere"
	case NoDrag:
		return "no_drag"
	case NoDemand:
		return "no_demand"
	}
	return "unknown"
}

// Estimate is a computed value plus the policy applied when the formula had
// no defined answer.
type Estimate struct {
	Value       float64
	Substituted Substitution
}

// Valid reports whether Value came from the formula.
func (e Estimate) Valid() bool {
	return e.Substituted == Computed
}

// TerminalVelocity returns sqrt(2·m·g / (ρ·Σ drag·mass)) over the physically
// significant parts. Mass is in tonnes as the host reports it; the drag sum
// uses the same unit so it cancels. Without atmosphere or drag the result is
// 0 with the matching substitution.
func TerminalVelocity(mass, gravity, density float64, parts []core.PartDrag) Estimate {
	if density <= 0 || math.IsNaN(density) {
		return Estimate{Substituted: NoAtmosphere}
	}
	var massDrag float64
	for _, p := range parts {
		if !p.Significant {
			continue
		}
		massDrag += p.Mass * p.MaxDrag
	}
	if massDrag <= 0 {
		return Estimate{Substituted: NoDrag}
	}
	return Estimate{Value: math.Sqrt(2 * mass * gravity / (density * massDrag))}
}

// SpeedOfSound is sqrt(γRT) for an ideal gas at temperature t (K).
func SpeedOfSound(t float64) Estimate {
	if t <= 0 || math.IsNaN(t) {
		return Estimate{Substituted: NoAtmosphere}
	}
	return Estimate{Value: math.Sqrt(Gamma * GasConstant * t)}
}

// Mach divides speed by the local speed of sound. It is never negative.
func Mach(speed, temperature float64) Estimate {
	a := SpeedOfSound(temperature)
	if !a.Valid() {
		return a
	}
	return Estimate{Value: math.Max(0, speed/a.Value)}
}

// EquivalentAirspeed converts true airspeed to EAS for the given density.
func EquivalentAirspeed(tas, density float64) Estimate {
	if density <= 0 || math.IsNaN(density) {
		return Estimate{Substituted: NoAtmosphere}
	}
	return Estimate{Value: tas * math.Sqrt(density/SeaLevelDensity)}
}

// AirBalance is the intake air supply against engine demand for one tick.
type AirBalance struct {
	Required  float64
	Available float64
	// Ratio is Available/Required, clamped to [0, scale.MaxIntakeRatio].
	Ratio       float64
	Substituted Substitution
}

// Needle maps the balance onto the three-zone intake gauge.
func (b AirBalance) Needle() float64 {
	return scale.IntakeAirNeedle.Map(b.Ratio)
}

// IntakeBalance sums the requirement for resource across ignited, running
// engines and the supply across enabled intakes (airflow scaled by the physics
// timestep dt). With no demand the ratio reads as the gauge maximum and the
// result is marked NoDemand.
func IntakeBalance(engines []core.Engine, intakes []core.Intake, resource string, dt float64) AirBalance {
	var b AirBalance
	for _, e := range engines {
		if !e.Active() {
			continue
		}
		for _, p := range e.Propellants {
			if p.Name == resource {
				b.Required += p.Requirement
			}
		}
	}
	for _, in := range intakes {
		if in.Enabled && in.Resource == resource {
			b.Available += in.AirFlow * dt
		}
	}

	if b.Required <= 0 {
		b.Ratio = scale.MaxIntakeRatio
		b.Substituted = NoDemand
		return b
	}
	b.Ratio = math.Min(math.Max(b.Available/b.Required, 0), scale.MaxIntakeRatio)
	return b
}
