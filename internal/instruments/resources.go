package instruments

import (
	"github.com/steamgauges/extension/internal/digits"
	"github.com/steamgauges/extension/internal/scale"
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

// FuelReading is the dual fuel and monopropellant gauge.
type FuelReading struct {
	Fuel      float64    `json:"fuel"`
	Mono      float64    `json:"mono"`
	FuelLight core.Light `json:"fuelLight"`
	MonoLight core.Light `json:"monoLight"`
	EVA       bool       `json:"eva"`
}

// Fuel evaluates the fuel gauge. On EVA the fuel needle shows the jetpack.
func Fuel(v core.VesselSnapshot, s FuelSettings) FuelReading {
	fuel := v.Resources.Fuel
	if v.Flags.EVA {
		fuel = v.Resources.EVAFuel
	}
	fuel = vecmath.Clamp(fuel, 0, 1)
	mono := vecmath.Clamp(v.Resources.Mono, 0, 1)
	return FuelReading{
		Fuel:      scale.FuelNeedle.Map(fuel),
		Mono:      scale.MonoNeedle.Map(mono),
		FuelLight: core.CutoffLight(fuel, s.Red, s.Yellow, s.Green),
		MonoLight: core.CutoffLight(mono, s.MonoRed, s.MonoYellow, s.MonoGreen),
		EVA:       v.Flags.EVA,
	}
}

// ElectricalReading is the charge gauge with its rate needle.
type ElectricalReading struct {
	Charge float64    `json:"charge"`
	Rate   float64    `json:"rate"`
	Light  core.Light `json:"light"`
}

// Electrical evaluates the charge gauge. It shares the fuel cutoffs.
func Electrical(v core.VesselSnapshot, s FuelSettings) ElectricalReading {
	charge := vecmath.Clamp(v.Resources.Charge, 0, 1)
	return ElectricalReading{
		Charge: scale.ChargeNeedle.Map(charge),
		Rate:   scale.ElectricRateNeedle.Symmetric(v.Resources.ChargeRate),
		Light:  core.CutoffLight(charge, s.Red, s.Yellow, s.Green),
	}
}

// AblatorLampCount is the number of ablator lamps on the temperature gauge.
const AblatorLampCount = 10

// TemperatureReading is the part temperature gauge.
type TemperatureReading struct {
	Needle      float64     `json:"needle"`
	Ablator     int         `json:"ablator"` // lamps lit, from the left
	Temperature core.Glyphs `json:"temperature"`
}

// AblatorLamps counts the lit lamps for the remaining ablator fraction. The
// first lamp stays lit until the shield is completely gone; each further lamp
// needs another tenth.
func AblatorLamps(fraction float64) int {
	if fraction <= 0 {
		return 0
	}
	lit := 1
	for k := 1; k < AblatorLampCount; k++ {
		if fraction >= float64(k)/10 {
			lit++
		}
	}
	return lit
}

// Temperature evaluates the temperature gauge.
func Temperature(v core.VesselSnapshot) TemperatureReading {
	return TemperatureReading{
		Needle:  scale.TemperatureNeedle.Map(vecmath.Clamp(v.MaxPartTemperature, 0, 1)),
		Ablator: AblatorLamps(v.AblatorFraction),
		Temperature: digits.Format(v.MaxPartTemperatureK, digits.Options{
			Width: 4, LeadingZeros: true, Rolling: true, Min: 0, Max: 9999,
		}),
	}
}
