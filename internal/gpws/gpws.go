// Package gpws evaluates ground proximity warnings. Modes follow the
// aviation GPWS envelopes, scaled to the game's radar altimeter:
//
//	Mode 1A  excessive descent rate            SINKRATE
//	Mode 1B  excessive descent rate, severe    PULL UP
//	Mode 2   excessive terrain closure         TERRAIN PULL UP
//	Mode 3   altitude loss after takeoff        DON'T SINK
//	Mode 4   unsafe terrain clearance          TOO LOW TERRAIN / TOO LOW GEAR
//	Mode 6   excessive bank angle              BANK ANGLE
//
// Modes are checked in that order and the first one that triggers is the only
// warning reported for the frame.
package gpws

import (
	"math"

	"github.com/steamgauges/extension/pkg/core"
)

// Input is the per-frame data the evaluator needs.
type Input struct {
	Landed          bool
	Altitude        float64 // above sea level
	RadarAltitude   float64
	VerticalSpeed   float64 // positive when climbing
	SurfaceSpeed    float64
	Roll            float64 // degrees, either direction
	RetractableGear bool
	GearDeployed    bool
}

// InputFromSnapshot extracts the GPWS inputs from a vessel snapshot.
func InputFromSnapshot(v core.VesselSnapshot) Input {
	return Input{
		Landed:          v.Flags.Landed || v.Flags.Splashed,
		Altitude:        v.Altitude,
		RadarAltitude:   v.RadarAltitude,
		VerticalSpeed:   v.VerticalSpeed,
		SurfaceSpeed:    v.SurfaceSpeed,
		Roll:            v.Roll,
		RetractableGear: v.Flags.RetractableGear,
		GearDeployed:    v.Flags.GearDeployed,
	}
}

const (
	minRadarAltitude = 3.0

	mode1Ceiling = 762.0 // 2500 ft
	mode2Ceiling = 457.0 // 1500 ft
	mode2MaxSink = 30.6
	mode3Ceiling = 457.2
	mode3MaxLoss = 45.7 // 150 ft
	mode4Ceiling = 304.8
	mode4GearAlt = 152.4
	mode4Speed   = 97.7
	mode6Ceiling = 1000.0
	mode6Floor   = 5.0
)

// Evaluator holds the only state that survives between frames: the highest
// altitude reached since the last touchdown, used by mode 3.
type Evaluator struct {
	Enabled bool
	maxAlt  float64
}

// New returns an evaluator; a disabled evaluator always reports WarningNone.
func New(enabled bool) *Evaluator {
	return &Evaluator{Enabled: enabled}
}

// MaxAltitude is the running maximum used by mode 3.
func (e *Evaluator) MaxAltitude() float64 {
	return e.maxAlt
}

// Reset forgets the running maximum, as on a vessel switch.
func (e *Evaluator) Reset() {
	e.maxAlt = 0
}

// Evaluate returns the highest-priority warning for this frame.
func (e *Evaluator) Evaluate(in Input) core.WarningState {
	if !e.Enabled {
		return core.WarningNone
	}
	if in.Landed {
		e.maxAlt = in.Altitude
		return core.WarningNone
	}
	ra := in.RadarAltitude
	if !(ra > minRadarAltitude) {
		return core.WarningNone
	}
	if in.Altitude > e.maxAlt {
		e.maxAlt = in.Altitude
	}

	sink := -in.VerticalSpeed

	// Mode 1
	if ra < mode1Ceiling {
		if 48.1*sink-245.3 > ra {
			return core.WarningSinkrate
		}
		if 23.9*sink-121.9 > ra {
			return core.WarningPullUp
		}
	}

	// Mode 2
	if ra < mode2Ceiling && (sink > mode2MaxSink || 19.9*sink-152.2 > ra) {
		return core.WarningTerrainPullUp
	}

	// Mode 3
	if ra < mode3Ceiling && e.maxAlt-in.Altitude > mode3MaxLoss {
		return core.WarningDontSink
	}
	if 10*sink > ra {
		return core.WarningDontSink
	}

	// Mode 4
	if ra < mode4Ceiling && sink > -1 && in.RetractableGear && !in.GearDeployed {
		if in.SurfaceSpeed > mode4Speed {
			return core.WarningTooLowTerrain
		}
		if ra < mode4GearAlt && in.SurfaceSpeed < mode4Speed {
			return core.WarningTooLowGear
		}
	}

	// Mode 6
	if ra < mode6Ceiling && ra > mode6Floor && bankExceeded(ra, math.Abs(in.Roll)) {
		return core.WarningBankAngle
	}

	return core.WarningNone
}

// bankExceeded applies the mode 6 envelope: 10° near the ground, then 1.2°
// per metre up to 45 m, then a flat 40°.
func bankExceeded(ra, roll float64) bool {
	switch {
	case ra < 10 && roll > 10:
		return true
	case ra < 45:
		return roll > 1.2*ra
	default:
		return roll > 40
	}
}
