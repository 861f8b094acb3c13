package orbit

import "math"

// StandardGravity is the constant the host uses to turn Isp into exhaust velocity.
const StandardGravity = 9.82

// DescentInput is what the landing estimates need about a vessel falling
// toward an airless body.
type DescentInput struct {
	Landed          bool
	Atmosphere      bool
	PeA             float64 // periapsis altitude, m
	Mu              float64
	BodyRadius      float64
	TerrainAltitude float64
	Gravity         float64 // local, m/s²
	RadarAltitude   float64
	VerticalSpeed   float64 // negative when descending
	Mass            float64 // t
	MaxThrust       float64 // kN
	Isp             float64 // s, thrust weighted
}

// applicable is the gate shared by both estimates: only for a vessel in the
// air, on a suborbital path, over a body with no atmosphere.
func (in DescentInput) applicable() bool {
	return !in.Landed && in.PeA <= 0 && !in.Atmosphere
}

// SuicideBurnAltitude estimates the radar altitude at which a full-thrust
// burn has to start to stop at the surface. Gravity is averaged between the
// current value and the surface value; mass is averaged over the burn using
// the rocket equation. ok is false when the estimate does not apply (landed,
// in orbit, atmosphere) or the vessel has no thrust; the gauge shows that as
// the parked marker.
func SuicideBurnAltitude(in DescentInput) (altitude float64, ok bool) {
	if !in.applicable() || in.MaxThrust <= 0 {
		return -1, false
	}

	surfaceR := in.BodyRadius + in.TerrainAltitude
	avgG := in.Gravity
	if surfaceR > 0 && in.Mu > 0 {
		avgG = (in.Mu/(surfaceR*surfaceR) + in.Gravity) / 2
	}

	vdv := math.Sqrt(2*avgG*math.Max(in.RadarAltitude, 0) + in.VerticalSpeed*in.VerticalSpeed)
	altFrac := vdv * vdv / (2 * 1000 * in.MaxThrust)

	endMass := in.Mass
	if in.Isp > 0 {
		endMass = in.Mass / math.Exp(vdv/(in.Isp*StandardGravity))
	}
	avgMass := (in.Mass + endMass) / 2

	return math.Round(altFrac * avgMass * 1000), true
}

// TimeToImpact is the free-fall time until the vessel reaches the terrain,
// plus one second so that impact reads as 0 rather than -1. ok is false when
// the vessel is not descending or the estimate does not apply.
func TimeToImpact(in DescentInput) (seconds float64, ok bool) {
	if !in.applicable() || in.VerticalSpeed >= 0 || in.Gravity <= 0 {
		return 0, false
	}
	vs := in.VerticalSpeed
	vf := math.Sqrt(vs*vs + 2*math.Max(in.RadarAltitude, 0)*in.Gravity)
	return (math.Abs(vf)-math.Abs(vs))/in.Gravity + 1, true
}

// BurnTime is the time a full-thrust burn of dv takes, accounting for the
// mass spent on the way through the rocket equation. Without Isp the mass is
// held constant. ok is false when there is no thrust.
func BurnTime(mass, maxThrust, isp, dv float64) (seconds float64, ok bool) {
	if maxThrust <= 0 || mass <= 0 {
		return 0, false
	}
	if dv <= 0 {
		return 0, true
	}
	if isp <= 0 {
		return dv * mass / maxThrust, true
	}
	ve := isp * StandardGravity
	endMass := mass / math.Exp(dv/ve)
	flow := maxThrust / ve
	return (mass - endMass) / flow, true
}
