// pkg/core/orbit.go
package core

// OrbitSnapshot holds the classical elements of an orbit plus the derived
// values the host already computes. Angles are in degrees, except
// MeanAnomalyAtEpoch which is in radians.
type OrbitSnapshot struct {
	Body       string
	BodyRadius float64 // m
	Mu         float64 // gravitational parameter, m³/s²

	ApA float64 // apoapsis altitude, m
	PeA float64 // periapsis altitude, m
	ApR float64 // apoapsis radius, m
	PeR float64 // periapsis radius, m

	Eccentricity        float64
	Inclination         float64
	LAN                 float64
	ArgumentOfPeriapsis float64
	SemiMajorAxis       float64 // negative for hyperbolic orbits

	Period   float64
	TimeToAp float64
	TimeToPe float64

	MeanAnomalyAtEpoch float64
	Epoch              float64
}

// Hyperbolic reports whether the orbit escapes its body.
func (o OrbitSnapshot) Hyperbolic() bool {
	return o.Eccentricity >= 1
}
