// Package orbit predicts orbital events for the rendezvous, orbit and radar
// gauges: Kepler propagation, closest approach between two orbits, ascending
// and descending node timing, and the landing estimates.
package orbit

import (
	"math"

	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

// Elements is a Keplerian orbit in a right-handed inertial frame whose Z axis
// is the reference body's north pole. Angles are in radians.
type Elements struct {
	Mu                  float64
	SemiMajorAxis       float64 // negative for hyperbolic orbits
	Eccentricity        float64
	Inclination         float64
	LAN                 float64
	ArgumentOfPeriapsis float64
	MeanAnomalyAtEpoch  float64
	Epoch               float64
}

// FromSnapshot converts host orbit readouts (angles in degrees) to Elements.
func FromSnapshot(o core.OrbitSnapshot) Elements {
	return Elements{
		Mu:                  o.Mu,
		SemiMajorAxis:       o.SemiMajorAxis,
		Eccentricity:        o.Eccentricity,
		Inclination:         vecmath.Radians(o.Inclination),
		LAN:                 vecmath.Radians(o.LAN),
		ArgumentOfPeriapsis: vecmath.Radians(o.ArgumentOfPeriapsis),
		MeanAnomalyAtEpoch:  o.MeanAnomalyAtEpoch,
		Epoch:               o.Epoch,
	}
}

// Hyperbolic reports whether the orbit is open.
func (el Elements) Hyperbolic() bool {
	return el.Eccentricity >= 1
}

// MeanMotion is sqrt(μ/|a|³) in rad/s.
func (el Elements) MeanMotion() float64 {
	a := math.Abs(el.SemiMajorAxis)
	if a == 0 || el.Mu <= 0 {
		return 0
	}
	return math.Sqrt(el.Mu / (a * a * a))
}

// Period is the orbital period in seconds, +Inf for open orbits.
func (el Elements) Period() float64 {
	n := el.MeanMotion()
	if el.Hyperbolic() || n == 0 {
		return math.Inf(1)
	}
	return twoPi / n
}

// SemiLatusRectum is a(1-e²), positive for both closed and open orbits.
func (el Elements) SemiLatusRectum() float64 {
	return el.SemiMajorAxis * (1 - el.Eccentricity*el.Eccentricity)
}

// basis returns the perifocal unit vectors: P toward periapsis, Q 90° ahead
// in the direction of motion, and W along the angular momentum.
func (el Elements) basis() (p, q, w vecmath.Vec3) {
	cO, sO := math.Cos(el.LAN), math.Sin(el.LAN)
	cw, sw := math.Cos(el.ArgumentOfPeriapsis), math.Sin(el.ArgumentOfPeriapsis)
	ci, si := math.Cos(el.Inclination), math.Sin(el.Inclination)

	p = vecmath.V(cO*cw-sO*sw*ci, sO*cw+cO*sw*ci, sw*si)
	q = vecmath.V(-cO*sw-sO*cw*ci, -sO*sw+cO*cw*ci, cw*si)
	w = vecmath.V(sO*si, -cO*si, ci)
	return p, q, w
}

// Normal is the unit orbit normal (angular momentum direction).
func (el Elements) Normal() vecmath.Vec3 {
	_, _, w := el.basis()
	return w
}

// MeanAnomalyAtUT propagates the mean anomaly; elliptical results are wrapped
// into [0, 2π).
func (el Elements) MeanAnomalyAtUT(ut float64) float64 {
	m := el.MeanAnomalyAtEpoch + el.MeanMotion()*(ut-el.Epoch)
	if !el.Hyperbolic() {
		m = ClampTwoPi(m)
	}
	return m
}

// UTAtMeanAnomaly returns when the orbit next reaches mean anomaly m after
// ut. On an open orbit the answer can lie in the past.
func (el Elements) UTAtMeanAnomaly(m, ut float64) float64 {
	n := el.MeanMotion()
	if n == 0 {
		return math.NaN()
	}
	diff := m - el.MeanAnomalyAtUT(ut)
	if !el.Hyperbolic() {
		diff = ClampTwoPi(diff)
	}
	return ut + diff/n
}

// UTAtTrueAnomaly returns when the orbit next reaches true anomaly nu after ut.
func (el Elements) UTAtTrueAnomaly(nu, ut float64) (float64, error) {
	E, err := TrueToEccentric(el.Eccentricity, nu)
	if err != nil {
		return math.NaN(), err
	}
	return el.UTAtMeanAnomaly(EccentricToMean(el.Eccentricity, E), ut), nil
}

// TrueAnomalyAtUT propagates the orbit to ut.
func (el Elements) TrueAnomalyAtUT(ut float64) float64 {
	E := MeanToEccentric(el.Eccentricity, el.MeanAnomalyAtUT(ut))
	return EccentricToTrue(el.Eccentricity, E)
}

// PositionAtTrueAnomaly returns the body-centred position at true anomaly nu.
func (el Elements) PositionAtTrueAnomaly(nu float64) vecmath.Vec3 {
	p, q, _ := el.basis()
	r := el.SemiLatusRectum() / (1 + el.Eccentricity*math.Cos(nu))
	return p.Scale(r * math.Cos(nu)).Add(q.Scale(r * math.Sin(nu)))
}

// PositionAtUT returns the body-centred position at ut.
func (el Elements) PositionAtUT(ut float64) vecmath.Vec3 {
	return el.PositionAtTrueAnomaly(el.TrueAnomalyAtUT(ut))
}

// TrueAnomalyOfDirection projects v into the orbital plane and returns the
// true anomaly of that direction, in [0, 2π).
func (el Elements) TrueAnomalyOfDirection(v vecmath.Vec3) float64 {
	p, q, _ := el.basis()
	return ClampTwoPi(math.Atan2(v.Dot(q), v.Dot(p)))
}
