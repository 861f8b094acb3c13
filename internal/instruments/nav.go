package instruments

import (
	"math"

	"github.com/steamgauges/extension/internal/digits"
	"github.com/steamgauges/extension/internal/geo"
	"github.com/steamgauges/extension/internal/scale"
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

const (
	// navMaxDistance is the largest distance the DME shows, 999.9 km.
	navMaxDistance = 999900.0
	// navOffPointer is where the bearing pointer rests with no waypoint.
	navOffPointer = 90.0
	// navMaxETE is 99:59:59.
	navMaxETE = 359999.0
)

// NavReading is the surface navigation gauge.
type NavReading struct {
	Off        bool        `json:"off"`
	Card       float64     `json:"card"`    // compass card rotation, degrees
	Pointer    float64     `json:"pointer"` // bearing to the waypoint relative to the nose
	Bearing    float64     `json:"bearing"`
	Distance   core.Glyphs `json:"distance"`
	Kilometers bool        `json:"kilometers"`
	ETE        core.Glyphs `json:"ete"`
	CrossTrack float64     `json:"crossTrack"`
	AlongTrack float64     `json:"alongTrack"`
	Waypoint   string      `json:"waypoint,omitempty"`
}

var navDistanceDigits = digits.Options{Width: 4, Decimals: 1, LeadingZeros: true, Rolling: true}

// estimatedTimeEnroute divides distance by horizontal speed. Negative or
// undefined results read as the maximum.
func estimatedTimeEnroute(dist, speed float64) float64 {
	t := dist / speed
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return navMaxETE
	}
	return math.Min(t, navMaxETE)
}

// Nav evaluates the navigation gauge against the active waypoint.
func Nav(v core.VesselSnapshot, env Env) NavReading {
	env = env.withDefaults()
	r := NavReading{Card: -vecmath.Wrap360(v.Heading)}

	wp, ok := v.Waypoint.Get()
	radius := env.bodyRadius(v)
	if !ok || radius <= 0 {
		r.Off = true
		r.Pointer = navOffPointer
		r.Distance = digits.Format(0, navDistanceDigits)
		r.ETE = digits.ClockHMS(navMaxETE)
		return r
	}
	r.Waypoint = wp.Name

	course := geo.SurfaceCourse(v.Latitude, v.Longitude, wp.Latitude, wp.Longitude, radius)
	r.Bearing = course.Bearing
	r.Pointer = geo.RelativeBearing(course.Bearing, v.Heading)

	approach := geo.SurfaceApproach(radius, v.Heading, course.Bearing, course.Distance)
	r.CrossTrack, r.AlongTrack = approach.CrossTrack, approach.AlongTrack

	shown := math.Min(course.Distance, navMaxDistance)
	if shown > 1000 {
		shown /= 1000
		r.Kilometers = true
	}
	r.Distance = digits.Format(shown, navDistanceDigits)
	r.ETE = digits.ClockHMS(estimatedTimeEnroute(course.Distance, v.HorizontalSpeed))
	return r
}

// CompassReading is the magnetic compass card.
type CompassReading struct {
	Offset  float64 `json:"offset"`
	Heading float64 `json:"heading"`
}

// Compass evaluates the magnetic compass.
func Compass(v core.VesselSnapshot) CompassReading {
	h := vecmath.Wrap360(v.Heading)
	return CompassReading{Offset: scale.CompassBand.Map(h), Heading: h}
}
