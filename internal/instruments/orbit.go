package instruments

import (
	"math"

	"github.com/steamgauges/extension/internal/digits"
	"github.com/steamgauges/extension/internal/orbit"
	"github.com/steamgauges/extension/pkg/core"
)

// OrbitEvent names the next orbital event shown on the orbit gauge.
type OrbitEvent string

const (
	EventNone       OrbitEvent = ""
	EventPeriapsis  OrbitEvent = "pe"
	EventApoapsis   OrbitEvent = "ap"
	EventAscending  OrbitEvent = "an"
	EventDescending OrbitEvent = "dn"
)

// OrbitReading is the orbit gauge.
type OrbitReading struct {
	Apoapsis    core.Glyphs `json:"apoapsis"`
	Periapsis   core.Glyphs `json:"periapsis"`
	ApLight     core.Light  `json:"apLight"`
	PeLight     core.Light  `json:"peLight"`
	Circular    bool        `json:"circular"`
	ApWindow    bool        `json:"apWindow"`
	PeWindow    bool        `json:"peWindow"`
	Next        OrbitEvent  `json:"next"`
	NextTime    core.Glyphs `json:"nextTime"`
	Inclination float64     `json:"inclination"`
	Floor       float64     `json:"floor"`
}

// inBurnWindow reports whether an event is within window seconds, either
// ahead or just passed.
func inBurnWindow(timeTo, period, window float64) bool {
	return timeTo <= window || period-timeTo < window
}

// apoapsisLight is red inside the orbit floor, green up to greenAlt times the
// floor and yellow on an escape trajectory.
func apoapsisLight(o core.OrbitSnapshot, floor, greenAlt float64) core.Light {
	if o.Eccentricity > 1 {
		return core.LightYellow
	}
	switch {
	case o.ApA < floor:
		return core.LightRed
	case o.ApA < greenAlt*floor:
		return core.LightGreen
	}
	return core.LightOff
}

// periapsisLight is red below the surface, yellow inside the orbit floor and
// green just above it.
func periapsisLight(o core.OrbitSnapshot, floor, greenAlt float64) core.Light {
	switch {
	case o.PeA < 0:
		return core.LightRed
	case o.PeA < floor:
		return core.LightYellow
	case o.PeA < greenAlt*floor:
		return core.LightGreen
	}
	return core.LightOff
}

// NextEvent picks the soonest of periapsis, apoapsis and, with a target,
// the relative nodes. Node times that cannot be computed are skipped.
func NextEvent(v core.VesselSnapshot) (OrbitEvent, float64) {
	o := v.Orbit
	pet := math.Abs(o.TimeToPe)
	apt := math.Abs(o.TimeToAp)
	if o.Eccentricity > 1 {
		apt = pet
	}

	next, seconds := EventNone, math.MaxFloat64
	consider := func(e OrbitEvent, t float64) {
		if t >= 0 && t < seconds {
			next, seconds = e, t
		}
	}
	consider(EventPeriapsis, pet)
	consider(EventApoapsis, apt)

	if t, ok := v.Target.Get(); ok && o.Mu > 0 && t.Orbit.Mu > 0 {
		a, b := orbit.FromSnapshot(o), orbit.FromSnapshot(t.Orbit)
		if an, err := orbit.TimeOfAscendingNode(a, b, v.UT); err == nil {
			consider(EventAscending, an-v.UT)
		}
		if dn, err := orbit.TimeOfDescendingNode(a, b, v.UT); err == nil {
			consider(EventDescending, dn-v.UT)
		}
	}
	if next == EventNone {
		return next, 0
	}
	return next, seconds
}

// Orbit evaluates the orbit gauge.
func Orbit(v core.VesselSnapshot, s OrbitSettings, env Env) OrbitReading {
	env = env.withDefaults()
	o := v.Orbit
	body := o.Body
	if body == "" {
		body = v.Body
	}
	floor := env.Bodies.OrbitFloor(body)

	ap := o.ApA
	if o.Eccentricity > 1 {
		ap = 0
	}
	pe := o.PeA
	if !s.ShowNegativePe && pe < 0 {
		pe = 0
	}

	r := OrbitReading{
		Apoapsis:    digits.Format(ap, distanceDigits),
		Periapsis:   digits.Format(pe, distanceDigits),
		ApLight:     apoapsisLight(o, floor, s.GreenAlt),
		PeLight:     periapsisLight(o, floor, s.GreenAlt),
		Circular:    math.Abs(o.ApA-o.PeA) < s.CircleThresh*o.ApA,
		ApWindow:    inBurnWindow(o.TimeToAp, o.Period, s.BurnWindow),
		PeWindow:    inBurnWindow(o.TimeToPe, o.Period, s.BurnWindow),
		Inclination: -o.Inclination,
		Floor:       floor,
	}

	var seconds float64
	r.Next, seconds = NextEvent(v)
	r.NextTime = digits.HoursMinutesSeconds(seconds)
	r.NextTime.Rolling = true
	r.NextTime.Roll = digits.RollPosition(seconds)
	return r
}
