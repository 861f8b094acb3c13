package instruments

import (
	"math"

	"github.com/steamgauges/extension/internal/digits"
	"github.com/steamgauges/extension/internal/orbit"
	"github.com/steamgauges/extension/internal/scale"
	"github.com/steamgauges/extension/pkg/core"
)

// RadarCeiling is the height above which the radar altimeter is hidden and
// its automation idles.
const RadarCeiling = 5500.0

// autoBurnMargin starts the suicide burn this far above the computed altitude.
const autoBurnMargin = 10.0

// RadarReading is the radar altimeter.
type RadarReading struct {
	Visible        bool        `json:"visible"`
	RadarAltitude  float64     `json:"radarAltitude"`
	Needle         float64     `json:"needle"`
	Light          core.Light  `json:"light"`
	SuicideAlt     float64     `json:"suicideAltitude"` // -1 when not applicable
	SuicideNeedle  float64     `json:"suicideNeedle"`
	SuicideTape    float64     `json:"suicideTape"`
	TimeToImpact   core.Glyphs `json:"timeToImpact"`
	AutoBurnArmed  bool        `json:"autoBurnArmed"`
	ContactArmed   bool        `json:"contactArmed"`
	Burning        bool        `json:"burning"`
	Commands       Commands    `json:"-"`
	AutomationNote string      `json:"-"`
}

// RadarAutomation is the suicide burn and contact stop state carried from
// frame to frame. Both switches disarm themselves once they fire.
type RadarAutomation struct {
	AutoBurn    bool
	ContactStop bool
	Burning     bool
}

// Step advances the automation for one frame and returns the throttle to
// apply, if any, plus a short note describing what fired.
func (a *RadarAutomation) Step(ra, suicideAlt float64, suicideOK bool, verticalSpeed, contactAlt float64) (Commands, string) {
	var cmd Commands
	var note string

	if a.AutoBurn && !a.Burning && suicideOK && ra <= suicideAlt+autoBurnMargin && verticalSpeed <= 0 && ra > 1 {
		a.Burning = true
		a.AutoBurn = false
		cmd.Throttle = core.Some(1.0)
		note = "auto burn initiated"
	}

	if a.ContactStop && ra <= contactAlt {
		a.Burning = false
		a.ContactStop = false
		cmd.Throttle = core.Some(0.0)
		note = "contact, burn stopped"
	}
	if a.ContactStop && a.Burning && verticalSpeed > 2 {
		a.Burning = false
		a.ContactStop = false
		a.AutoBurn = false
		cmd.Throttle = core.Some(0.0)
		note = "climbing, burn stopped"
	}
	return cmd, note
}

// descentInput gathers what the landing estimates need from a snapshot.
func descentInput(v core.VesselSnapshot, atmosphere bool, ra float64) orbit.DescentInput {
	return orbit.DescentInput{
		Landed:          v.Flags.Landed || v.Flags.Splashed,
		Atmosphere:      atmosphere,
		PeA:             v.Orbit.PeA,
		Mu:              v.Orbit.Mu,
		BodyRadius:      v.Orbit.BodyRadius,
		TerrainAltitude: math.Max(v.TerrainAltitude, 0),
		Gravity:         v.Gravity,
		RadarAltitude:   ra,
		VerticalSpeed:   v.VerticalSpeed,
		Mass:            v.Mass,
		MaxThrust:       v.MaxThrust,
		Isp:             v.Isp,
	}
}

// Radar evaluates the radar altimeter. auto may be nil, in which case no
// automation runs.
func Radar(v core.VesselSnapshot, s RadarSettings, env Env, auto *RadarAutomation) RadarReading {
	env = env.withDefaults()
	ra := math.Max(v.RadarAltitude-s.Calibration, 0)
	r := RadarReading{RadarAltitude: ra, SuicideAlt: -1}
	if auto != nil {
		r.AutoBurnArmed, r.ContactArmed, r.Burning = auto.AutoBurn, auto.ContactStop, auto.Burning
	}
	if ra > RadarCeiling {
		return r
	}
	r.Visible = true
	r.Needle = scale.RadarAltimeterNeedle.Map(ra)
	r.Light = core.CutoffLight(ra, s.RedLight, s.YellowLight, s.GreenLight)

	in := descentInput(v, env.hasAtmosphere(v), ra)
	sa, ok := orbit.SuicideBurnAltitude(in)
	r.SuicideAlt = sa
	if ok {
		r.SuicideNeedle = scale.RadarAltimeterNeedle.Map(sa)
	} else {
		r.SuicideNeedle = scale.RadarAltimeterNeedle.PegHigh
	}
	r.SuicideTape = scale.SuicideBurnTape.Map(sa)

	tti, _ := orbit.TimeToImpact(in)
	r.TimeToImpact = digits.MinutesSeconds(tti)

	if auto != nil {
		r.Commands, r.AutomationNote = auto.Step(ra, sa, ok, v.VerticalSpeed, s.ContactAltitude)
		r.AutoBurnArmed, r.ContactArmed, r.Burning = auto.AutoBurn, auto.ContactStop, auto.Burning
	}
	return r
}
