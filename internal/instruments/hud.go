package instruments

import (
	"math"

	"github.com/steamgauges/extension/internal/bodies"
	"github.com/steamgauges/extension/internal/digits"
	"github.com/steamgauges/extension/internal/gpws"
	"github.com/steamgauges/extension/internal/scale"
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

const (
	// vectorMinSpeed hides the flight path marker when nearly stationary.
	vectorMinSpeed = 0.5
	// Flight path marker travel, degrees from boresight.
	vectorMaxX = 14.0
	vectorMaxY = 30.0
	// vectorPixelsPerDegree converts marker degrees to HUD pixels.
	vectorPixelsPerDegree = 10.8
	// fineRollLimit is the bank angle below which the fine roll pointer shows.
	fineRollLimit = 3.0
	// orbitalHeadingCentre is the heading strip offset of the orbital velocity.
	orbitalHeadingCentre = 0.42855
	headingStripRate     = 0.00238
)

// FlightPathVector is the velocity marker on the HUD.
type FlightPathVector struct {
	Shown      bool    `json:"shown"`
	Retrograde bool    `json:"retrograde"`
	X          float64 `json:"x"` // degrees right of boresight, after clamping
	Y          float64 `json:"y"` // degrees above boresight
	PixelX     float64 `json:"pixelX"`
	PixelY     float64 `json:"pixelY"`
	Size       float64 `json:"size"` // marker scale, shrinks when pinned to the edge
}

// HUDReading is the head-up display.
type HUDReading struct {
	Orbital       bool              `json:"orbital"`
	Speed         float64           `json:"speed"`
	SpeedTape     scale.Position    `json:"speedTape"`
	SpeedOnTape   bool              `json:"speedOnTape"`
	SpeedDigits   core.Glyphs       `json:"speedDigits"`
	GroundSpeed   core.Glyphs       `json:"groundSpeed"`
	Mach          core.Glyphs       `json:"mach"`
	MachShown     bool              `json:"machShown"`
	Altitude      core.Glyphs       `json:"altitude"`
	AltitudeTape  scale.Position    `json:"altitudeTape"`
	AltOnTape     bool              `json:"altitudeOnTape"`
	RadarAltitude core.Glyphs       `json:"radarAltitude"`
	VVI           core.Glyphs       `json:"vvi"`
	VVIBox        float64           `json:"vviBox"` // signed box height, up is positive
	Heading       float64           `json:"heading"`
	HeadingOffset float64           `json:"headingOffset"`
	Pitch         float64           `json:"pitch"`
	Roll          float64           `json:"roll"`
	FineRoll      float64           `json:"fineRoll"`
	FineRollShown bool              `json:"fineRollShown"`
	Vector        FlightPathVector  `json:"vector"`
	GForce        core.Glyphs       `json:"gForce"`
	GShown        bool              `json:"gShown"`
	Warning       core.WarningState `json:"warning"`
}

// PathVector places the flight path marker for a direction given as yaw x
// and pitch y off the nose. Directions more than 90° off the nose flip to the
// retrograde marker; the marker is then pulled in along its own line until
// it fits the HUD window.
func PathVector(x, y float64) FlightPathVector {
	x, y = vecmath.WrapDegrees(x), vecmath.WrapDegrees(y)
	fv := FlightPathVector{Shown: true}
	if math.Abs(x) > 90 || math.Abs(y) > 90 {
		fv.Retrograde = true
		x = vecmath.WrapDegrees(x + 180)
		y = vecmath.WrapDegrees(y + 180)
	}

	factor := 1.0
	if math.Abs(x) > vectorMaxX {
		factor = math.Min(factor, vectorMaxX/math.Abs(x))
	}
	if math.Abs(y) > vectorMaxY {
		factor = math.Min(factor, vectorMaxY/math.Abs(y))
	}
	fv.X, fv.Y = x*factor, y*factor
	fv.Size = math.Max(0.5, factor)
	fv.PixelX = fv.X * vectorPixelsPerDegree
	fv.PixelY = fv.Y * vectorPixelsPerDegree
	return fv
}

// inAtmosphere reports whether the vessel is below the top of a known
// atmosphere; unknown bodies fall back to measured density.
func inAtmosphere(v core.VesselSnapshot, cat *bodies.Catalog) bool {
	if b, ok := cat.Lookup(v.Body); ok {
		return b.HasAtmosphere() && v.Altitude < b.AtmosphereDepth
	}
	return v.Density > 0
}

// HUD evaluates the head-up display. gp may be nil when GPWS is not wanted.
func HUD(v core.VesselSnapshot, s HUDSettings, env Env, gp *gpws.Evaluator) HUDReading {
	env = env.withDefaults()
	orbital := s.OrbitalMode && v.Flags.Orbiting
	r := HUDReading{Orbital: orbital, Pitch: v.Pitch, Roll: v.Roll}

	// speed tape switches to orbital speed in orbit regardless of mode
	if v.Flags.Orbiting {
		r.Speed = v.OrbitalSpeed
	} else {
		r.Speed = v.SurfaceSpeed * easCoefficient(v, s.UseEAS)
		r.GroundSpeed = digits.Format(v.HorizontalSpeed, digits.Options{Magnitude: true})
	}
	r.SpeedTape, r.SpeedOnTape = scale.HUDSpeedTape.Locate(r.Speed)
	r.SpeedDigits = digits.Format(r.Speed, digits.Options{Width: 5, Magnitude: true})

	if mach := vesselMach(v); inAtmosphere(v, env.Bodies) && mach > s.MinMach {
		r.MachShown = true
		r.Mach = digits.Format(mach, digits.Options{Decimals: 2, Max: 99.99})
	}

	r.AltitudeTape, r.AltOnTape = scale.HUDAltitudeTape.Locate(v.Altitude)
	r.Altitude = digits.Format(v.Altitude, digits.Options{Width: 6, Sign: true, Magnitude: true})
	if v.RadarAltitude >= 0 {
		r.RadarAltitude = digits.Format(v.RadarAltitude, digits.Options{Width: 5, Magnitude: true})
	}

	vs := math.Round(v.VerticalSpeed)
	r.VVI = digits.Format(v.VerticalSpeed, digits.Options{Sign: true})
	r.VVIBox = scale.VVIBox.Symmetric(vs)

	r.Heading = vecmath.Wrap360(v.Heading)
	if orbital {
		rel := vecmath.WrapDegrees(vecmath.AngleAroundNormal(v.OrbitalVelocity, v.Forward, v.Up))
		r.HeadingOffset = orbitalHeadingCentre - rel*headingStripRate
	} else {
		r.HeadingOffset = scale.HUDHeadingBand.Map(r.Heading)
	}

	if math.Abs(v.Roll) <= fineRollLimit {
		r.FineRollShown = true
		r.FineRoll = v.Roll * 10
	}

	if !orbital && v.SurfaceVelocity.Length() >= vectorMinSpeed {
		r.Vector = PathVector(
			vecmath.AngleAroundNormal(v.SurfaceVelocity, v.Forward, v.Up),
			vecmath.AngleAroundNormal(v.SurfaceVelocity, v.Forward, v.Right),
		)
	}

	if v.GForce > s.MinG {
		r.GShown = true
		r.GForce = digits.Format(v.GForce, digits.Options{Decimals: 2})
	}

	if s.UseGPWS && gp != nil {
		r.Warning = gp.Evaluate(gpws.InputFromSnapshot(v))
	}
	return r
}
