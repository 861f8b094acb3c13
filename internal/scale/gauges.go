package scale

// Needle and tape tables for the instrument panel. Knot positions come from the
// dial artwork; where neighbouring ranges of the original dials did not meet,
// the knots were chosen so that each table is continuous.

// AirspeedNeedle maps airspeed (m/s) to needle degrees. The dial is linear to
// 100 m/s, compressed to 675 m/s, and pegs at 355 beyond that. The same table
// drives the terminal-velocity and speed-of-sound needles.
var AirspeedNeedle = FromKnots(0, 355,
	Knot{0, 0},
	Knot{100, 90},
	Knot{675, 345.0125},
)

// IntakeAirNeedle maps the intake air supply/demand ratio to needle degrees in
// three zones: deficit (0-1), near balance (1-2) and surplus (2-6).
var IntakeAirNeedle = FromKnots(355, 0,
	Knot{0, 355},
	Knot{1, 270},
	Knot{2, 180},
	Knot{6, 0},
)

// MaxIntakeRatio is the ratio reported when there is no air demand at all, and
// the upper clamp for the intake needle.
const MaxIntakeRatio = 6.0

// RadarAltimeterNeedle maps radar altitude (m) to needle degrees. Above 5000 m
// the needle rests on the 350 degree peg.
var RadarAltimeterNeedle = FromKnots(0, 350,
	Knot{0, 0},
	Knot{400, 141.5},
	Knot{500, 180},
	Knot{1000, 270},
	Knot{2000, 285.1},
	Knot{5000, 334.99},
)

// RadarPegAltitude is where the radar needle leaves the dial.
const RadarPegAltitude = 5000.0

// SuicideBurnTape maps a suicide-burn altitude (m) to the top pixel of the
// indicator bar on the radar altimeter face.
var SuicideBurnTape = FromKnots(637, 27,
	Knot{0, 637},
	Knot{50, 546},
	Knot{100, 509},
	Knot{700, 400},
	Knot{1000, 364},
	Knot{3000, 292},
	Knot{15000, 73},
	Knot{20000, 36},
	Knot{21000, 27},
)

// VVIBox maps |vertical speed| (m/s, rounded) to the VVI box height in pixels.
var VVIBox = FromKnots(0, 128,
	Knot{0, 0},
	Knot{100, 50},
	Knot{300, 100},
	Knot{600, 125},
)

// FuelNeedle spans 72 degrees centred on half full.
var FuelNeedle = Linear(0, 1, -36, 36)

// MonoNeedle and ChargeNeedle deflect the opposite way to FuelNeedle.
var MonoNeedle = Linear(0, 1, 36, -36)

var ChargeNeedle = Linear(0, 1, 36, -36)

// ElectricRateNeedle has three 13 degree zones: 0-1, 1-10 and 10-100 units/s.
// Use with Symmetric; negative rates deflect the other way.
var ElectricRateNeedle = FromKnots(0, 39,
	Knot{0, 0},
	Knot{1, 13},
	Knot{10, 26},
	Knot{100, 39},
)

// TemperatureNeedle rotates from -29 (cold) to +31 degrees (at the part limit).
var TemperatureNeedle = Linear(0, 1, -29, 31)

// Drift cursor tables for the rendezvous gauge, in pixels from centre. Use
// with Symmetric; input is relative velocity in m/s, clamped at 10.
var (
	DriftX = driftAxis(48)
	DriftY = driftAxis(45)
)

func driftAxis(unit float64) Scale {
	return FromKnots(0, 3*unit,
		Knot{0, 0},
		Knot{1, unit},
		Knot{5, 2 * unit},
		Knot{10, 3 * unit},
	)
}

// HUDSpeedTape scrolls through four speed strips; beyond 10 km/s only digits
// are shown.
var HUDSpeedTape = Tape{Bands: []Band{
	{Below: 200, Window: 0.167, Scale: FromKnots(200*13.7/3289, 0, Knot{0, 200 * 13.7 / 3289}, Knot{200, 0})},
	{Below: 1000, Window: 0.2, Scale: FromKnots(0.8, 0, Knot{200, 0.8}, Knot{1000, 0})},
	{Below: 3000, Window: 0.2, Scale: FromKnots(1, 1-2400*1.37/3290, Knot{600, 1}, Knot{3000, 1 - 2400*1.37/3290})},
	{Below: 10000, Window: 0.2, Scale: FromKnots(1, 1-9000*0.274/2475, Knot{1000, 1}, Knot{10000, 1 - 9000*0.274/2475})},
}}

// HUDAltitudeTape scrolls through four altitude strips; beyond 150 km only
// digits are shown.
var HUDAltitudeTape = Tape{Bands: []Band{
	{Below: 2000, Window: 0.2, Scale: FromKnots(1-2400*1.37/3297, 1-400*1.37/3297, Knot{0, 1 - 2400*1.37/3297}, Knot{2000, 1 - 400*1.37/3297})},
	{Below: 15000, Window: 0.2, Scale: FromKnots(1-15000*0.274/4119, 1-2000*0.274/4119, Knot{2000, 1 - 15000*0.274/4119}, Knot{15000, 1 - 2000*0.274/4119})},
	{Below: 40000, Window: 0.2, Scale: Linear(15000, 40000, 0, 25000.0/29000)},
	{Below: 150000, Window: 0.2, Scale: Linear(39675, 150000, 0, (150000-39675)/130331.0)},
}}

// CompassBand maps heading (deg) to the texture offset of the compass card,
// starting with north centred in the window.
var CompassBand = Linear(0, 360, 0.7848, 0.7848-360*0.00215)

// HUDHeadingBand maps heading (deg) to the HUD heading strip offset.
var HUDHeadingBand = Linear(0, 360, 0, 360*0.00238)
