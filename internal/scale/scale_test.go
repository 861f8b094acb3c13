package scale

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Pegs(t *testing.T) {
	s := FromKnots(-1, 99, Knot{0, 0}, Knot{10, 10}, Knot{20, 40})

	assert.Equal(t, -1.0, s.Map(-0.001))
	assert.Equal(t, -1.0, s.Map(-1e9))
	assert.Equal(t, 99.0, s.Map(20.001))
	assert.Equal(t, 99.0, s.Map(math.Inf(1)))
	assert.Equal(t, -1.0, s.Map(math.NaN()))
}

func TestMap_LinearWithinSegments(t *testing.T) {
	s := FromKnots(0, 0, Knot{0, 0}, Knot{10, 10}, Knot{20, 40})

	assert.InDelta(t, 5, s.Map(5), 1e-12)
	assert.InDelta(t, 10, s.Map(10), 1e-12)
	assert.InDelta(t, 25, s.Map(15), 1e-12)
	assert.InDelta(t, 40, s.Map(20), 1e-12)

	// midpoint of any segment is the mean of its ends
	for i, seg := range s.Segments {
		end := s.Upper
		if i+1 < len(s.Segments) {
			end = s.Segments[i+1].From
		}
		mid := (seg.From + end) / 2
		assert.InDelta(t, (s.Map(seg.From)+s.Map(end))/2, s.Map(mid), 1e-9)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, AirspeedNeedle.Validate())

	bad := Scale{Segments: []Segment{{From: 0}, {From: 0}}, Upper: 1}
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBreakpointOrder))

	assert.ErrorIs(t, Scale{}.Validate(), ErrEmptyScale)
}

func TestDiscontinuity(t *testing.T) {
	s := Scale{
		Segments: []Segment{
			{From: 0, Slope: 1, Base: 0},
			{From: 10, Slope: 1, Base: 12},
		},
		Upper: 20,
	}
	at, broken := s.Discontinuity(1e-9)
	assert.True(t, broken)
	assert.Equal(t, 10.0, at)
	assert.False(t, s.Continuous(1e-9))
	assert.True(t, s.Continuous(3))
}

func TestGaugeTables_ContinuousAndValid(t *testing.T) {
	tables := map[string]Scale{
		"airspeed":     AirspeedNeedle,
		"intakeAir":    IntakeAirNeedle,
		"radar":        RadarAltimeterNeedle,
		"suicideBurn":  SuicideBurnTape,
		"vvi":          VVIBox,
		"fuel":         FuelNeedle,
		"mono":         MonoNeedle,
		"charge":       ChargeNeedle,
		"electricRate": ElectricRateNeedle,
		"temperature":  TemperatureNeedle,
		"driftX":       DriftX,
		"driftY":       DriftY,
		"compass":      CompassBand,
		"hudHeading":   HUDHeadingBand,
	}
	for name, s := range tables {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Validate())
			at, broken := s.Discontinuity(1e-9)
			assert.False(t, broken, "jump at %g", at)

			// pegs outside the dial
			assert.Equal(t, s.PegLow, s.Map(s.Lower()-1))
			assert.Equal(t, s.PegHigh, s.Map(s.Upper+1))
		})
	}

	for name, tape := range map[string]Tape{"speed": HUDSpeedTape, "altitude": HUDAltitudeTape} {
		for i, b := range tape.Bands {
			require.NoError(t, b.Scale.Validate(), "%s band %d", name, i)
		}
	}
}

func TestGaugeTables_KnownReadings(t *testing.T) {
	tests := []struct {
		name  string
		scale Scale
		in    float64
		want  float64
	}{
		{"airspeed 50", AirspeedNeedle, 50, 45},
		{"airspeed 100", AirspeedNeedle, 100, 90},
		{"airspeed past dial", AirspeedNeedle, 700, 355},
		{"intake starved", IntakeAirNeedle, 0, 355},
		{"intake balanced", IntakeAirNeedle, 1, 270},
		{"intake 1.5", IntakeAirNeedle, 1.5, 225},
		{"intake surplus", IntakeAirNeedle, 4, 90},
		{"intake max", IntakeAirNeedle, 6, 0},
		{"radar 500", RadarAltimeterNeedle, 500, 180},
		{"radar 750", RadarAltimeterNeedle, 750, 225},
		{"radar 1000", RadarAltimeterNeedle, 1000, 270},
		{"radar peg", RadarAltimeterNeedle, 6000, 350},
		{"suicide zero", SuicideBurnTape, 0, 637},
		{"suicide 400", SuicideBurnTape, 400, 454.5},
		{"suicide high", SuicideBurnTape, 30000, 27},
		{"vvi 200", VVIBox, 200, 75},
		{"vvi peg", VVIBox, 1000, 128},
		{"fuel empty", FuelNeedle, 0, -36},
		{"fuel half", FuelNeedle, 0.5, 0},
		{"fuel full", FuelNeedle, 1, 36},
		{"mono full", MonoNeedle, 1, -36},
		{"temperature limit", TemperatureNeedle, 1, 31},
		{"drift 3", DriftX, 3, 72},
		{"compass north", CompassBand, 0, 0.7848},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.scale.Map(tt.in), 1e-9)
		})
	}
}

func TestSymmetric(t *testing.T) {
	assert.InDelta(t, -13, ElectricRateNeedle.Symmetric(-1), 1e-9)
	assert.InDelta(t, 26, ElectricRateNeedle.Symmetric(10), 1e-9)
	assert.InDelta(t, -39, ElectricRateNeedle.Symmetric(-500), 1e-9)
	assert.InDelta(t, -144, DriftX.Symmetric(-25), 1e-9)
	assert.InDelta(t, 135, DriftY.Symmetric(10), 1e-9)
}

func TestTapeLocate(t *testing.T) {
	pos, ok := HUDSpeedTape.Locate(100)
	require.True(t, ok)
	assert.Equal(t, 0, pos.Band)
	assert.InDelta(t, 100*13.7/3289, pos.Offset, 1e-9)
	assert.Equal(t, 0.167, pos.Window)

	pos, ok = HUDSpeedTape.Locate(500)
	require.True(t, ok)
	assert.Equal(t, 1, pos.Band)
	assert.InDelta(t, 0.5, pos.Offset, 1e-9)

	pos, ok = HUDSpeedTape.Locate(2000)
	require.True(t, ok)
	assert.Equal(t, 2, pos.Band)
	assert.InDelta(t, 1-(1400*1.37)/3290, pos.Offset, 1e-9)

	_, ok = HUDSpeedTape.Locate(12000)
	assert.False(t, ok)
	_, ok = HUDSpeedTape.Locate(math.NaN())
	assert.False(t, ok)

	pos, ok = HUDAltitudeTape.Locate(20000)
	require.True(t, ok)
	assert.Equal(t, 2, pos.Band)
	assert.InDelta(t, 5000.0/29000, pos.Offset, 1e-9)

	_, ok = HUDAltitudeTape.Locate(200000)
	assert.False(t, ok)
}
