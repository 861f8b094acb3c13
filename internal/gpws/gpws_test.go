package gpws

import (
	"testing"

	"github.com/steamgauges/extension/pkg/core"
	"github.com/stretchr/testify/assert"
)

func airborne(alt, ra, vs float64) Input {
	return Input{Altitude: alt, RadarAltitude: ra, VerticalSpeed: vs, SurfaceSpeed: 80}
}

func TestEvaluate_SinkrateBeatsDontSink(t *testing.T) {
	e := New(true)
	e.Evaluate(airborne(1000, 400, 0))

	// 100 m lost since the peak and sinking at 40 m/s: modes 1A and 3 both trigger
	in := airborne(900, 300, -40)
	assert.Equal(t, core.WarningSinkrate, e.Evaluate(in))
}

func TestEvaluate_FirstMatchWins(t *testing.T) {
	e := New(true)
	// inside both the mode 1A and mode 2 envelopes
	assert.Equal(t, core.WarningSinkrate, e.Evaluate(airborne(400, 400, -31)))
}

func TestEvaluate_DontSink(t *testing.T) {
	t.Run("altitude loss", func(t *testing.T) {
		e := New(true)
		assert.Equal(t, core.WarningNone, e.Evaluate(airborne(1000, 400, 0)))
		assert.Equal(t, 1000.0, e.MaxAltitude())
		assert.Equal(t, core.WarningDontSink, e.Evaluate(airborne(900, 300, -0.5)))
	})

	t.Run("descent rate against height", func(t *testing.T) {
		e := New(true)
		assert.Equal(t, core.WarningDontSink, e.Evaluate(airborne(40, 40, -5)))
	})

	t.Run("touchdown resets the peak", func(t *testing.T) {
		e := New(true)
		e.Evaluate(airborne(1000, 400, 0))
		e.Evaluate(Input{Landed: true, Altitude: 70})
		assert.Equal(t, 70.0, e.MaxAltitude())
		assert.Equal(t, core.WarningNone, e.Evaluate(airborne(69, 300, -0.5)))
	})
}

func TestEvaluate_Mode4(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want core.WarningState
	}{
		{
			name: "fast with gear up",
			in:   Input{Altitude: 200, RadarAltitude: 200, SurfaceSpeed: 120, RetractableGear: true},
			want: core.WarningTooLowTerrain,
		},
		{
			name: "slow and low with gear up",
			in:   Input{Altitude: 100, RadarAltitude: 100, SurfaceSpeed: 50, RetractableGear: true},
			want: core.WarningTooLowGear,
		},
		{
			name: "slow but above gear altitude",
			in:   Input{Altitude: 200, RadarAltitude: 200, SurfaceSpeed: 50, RetractableGear: true},
			want: core.WarningNone,
		},
		{
			name: "gear down",
			in:   Input{Altitude: 100, RadarAltitude: 100, SurfaceSpeed: 50, RetractableGear: true, GearDeployed: true},
			want: core.WarningNone,
		},
		{
			name: "fixed gear",
			in:   Input{Altitude: 100, RadarAltitude: 100, SurfaceSpeed: 120},
			want: core.WarningNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(true).Evaluate(tt.in))
		})
	}
}

func TestEvaluate_BankAngle(t *testing.T) {
	tests := []struct {
		ra, roll float64
		want     core.WarningState
	}{
		{500, -45, core.WarningBankAngle},
		{500, 45, core.WarningBankAngle},
		{500, 30, core.WarningNone},
		{8, 11, core.WarningBankAngle},
		{30, 37, core.WarningBankAngle},
		{30, 35, core.WarningNone},
		{4, 60, core.WarningNone},
		{1200, 80, core.WarningNone},
	}

	for _, tt := range tests {
		in := Input{Altitude: tt.ra, RadarAltitude: tt.ra, Roll: tt.roll, SurfaceSpeed: 50}
		if got := New(true).Evaluate(in); got != tt.want {
			t.Errorf("ra=%v roll=%v: got %v, want %v", tt.ra, tt.roll, got, tt.want)
		}
	}
}

func TestEvaluate_Gates(t *testing.T) {
	assert.Equal(t, core.WarningNone, New(false).Evaluate(airborne(300, 300, -40)))
	assert.Equal(t, core.WarningNone, New(true).Evaluate(airborne(3, 3, -40)))
	assert.Equal(t, core.WarningNone, New(true).Evaluate(Input{Landed: true, RadarAltitude: 300, VerticalSpeed: -40}))
}

func TestInputFromSnapshot(t *testing.T) {
	v := core.VesselSnapshot{
		Altitude:      1200,
		RadarAltitude: 300,
		VerticalSpeed: -4,
		SurfaceSpeed:  90,
		Roll:          -12,
		Flags:         core.Flags{Splashed: true, RetractableGear: true},
	}
	in := InputFromSnapshot(v)
	assert.True(t, in.Landed)
	assert.True(t, in.RetractableGear)
	assert.Equal(t, -12.0, in.Roll)
}
