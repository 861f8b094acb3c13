package instruments

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamgauges/extension/internal/gpws"
	"github.com/steamgauges/extension/internal/orbit"
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

const munMu = 6.5138398e10

func glyphs(g ...core.Glyph) []core.Glyph { return g }

// munDescent is a vessel falling toward the Mun with engines ready.
func munDescent(ra float64) core.VesselSnapshot {
	return core.VesselSnapshot{
		Body:          "Mun",
		RadarAltitude: ra,
		VerticalSpeed: -50,
		Gravity:       munMu / (200000.0 * 200000.0),
		Mass:          10,
		MaxThrust:     60,
		Isp:           300,
		Orbit: core.OrbitSnapshot{
			Body: "Mun", BodyRadius: 200000, Mu: munMu, PeA: -150000,
		},
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" HUD ")
	require.NoError(t, err)
	assert.Equal(t, KindHUD, k)

	_, err = ParseKind("altimeter")
	assert.Error(t, err)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	for _, k := range Kinds {
		assert.True(t, s.IsEnabled(k), k)
	}
	assert.Equal(t, 25.0, s.Air.CriticalAoA)
	assert.Equal(t, 1.2, s.Orbit.GreenAlt)
	assert.True(t, s.Node.CalculatedBurn)

	s.Enabled[KindNav] = false
	assert.False(t, s.IsEnabled(KindNav))
	assert.True(t, Settings{}.IsEnabled(KindNav), "missing entries are on")
}

func TestEASCoefficient(t *testing.T) {
	assert.Equal(t, 1.0, easCoefficient(core.VesselSnapshot{EASCoefficient: 0.5}, false))
	assert.Equal(t, 0.5, easCoefficient(core.VesselSnapshot{EASCoefficient: 0.5}, true))
	assert.InDelta(t, 1.0, easCoefficient(core.VesselSnapshot{Density: 1.225}, true), 1e-12)
	assert.Equal(t, 1.0, easCoefficient(core.VesselSnapshot{}, true))
}

func TestAir(t *testing.T) {
	s := DefaultSettings().Air

	t.Run("stall lamp", func(t *testing.T) {
		r := Air(core.VesselSnapshot{AngleOfAttack: 30, Mach: 1.25}, s)
		assert.Equal(t, core.LightRed, r.Stall)
		assert.Equal(t, []int{3, 0, 0}, r.AoA.Digits())
		assert.Equal(t, []int{1, 2, 5}, r.Mach.Digits())
		assert.True(t, r.SoundShown)
		assert.False(t, r.TerminalShown)
	})

	t.Run("landed reads zero", func(t *testing.T) {
		v := core.VesselSnapshot{AngleOfAttack: 30}
		v.Flags.Landed = true
		r := Air(v, s)
		assert.Equal(t, core.LightOff, r.Stall)
		assert.Equal(t, []int{0, 0}, r.AoA.Digits())
	})

	t.Run("mach below the minimum", func(t *testing.T) {
		r := Air(core.VesselSnapshot{Mach: 0.3}, s)
		assert.Equal(t, []int{0, 0, 0}, r.Mach.Digits())
	})

	t.Run("terminal velocity", func(t *testing.T) {
		v := core.VesselSnapshot{
			Mass: 2, Gravity: 9.81, Density: 1.225,
			DragParts: []core.PartDrag{{Mass: 2, MaxDrag: 0.2, Significant: true}},
		}
		r := Air(v, s)
		assert.True(t, r.TerminalShown)
		assert.Greater(t, r.Terminal, 0.0)
	})
}

func TestFuel(t *testing.T) {
	s := DefaultSettings().Fuel
	v := core.VesselSnapshot{Resources: core.Resources{Fuel: 0.5, Mono: 0.2, EVAFuel: 0.05}}

	r := Fuel(v, s)
	assert.InDelta(t, 0, r.Fuel, 1e-9)
	assert.InDelta(t, 21.6, r.Mono, 1e-9)
	assert.Equal(t, core.LightGreen, r.FuelLight)
	assert.Equal(t, core.LightYellow, r.MonoLight)

	v.Flags.EVA = true
	r = Fuel(v, s)
	assert.True(t, r.EVA)
	assert.InDelta(t, -32.4, r.Fuel, 1e-9)
	assert.Equal(t, core.LightRed, r.FuelLight)
}

func TestElectrical(t *testing.T) {
	s := DefaultSettings().Fuel
	r := Electrical(core.VesselSnapshot{Resources: core.Resources{Charge: 1, ChargeRate: -10}}, s)
	assert.InDelta(t, -36, r.Charge, 1e-9)
	assert.InDelta(t, -26, r.Rate, 1e-9)
	assert.Equal(t, core.LightGreen, r.Light)

	r = Electrical(core.VesselSnapshot{Resources: core.Resources{Charge: 0.05, ChargeRate: 0.5}}, s)
	assert.InDelta(t, 6.5, r.Rate, 1e-9)
	assert.Equal(t, core.LightRed, r.Light)
}

func TestAblatorLamps(t *testing.T) {
	tests := map[float64]int{0: 0, -1: 0, 0.05: 1, 0.1: 2, 0.5: 6, 0.95: 10, 1: 10}
	for frac, want := range tests {
		assert.Equal(t, want, AblatorLamps(frac), "fraction %v", frac)
	}
}

func TestTemperature(t *testing.T) {
	r := Temperature(core.VesselSnapshot{MaxPartTemperature: 0.5, MaxPartTemperatureK: 1234.5, AblatorFraction: 0.3})
	assert.InDelta(t, 1, r.Needle, 1e-9)
	assert.Equal(t, 4, r.Ablator)
	assert.Equal(t, glyphs(1, 2, 3, 4), r.Temperature.Glyphs)
	assert.InDelta(t, 4.5, r.Temperature.Roll, 1e-9)

	r = Temperature(core.VesselSnapshot{MaxPartTemperatureK: 42})
	assert.Equal(t, glyphs(0, 0, 4, 2), r.Temperature.Glyphs)
}

func TestRadar_HiddenAboveCeiling(t *testing.T) {
	r := Radar(munDescent(6000), DefaultSettings().Radar, Env{}, nil)
	assert.False(t, r.Visible)
	assert.Equal(t, -1.0, r.SuicideAlt)
}

func TestRadar_Calibration(t *testing.T) {
	s := DefaultSettings().Radar
	s.Calibration = 100
	v := munDescent(500)
	r := Radar(v, s, Env{}, nil)
	require.True(t, r.Visible)
	assert.Equal(t, 400.0, r.RadarAltitude)
	assert.InDelta(t, 141.5, r.Needle, 1e-9)
	assert.Equal(t, core.LightGreen, r.Light)

	s.Calibration = 1000
	r = Radar(v, s, Env{}, nil)
	assert.Equal(t, 0.0, r.RadarAltitude, "never below zero")
	assert.Equal(t, core.LightRed, r.Light)
}

func TestRadar_SuicideBurn(t *testing.T) {
	r := Radar(munDescent(1000), DefaultSettings().Radar, Env{}, nil)
	assert.Equal(t, 474.0, r.SuicideAlt)
	assert.NotEmpty(t, r.TimeToImpact.Glyphs)

	atmo := munDescent(1000)
	atmo.Body = "Kerbin"
	r = Radar(atmo, DefaultSettings().Radar, Env{}, nil)
	assert.Equal(t, -1.0, r.SuicideAlt)
	assert.Equal(t, 350.0, r.SuicideNeedle)
}

func TestRadar_SuicideMarkerParkedWithoutSolution(t *testing.T) {
	landed := munDescent(300)
	landed.Flags.Landed = true
	landed.VerticalSpeed = 0
	r := Radar(landed, DefaultSettings().Radar, Env{}, nil)
	require.True(t, r.Visible)
	assert.Equal(t, -1.0, r.SuicideAlt)
	assert.Equal(t, 350.0, r.SuicideNeedle)
	assert.Equal(t, 637.0, r.SuicideTape)

	noEngine := munDescent(300)
	noEngine.MaxThrust = 0
	r = Radar(noEngine, DefaultSettings().Radar, Env{}, nil)
	assert.Equal(t, 350.0, r.SuicideNeedle)

	r = Radar(munDescent(1000), DefaultSettings().Radar, Env{}, nil)
	assert.InDelta(t, 141.5+(474.0-400)*0.385, r.SuicideNeedle, 1e-6)
}

func TestRadarAutomation_Step(t *testing.T) {
	t.Run("auto burn fires once", func(t *testing.T) {
		a := RadarAutomation{AutoBurn: true}
		cmd, note := a.Step(100, 95, true, -20, 1)
		assert.Equal(t, core.Some(1.0), cmd.Throttle)
		assert.NotEmpty(t, note)
		assert.True(t, a.Burning)
		assert.False(t, a.AutoBurn)

		cmd, _ = a.Step(90, 95, true, -20, 1)
		assert.True(t, cmd.Empty())
	})

	t.Run("needs an estimate", func(t *testing.T) {
		a := RadarAutomation{AutoBurn: true}
		cmd, _ := a.Step(5, -1, false, -20, 1)
		assert.True(t, cmd.Empty())
		assert.True(t, a.AutoBurn)
	})

	t.Run("contact stop", func(t *testing.T) {
		a := RadarAutomation{ContactStop: true, Burning: true}
		cmd, _ := a.Step(0.5, 0, true, -1, 1)
		assert.Equal(t, core.Some(0.0), cmd.Throttle)
		assert.False(t, a.ContactStop)
		assert.False(t, a.Burning)
	})

	t.Run("climbing stop", func(t *testing.T) {
		a := RadarAutomation{ContactStop: true, Burning: true, AutoBurn: true}
		cmd, _ := a.Step(50, 0, true, 3, 1)
		assert.Equal(t, core.Some(0.0), cmd.Throttle)
		assert.False(t, a.AutoBurn)
	})
}

func TestRadar_AutoBurnThroughGauge(t *testing.T) {
	a := &RadarAutomation{AutoBurn: true}
	s := DefaultSettings().Radar

	r := Radar(munDescent(1000), s, Env{}, a)
	assert.True(t, r.Commands.Empty())
	assert.True(t, r.AutoBurnArmed)

	r = Radar(munDescent(250), s, Env{}, a)
	assert.Equal(t, core.Some(1.0), r.Commands.Throttle)
	assert.True(t, r.Burning)
	assert.False(t, r.AutoBurnArmed)
}

func TestTimeToBurn(t *testing.T) {
	assert.Equal(t, 90.0, TimeToBurn(100, 200, 20))
	assert.Equal(t, 10.0, TimeToBurn(0, 10.7, 1))
	assert.Equal(t, 0.0, TimeToBurn(300, 200, 20))
}

func TestNode(t *testing.T) {
	s := DefaultSettings().Node

	r := Node(core.VesselSnapshot{Throttle: 0.5}, s, nil)
	assert.True(t, r.NoNode)
	assert.InDelta(t, -90, r.Throttle, 1e-9)

	v := core.VesselSnapshot{
		UT:      100,
		Forward: vecmath.V(1, 0, 0),
		Up:      vecmath.V(0, 0, 1),
		Right:   vecmath.V(0, -1, 0),
		Node: core.Some(core.ManeuverNode{
			UT: 200, BurnVector: vecmath.V(1, 0, 1), RemainingDV: 25, TotalDV: 100, BurnTime: 20,
		}),
	}
	s.CalculatedBurn = false
	r = Node(v, s, nil)
	assert.False(t, r.NoNode)
	assert.InDelta(t, -45, r.DVNeedle, 1e-9)
	assert.Equal(t, glyphs(0, 0, 0, 0, 1, 3, 0), r.TimeToBurn.Glyphs)
	assert.InDelta(t, 45, math.Abs(r.Pitch), 1e-9)
	assert.InDelta(t, 0, r.Yaw, 1e-9)
}

func TestNode_ZeroTotal(t *testing.T) {
	v := core.VesselSnapshot{Node: core.Some(core.ManeuverNode{UT: 10})}
	r := Node(v, DefaultSettings().Node, nil)
	assert.InDelta(t, 0, r.DVNeedle, 1e-9)
}

func TestNodeBurnTime(t *testing.T) {
	n := core.ManeuverNode{RemainingDV: 500, BurnTime: 42}
	assert.Equal(t, 42.0, NodeBurnTime(core.VesselSnapshot{}, n, false))
	assert.Equal(t, 42.0, NodeBurnTime(core.VesselSnapshot{}, n, true), "no thrust falls back to the host")

	v := core.VesselSnapshot{Mass: 10, MaxThrust: 100}
	assert.InDelta(t, 50, NodeBurnTime(v, n, true), 1e-9)

	n.BurnTime = math.Inf(1)
	assert.Equal(t, 0.0, NodeBurnTime(core.VesselSnapshot{}, n, false))
}

func TestNodeAutomation_Step(t *testing.T) {
	t.Run("warp down ahead of the burn", func(t *testing.T) {
		a := NodeAutomation{AutoBurn: true}
		cmd, _ := a.Step(NodeReading{timeToBurn: 30}, 0, 6)
		assert.Equal(t, core.Some(2), cmd.WarpIndex)
		assert.False(t, cmd.Throttle.Valid)
		assert.True(t, a.AutoBurn)

		cmd, _ = a.Step(NodeReading{timeToBurn: 3000}, 0, 3)
		assert.True(t, cmd.Empty(), "already slow enough")
	})

	t.Run("burn starts on target", func(t *testing.T) {
		a := NodeAutomation{AutoBurn: true}
		cmd, _ := a.Step(NodeReading{Pitch: 5}, 0, 0)
		assert.True(t, cmd.Empty(), "off target")

		cmd, note := a.Step(NodeReading{Pitch: 1}, 0, 0)
		assert.Equal(t, core.Some(1.0), cmd.Throttle)
		assert.NotEmpty(t, note)
		assert.False(t, a.AutoBurn)
	})

	t.Run("auto stop", func(t *testing.T) {
		a := NodeAutomation{AutoStop: true}
		cmd, _ := a.Step(NodeReading{remainingDV: 50, Pitch: 1}, 1, 0)
		assert.True(t, cmd.Empty())

		cmd, _ = a.Step(NodeReading{remainingDV: 50, Yaw: 10}, 1, 0)
		assert.Equal(t, core.Some(0.0), cmd.Throttle)
		assert.False(t, a.AutoStop)

		a.AutoStop = true
		cmd, _ = a.Step(NodeReading{remainingDV: 0.2}, 1, 0)
		assert.Equal(t, core.Some(0.0), cmd.Throttle)
	})
}

func TestOrbitLights(t *testing.T) {
	const floor, green = 70000.0, 1.2
	ap := func(a, e float64) core.Light {
		return apoapsisLight(core.OrbitSnapshot{ApA: a, Eccentricity: e}, floor, green)
	}
	assert.Equal(t, core.LightRed, ap(60000, 0.1))
	assert.Equal(t, core.LightGreen, ap(80000, 0.1))
	assert.Equal(t, core.LightOff, ap(100000, 0.1))
	assert.Equal(t, core.LightYellow, ap(-1e6, 1.5))

	pe := func(p float64) core.Light {
		return periapsisLight(core.OrbitSnapshot{PeA: p}, floor, green)
	}
	assert.Equal(t, core.LightRed, pe(-5))
	assert.Equal(t, core.LightYellow, pe(50000))
	assert.Equal(t, core.LightGreen, pe(75000))
	assert.Equal(t, core.LightOff, pe(90000))
}

func TestInBurnWindow(t *testing.T) {
	assert.True(t, inBurnWindow(20, 1000, 30))
	assert.True(t, inBurnWindow(980, 1000, 30), "just passed")
	assert.False(t, inBurnWindow(500, 1000, 30))
}

func TestOrbit(t *testing.T) {
	s := DefaultSettings().Orbit
	s.ShowNegativePe = false
	v := core.VesselSnapshot{Body: "Kerbin", Orbit: core.OrbitSnapshot{
		Body: "Kerbin", ApA: 100000, PeA: -100, Inclination: 5,
		Eccentricity: 0.1, Period: 2000, TimeToAp: 50, TimeToPe: 1050,
	}}
	r := Orbit(v, s, Env{})
	assert.Equal(t, 70000.0, r.Floor)
	assert.Equal(t, -5.0, r.Inclination)
	assert.Equal(t, glyphs(0, core.GlyphMeters), r.Periapsis.Glyphs)
	assert.Equal(t, glyphs(1, 0, 0, core.GlyphKilo), r.Apoapsis.Glyphs)
	assert.Equal(t, core.LightRed, r.PeLight)
	assert.False(t, r.Circular)
	assert.Equal(t, EventApoapsis, r.Next)
	assert.True(t, r.NextTime.Rolling)

	v.Orbit.PeA = 95000
	r = Orbit(v, s, Env{})
	assert.True(t, r.Circular)
}

func TestNextEvent(t *testing.T) {
	t.Run("hyperbolic has no apoapsis", func(t *testing.T) {
		v := core.VesselSnapshot{Orbit: core.OrbitSnapshot{Eccentricity: 1.2, TimeToAp: 10, TimeToPe: 100}}
		e, sec := NextEvent(v)
		assert.Equal(t, EventPeriapsis, e)
		assert.Equal(t, 100.0, sec)
	})

	t.Run("relative nodes", func(t *testing.T) {
		const mu, a = 3.5316e12, 700000.0
		own := core.OrbitSnapshot{Mu: mu, SemiMajorAxis: a, TimeToAp: 1e9, TimeToPe: 1e9}
		tgt := core.OrbitSnapshot{Mu: mu, SemiMajorAxis: 800000, Inclination: 10, LAN: 30}
		v := core.VesselSnapshot{Orbit: own, Target: core.Some(core.Target{Orbit: tgt})}

		e, sec := NextEvent(v)
		assert.Contains(t, []OrbitEvent{EventAscending, EventDescending}, e)
		period := 2 * math.Pi * math.Sqrt(a*a*a/mu)
		assert.GreaterOrEqual(t, sec, 0.0)
		assert.LessOrEqual(t, sec, period)
	})
}

func TestRendezvous(t *testing.T) {
	s := DefaultSettings().Rendezvous
	assert.True(t, Rendezvous(core.VesselSnapshot{}, s, Env{}).NoTarget)

	v := core.VesselSnapshot{
		Orbit: core.OrbitSnapshot{Inclination: 2},
		Target: core.Some(core.Target{
			Orbit:            core.OrbitSnapshot{Inclination: 5, ApA: 90000, PeA: 85000},
			RelativePosition: vecmath.V(30, 40, 0),
			RelativeVelocity: vecmath.V(-1.5, 20, -1),
		}),
	}
	r := Rendezvous(v, s, Env{})
	assert.False(t, r.NoTarget)
	assert.Equal(t, 3.0, r.Inclination)
	assert.Equal(t, glyphs(5, 0, core.GlyphMeters), r.Distance.Glyphs)
	assert.Equal(t, core.LightYellow, r.DistanceLight)
	assert.Equal(t, "-1.5", r.Closure.String())
	assert.InDelta(t, 144, r.DriftX, 1e-9, "pegged at the clamp")
	assert.InDelta(t, -45, r.DriftY, 1e-9)
	assert.Empty(t, r.ClosestDistance.Glyphs, "no orbits to propagate")
}

type fixedApproach struct{ calls int }

func (f *fixedApproach) ClosestApproach(_, _ orbit.Elements, _ float64) orbit.Approach {
	f.calls++
	return orbit.Approach{Distance: 1234, TimeOffset: 3665}
}

func TestRendezvous_ClosestApproach(t *testing.T) {
	const mu = 3.5316e12
	f := &fixedApproach{}
	v := core.VesselSnapshot{
		Orbit:  core.OrbitSnapshot{Mu: mu, SemiMajorAxis: 700000},
		Target: core.Some(core.Target{Orbit: core.OrbitSnapshot{Mu: mu, SemiMajorAxis: 710000}}),
	}
	r := Rendezvous(v, DefaultSettings().Rendezvous, Env{Approaches: f})
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, glyphs(1, 2, 3, 4, core.GlyphMeters), r.ClosestDistance.Glyphs)
	assert.Equal(t, glyphs(0, 0, 1, 0, 1, 0, 5), r.ClosestTime.Glyphs)
}

func TestNav(t *testing.T) {
	r := Nav(core.VesselSnapshot{Body: "Kerbin"}, Env{})
	assert.True(t, r.Off)
	assert.Equal(t, 90.0, r.Pointer)

	v := core.VesselSnapshot{
		Body:            "Kerbin",
		HorizontalSpeed: 0,
		Waypoint:        core.Some(core.Waypoint{Name: "KSC", Longitude: 1}),
	}
	r = Nav(v, Env{})
	require.False(t, r.Off)
	assert.Equal(t, "KSC", r.Waypoint)
	assert.InDelta(t, 90, r.Bearing, 1e-9)
	assert.InDelta(t, 90, r.Pointer, 1e-9)
	assert.True(t, r.Kilometers)
	assert.Equal(t, glyphs(0, 1, 0, 4), r.Distance.Glyphs)
	assert.Equal(t, glyphs(9, 9, 5, 9, 5, 9), r.ETE.Glyphs, "stationary reads the maximum")

	v.Heading = 90
	r = Nav(v, Env{})
	assert.InDelta(t, 0, r.Pointer, 1e-9)
	assert.InDelta(t, 0, r.CrossTrack, 1e-6)
}

func TestCompass(t *testing.T) {
	assert.InDelta(t, 0.7848, Compass(core.VesselSnapshot{}).Offset, 1e-12)
	assert.InDelta(t, 0.7848, Compass(core.VesselSnapshot{Heading: 360}).Offset, 1e-12)
	assert.InDelta(t, 0.7848-90*0.00215, Compass(core.VesselSnapshot{Heading: -270}).Offset, 1e-12)
}

func TestPathVector(t *testing.T) {
	tests := []struct {
		name       string
		x, y       float64
		wantX      float64
		wantY      float64
		size       float64
		retrograde bool
	}{
		{"centred", 0, 0, 0, 0, 1, false},
		{"pinned sideways", 28, 0, 14, 0, 0.5, false},
		{"pinned vertically", 0, 60, 0, 30, 0.5, false},
		{"size floor", 56, 0, 14, 0, 0.5, false},
		{"retrograde", 170, 175, -10, -5, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := PathVector(tt.x, tt.y)
			assert.True(t, fv.Shown)
			assert.InDelta(t, tt.wantX, fv.X, 1e-9)
			assert.InDelta(t, tt.wantY, fv.Y, 1e-9)
			assert.InDelta(t, tt.size, fv.Size, 1e-9)
			assert.Equal(t, tt.retrograde, fv.Retrograde)
			assert.InDelta(t, fv.X*10.8, fv.PixelX, 1e-9)
		})
	}
}

func TestHUD(t *testing.T) {
	s := DefaultSettings().HUD

	t.Run("orbital", func(t *testing.T) {
		v := core.VesselSnapshot{Body: "Kerbin", Altitude: 100000, OrbitalSpeed: 2200, SurfaceSpeed: 2000}
		v.Flags.Orbiting = true
		r := HUD(v, s, Env{}, nil)
		assert.True(t, r.Orbital)
		assert.Equal(t, 2200.0, r.Speed)
		require.True(t, r.SpeedOnTape)
		assert.Equal(t, 2, r.SpeedTape.Band)
		assert.Empty(t, r.GroundSpeed.Glyphs)
		assert.False(t, r.MachShown, "above the atmosphere")
		assert.False(t, r.Vector.Shown)
	})

	t.Run("atmospheric", func(t *testing.T) {
		v := core.VesselSnapshot{
			Body: "Kerbin", Altitude: 10000, RadarAltitude: 100, SurfaceSpeed: 100,
			HorizontalSpeed: 80, VerticalSpeed: -50, Mach: 0.8, GForce: 3, Roll: 2,
			SurfaceVelocity: vecmath.V(1, 0, 0), Forward: vecmath.V(1, 0, 0),
			Up: vecmath.V(0, 0, 1), Right: vecmath.V(0, -1, 0),
		}
		r := HUD(v, s, Env{}, gpws.New(true))
		assert.False(t, r.Orbital)
		assert.Equal(t, 100.0, r.Speed)
		assert.Equal(t, 0, r.SpeedTape.Band)
		assert.NotEmpty(t, r.GroundSpeed.Glyphs)
		assert.True(t, r.MachShown)
		assert.True(t, r.GShown)
		assert.True(t, r.FineRollShown)
		assert.Equal(t, 20.0, r.FineRoll)
		assert.Less(t, r.VVIBox, 0.0)
		assert.True(t, r.Vector.Shown)
		assert.InDelta(t, 0, r.Vector.X, 1e-9)
		assert.Equal(t, core.WarningSinkrate, r.Warning)
	})

	t.Run("gpws off", func(t *testing.T) {
		off := s
		off.UseGPWS = false
		v := core.VesselSnapshot{RadarAltitude: 100, VerticalSpeed: -50}
		assert.Equal(t, core.WarningNone, HUD(v, off, Env{}, gpws.New(true)).Warning)
	})
}
