package orbit

import (
	"errors"
	"math"
	"testing"

	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kerbinMu = 3.5316e12

func circular(radius, inclinationDeg, lanDeg, meanAnomaly float64) Elements {
	return Elements{
		Mu:                 kerbinMu,
		SemiMajorAxis:      radius,
		Inclination:        vecmath.Radians(inclinationDeg),
		LAN:                vecmath.Radians(lanDeg),
		MeanAnomalyAtEpoch: meanAnomaly,
	}
}

func TestAnomalyRoundTrip_Elliptical(t *testing.T) {
	for _, e := range []float64{0, 0.1, 0.5, 0.9} {
		for nu := 0.0; nu < 2*math.Pi; nu += 0.37 {
			E, err := TrueToEccentric(e, nu)
			require.NoError(t, err)
			assert.InDelta(t, nu, EccentricToTrue(e, E), 1e-9, "e=%f nu=%f", e, nu)

			M := EccentricToMean(e, E)
			assert.InDelta(t, E, MeanToEccentric(e, M), 1e-9, "e=%f nu=%f", e, nu)
		}
	}
}

func TestAnomalyRoundTrip_Hyperbolic(t *testing.T) {
	e := 1.5
	for _, nu := range []float64{-1.5, -0.7, 0, 0.4, 1.6} {
		E, err := TrueToEccentric(e, nu)
		require.NoError(t, err)
		assert.InDelta(t, nu, EccentricToTrue(e, E), 1e-9)

		M := EccentricToMean(e, E)
		assert.InDelta(t, E, MeanToEccentric(e, M), 1e-9)
	}
}

func TestTrueToEccentric_BeyondAsymptote(t *testing.T) {
	// asymptote for e=2 is at acos(-1/2) = 120°
	_, err := TrueToEccentric(2, vecmath.Radians(150))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTrueAnomalyUnattainable))

	var typed *UnattainableAnomalyError
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, 2.0, typed.Eccentricity)

	_, err = TrueToEccentric(2, math.Pi)
	assert.ErrorIs(t, err, ErrTrueAnomalyUnattainable)
}

func TestPositionAtUT_Circular(t *testing.T) {
	el := circular(700000, 20, 45, 0.3)
	for ut := 0.0; ut < el.Period(); ut += el.Period() / 7 {
		assert.InDelta(t, 700000, el.PositionAtUT(ut).Length(), 1e-3)
		// position stays in the orbital plane
		assert.InDelta(t, 0, el.PositionAtUT(ut).Dot(el.Normal()), 1e-3)
	}
	assert.True(t, math.IsInf(Elements{Mu: kerbinMu, SemiMajorAxis: -1e6, Eccentricity: 1.2}.Period(), 1))
}

func TestClosestApproach_PhaseOffsetCircular(t *testing.T) {
	a := circular(700000, 0, 0, 0)
	b := circular(700000, 0, 0, 0.1)

	got := ClosestApproach(a, b, 0)
	assert.GreaterOrEqual(t, got.Distance, 0.0)

	for _, d := range CoarseSampleOffsets(a.Period()) {
		sample := vecmath.Distance(a.PositionAtUT(d), b.PositionAtUT(d))
		assert.LessOrEqual(t, got.Distance, sample+1e-6)
	}
	assert.InDelta(t, 2*700000*math.Sin(0.05), got.Distance, 1)
}

func TestClosestApproach_EccentricBeatsCoarseGrid(t *testing.T) {
	a := Elements{Mu: kerbinMu, SemiMajorAxis: 900000, Eccentricity: 0.2, Inclination: 0.1}
	b := circular(850000, 3, 10, 2.0)

	got := ClosestApproach(a, b, 1234)
	assert.GreaterOrEqual(t, got.Distance, 0.0)
	assert.GreaterOrEqual(t, got.TimeOffset, 0.0)
	for _, d := range CoarseSampleOffsets(a.Period()) {
		sample := vecmath.Distance(a.PositionAtUT(1234+d), b.PositionAtUT(1234+d))
		assert.LessOrEqual(t, got.Distance, sample)
	}
}

func TestClosestApproach_CrossingOrbits(t *testing.T) {
	// both start at the node and meet there again every half period
	a := circular(700000, 0, 0, 0)
	b := circular(700000, 5, 0, 0)

	got := ClosestApproach(a, b, 0)
	assert.Less(t, got.Distance, 1.0)
}

func TestClosestApproach_OpenOrbit(t *testing.T) {
	a := Elements{Mu: kerbinMu, SemiMajorAxis: -2e6, Eccentricity: 1.3}
	b := circular(700000, 0, 0, 0)

	got := ClosestApproach(a, b, 0)
	assert.Equal(t, 0.0, got.TimeOffset)
	assert.False(t, math.IsNaN(got.Distance))
}

func TestNodeTiming_HalfPeriodApart(t *testing.T) {
	a := circular(700000, 30, 40, 1.0)
	b := circular(900000, 0, 0, 0)
	period := a.Period()

	an, err := TimeOfAscendingNode(a, b, 0)
	require.NoError(t, err)
	dn, err := TimeOfDescendingNode(a, b, 0)
	require.NoError(t, err)

	assert.InDelta(t, period/2, math.Mod(an-dn+period, period), 1e-6)
	assert.InDelta(t, (2*math.Pi-1)/a.MeanMotion(), an, 1e-6)
	assert.Greater(t, an, 0.0)
	assert.Greater(t, dn, 0.0)

	// the vessel really is in b's plane at the node
	pos := a.PositionAtUT(an)
	assert.InDelta(t, 0, pos.Dot(b.Normal()), 1e-3)
	assert.Greater(t, a.PositionAtUT(an+10).Dot(b.Normal()), 0.0)
}

func TestNodeTiming_Coplanar(t *testing.T) {
	a := circular(700000, 0, 0, 0)
	b := circular(900000, 0, 0, 1)

	_, err := TimeOfAscendingNode(a, b, 0)
	assert.ErrorIs(t, err, ErrCoplanar)
}

func TestNodeTiming_HyperbolicUnattainable(t *testing.T) {
	a := Elements{
		Mu:                  kerbinMu,
		SemiMajorAxis:       -1e6,
		Eccentricity:        2,
		Inclination:         vecmath.Radians(30),
		ArgumentOfPeriapsis: math.Pi,
	}
	b := circular(900000, 0, 0, 0)

	_, err := TimeOfAscendingNode(a, b, 0)
	assert.ErrorIs(t, err, ErrTrueAnomalyUnattainable)

	_, err = TimeOfDescendingNode(a, b, 0)
	assert.NoError(t, err)
}

func TestRelativeInclination(t *testing.T) {
	a := circular(700000, 30, 40, 0)
	b := circular(900000, 0, 0, 0)
	assert.InDelta(t, 30, RelativeInclination(a, b), 1e-9)
}

func TestSuicideBurnAltitude(t *testing.T) {
	in := DescentInput{
		Mu:            6.5138398e10,
		BodyRadius:    200000,
		Gravity:       6.5138398e10 / (200000.0 * 200000.0),
		RadarAltitude: 1000,
		VerticalSpeed: -50,
		Mass:          10,
		MaxThrust:     60,
		Isp:           300,
	}

	sa, ok := SuicideBurnAltitude(in)
	require.True(t, ok)
	assert.Equal(t, 474.0, sa)

	landed := in
	landed.Landed = true
	sa, ok = SuicideBurnAltitude(landed)
	assert.False(t, ok)
	assert.Equal(t, -1.0, sa)

	noThrust := in
	noThrust.MaxThrust = 0
	_, ok = SuicideBurnAltitude(noThrust)
	assert.False(t, ok)

	orbiting := in
	orbiting.PeA = 10000
	_, ok = SuicideBurnAltitude(orbiting)
	assert.False(t, ok)
}

func TestTimeToImpact(t *testing.T) {
	tti, ok := TimeToImpact(DescentInput{Gravity: 2, RadarAltitude: 100, VerticalSpeed: -10})
	require.True(t, ok)
	assert.InDelta(t, (math.Sqrt(500)-10)/2+1, tti, 1e-9)

	_, ok = TimeToImpact(DescentInput{Gravity: 2, RadarAltitude: 100, VerticalSpeed: 5})
	assert.False(t, ok)

	_, ok = TimeToImpact(DescentInput{Gravity: 2, RadarAltitude: 100, VerticalSpeed: -5, Atmosphere: true})
	assert.False(t, ok)
}

func TestBurnTime(t *testing.T) {
	// 10 t, 100 kN, 300 s: ve = 2946 m/s, flow = 100/2946 t/s
	bt, ok := BurnTime(10, 100, 300, 500)
	require.True(t, ok)
	ve := 300 * StandardGravity
	want := (10 - 10/math.Exp(500/ve)) / (100 / ve)
	assert.InDelta(t, want, bt, 1e-9)
	assert.Less(t, bt, 500*10/100.0, "spent mass shortens the burn")

	bt, ok = BurnTime(10, 100, 0, 500)
	require.True(t, ok)
	assert.InDelta(t, 50, bt, 1e-9)

	_, ok = BurnTime(10, 0, 300, 500)
	assert.False(t, ok)

	bt, ok = BurnTime(10, 100, 300, 0)
	assert.True(t, ok)
	assert.Zero(t, bt)
}
