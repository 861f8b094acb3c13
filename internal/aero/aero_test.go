package aero

import (
	"math"
	"testing"

	"github.com/steamgauges/extension/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestTerminalVelocity(t *testing.T) {
	parts := []core.PartDrag{
		{Mass: 1, MaxDrag: 0.2, Significant: true},
		{Mass: 3, MaxDrag: 0.2, Significant: true},
		{Mass: 50, MaxDrag: 1, Significant: false},
	}

	got := TerminalVelocity(4, 9.81, 1.2, parts)
	assert.True(t, got.Valid())
	assert.InDelta(t, math.Sqrt(2*4*9.81/(1.2*0.8)), got.Value, 1e-9)
}

func TestTerminalVelocity_Substitutions(t *testing.T) {
	parts := []core.PartDrag{{Mass: 1, MaxDrag: 0.2, Significant: true}}

	vacuum := TerminalVelocity(4, 9.81, 0, parts)
	assert.Equal(t, 0.0, vacuum.Value)
	assert.Equal(t, NoAtmosphere, vacuum.Substituted)

	noDrag := TerminalVelocity(4, 9.81, 1.2, []core.PartDrag{{Mass: 1, MaxDrag: 0.2}})
	assert.Equal(t, 0.0, noDrag.Value)
	assert.Equal(t, NoDrag, noDrag.Substituted)
	assert.False(t, math.IsNaN(noDrag.Value))
}

func TestMach(t *testing.T) {
	a := SpeedOfSound(288.15)
	assert.InDelta(t, 340.3, a.Value, 0.1)

	m := Mach(680.6, 288.15)
	assert.InDelta(t, 2.0, m.Value, 0.001)

	assert.Equal(t, 0.0, Mach(-50, 288.15).Value)

	space := Mach(2000, 0)
	assert.Equal(t, NoAtmosphere, space.Substituted)
	assert.Equal(t, 0.0, space.Value)
}

func TestEquivalentAirspeed(t *testing.T) {
	assert.InDelta(t, 100, EquivalentAirspeed(100, SeaLevelDensity).Value, 1e-9)
	assert.InDelta(t, 50, EquivalentAirspeed(100, SeaLevelDensity/4).Value, 1e-9)
	assert.Equal(t, NoAtmosphere, EquivalentAirspeed(100, 0).Substituted)
}

func TestIntakeBalance(t *testing.T) {
	engines := []core.Engine{
		{Ignited: true, Propellants: []core.PropellantDemand{{Name: IntakeAir, Requirement: 0.5}, {Name: "LiquidFuel", Requirement: 9}}},
		{Ignited: true, Shutdown: true, Propellants: []core.PropellantDemand{{Name: IntakeAir, Requirement: 100}}},
		{Ignited: false, Propellants: []core.PropellantDemand{{Name: IntakeAir, Requirement: 100}}},
	}
	intakes := []core.Intake{
		{Enabled: true, Resource: IntakeAir, AirFlow: 25},
		{Enabled: false, Resource: IntakeAir, AirFlow: 1000},
		{Enabled: true, Resource: "Oxidizer", AirFlow: 1000},
	}

	b := IntakeBalance(engines, intakes, IntakeAir, 0.02)
	assert.InDelta(t, 0.5, b.Required, 1e-12)
	assert.InDelta(t, 0.5, b.Available, 1e-12)
	assert.InDelta(t, 1, b.Ratio, 1e-12)
	assert.Equal(t, Computed, b.Substituted)
	assert.InDelta(t, 270, b.Needle(), 1e-9)
}

func TestIntakeBalance_ClampsAndSubstitutes(t *testing.T) {
	intakes := []core.Intake{{Enabled: true, Resource: IntakeAir, AirFlow: 1000}}

	none := IntakeBalance(nil, intakes, IntakeAir, 0.02)
	assert.Equal(t, NoDemand, none.Substituted)
	assert.Equal(t, 6.0, none.Ratio)
	assert.InDelta(t, 0, none.Needle(), 1e-9)

	engines := []core.Engine{{Ignited: true, Propellants: []core.PropellantDemand{{Name: IntakeAir, Requirement: 0.1}}}}
	flood := IntakeBalance(engines, intakes, IntakeAir, 0.02)
	assert.Equal(t, 6.0, flood.Ratio)

	starved := IntakeBalance(engines, nil, IntakeAir, 0.02)
	assert.Equal(t, 0.0, starved.Ratio)
	assert.InDelta(t, 355, starved.Needle(), 1e-9)
}
