package parser

import (
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

type orb = core.OrbitSnapshot

func orbitFields() []field[orb] {
	return []field[orb]{
		text("body", func(o *orb) *string { return &o.Body }),
		num("bodyRadius", func(o *orb) *float64 { return &o.BodyRadius }),
		num("mu", func(o *orb) *float64 { return &o.Mu }),
		num("apA", func(o *orb) *float64 { return &o.ApA }),
		num("peA", func(o *orb) *float64 { return &o.PeA }),
		num("apR", func(o *orb) *float64 { return &o.ApR }),
		num("peR", func(o *orb) *float64 { return &o.PeR }),
		num("eccentricity", func(o *orb) *float64 { return &o.Eccentricity }),
		num("inclination", func(o *orb) *float64 { return &o.Inclination }),
		num("lan", func(o *orb) *float64 { return &o.LAN }),
		num("argumentOfPeriapsis", func(o *orb) *float64 { return &o.ArgumentOfPeriapsis }),
		num("semiMajorAxis", func(o *orb) *float64 { return &o.SemiMajorAxis }),
		num("period", func(o *orb) *float64 { return &o.Period }),
		num("timeToAp", func(o *orb) *float64 { return &o.TimeToAp }),
		num("timeToPe", func(o *orb) *float64 { return &o.TimeToPe }),
		num("meanAnomalyAtEpoch", func(o *orb) *float64 { return &o.MeanAnomalyAtEpoch }),
		num("epoch", func(o *orb) *float64 { return &o.Epoch }),
	}
}

type tg = core.Target

func targetFields() []field[tg] {
	head := []field[tg]{
		text("name", func(t *tg) *string { return &t.Name }),
		vector("relativePosition", func(t *tg) *vecmath.Vec3 { return &t.RelativePosition }),
		vector("relativeVelocity", func(t *tg) *vecmath.Vec3 { return &t.RelativeVelocity }),
	}
	return append(head, embed(orbitFields(), func(t *tg) *orb { return &t.Orbit })...)
}

// ParseOrbit parses the vessel's orbit.
func (p *Parser) ParseOrbit(data []string) (core.OrbitSnapshot, error) {
	return parseFields(p, ":ORBIT:", p.orbit, data)
}

// ParseTarget parses the selected target: name, relative position and
// velocity, then the target's orbit in the :ORBIT: layout.
func (p *Parser) ParseTarget(data []string) (core.Target, error) {
	t, err := parseFields(p, ":TARGET:", p.target, data)
	if err != nil {
		return t, err
	}
	p.logger.Debug("Parsed target", "name", t.Name, "distance", t.Distance())
	return t, nil
}
