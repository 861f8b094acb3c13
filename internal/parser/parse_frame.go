package parser

import (
	"encoding/json"
	"fmt"

	"github.com/steamgauges/extension/internal/util"
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

type vs = core.VesselSnapshot

func (p *Parser) vesselFields() []field[vs] {
	return []field[vs]{
		num("ut", func(v *vs) *float64 { return &v.UT }),
		text("name", func(v *vs) *string { return &v.Name }),
		text("body", func(v *vs) *string { return &v.Body }),

		num("surfaceSpeed", func(v *vs) *float64 { return &v.SurfaceSpeed }),
		num("orbitalSpeed", func(v *vs) *float64 { return &v.OrbitalSpeed }),
		num("horizontalSpeed", func(v *vs) *float64 { return &v.HorizontalSpeed }),
		num("verticalSpeed", func(v *vs) *float64 { return &v.VerticalSpeed }),

		num("altitude", func(v *vs) *float64 { return &v.Altitude }),
		num("radarAltitude", func(v *vs) *float64 { return &v.RadarAltitude }),
		num("terrainAltitude", func(v *vs) *float64 { return &v.TerrainAltitude }),
		num("latitude", func(v *vs) *float64 { return &v.Latitude }),
		num("longitude", func(v *vs) *float64 { return &v.Longitude }),

		num("heading", func(v *vs) *float64 { return &v.Heading }),
		num("pitch", func(v *vs) *float64 { return &v.Pitch }),
		num("roll", func(v *vs) *float64 { return &v.Roll }),
		num("angleOfAttack", func(v *vs) *float64 { return &v.AngleOfAttack }),

		num("mass", func(v *vs) *float64 { return &v.Mass }),
		num("gravity", func(v *vs) *float64 { return &v.Gravity }),
		num("density", func(v *vs) *float64 { return &v.Density }),
		num("staticTemperature", func(v *vs) *float64 { return &v.StaticTemperature }),
		num("mach", func(v *vs) *float64 { return &v.Mach }),
		num("easCoefficient", func(v *vs) *float64 { return &v.EASCoefficient }),
		num("gForce", func(v *vs) *float64 { return &v.GForce }),

		vector("forward", func(v *vs) *vecmath.Vec3 { return &v.Forward }),
		vector("up", func(v *vs) *vecmath.Vec3 { return &v.Up }),
		vector("right", func(v *vs) *vecmath.Vec3 { return &v.Right }),
		vector("surfaceVelocity", func(v *vs) *vecmath.Vec3 { return &v.SurfaceVelocity }),
		vector("orbitalVelocity", func(v *vs) *vecmath.Vec3 { return &v.OrbitalVelocity }),

		num("throttle", func(v *vs) *float64 { return &v.Throttle }),
		integer("warpIndex", func(v *vs) *int { return &v.WarpIndex }),
		num("maxThrust", func(v *vs) *float64 { return &v.MaxThrust }),
		num("isp", func(v *vs) *float64 { return &v.Isp }),
		num("fixedDeltaTime", func(v *vs) *float64 { return &v.FixedDeltaTime }),

		{name: "resources", set: setResources},
		num("maxPartTemperature", func(v *vs) *float64 { return &v.MaxPartTemperature }),
		num("maxPartTemperatureK", func(v *vs) *float64 { return &v.MaxPartTemperatureK }),
		num("ablatorFraction", func(v *vs) *float64 { return &v.AblatorFraction }),

		{name: "flags", set: p.setFlags},
		{name: "dragParts", set: setDragParts},
		{name: "engines", set: setEngines},
		{name: "intakes", set: setIntakes},
	}
}

// FrameArgCount is the number of arguments :FRAME: carries.
func (p *Parser) FrameArgCount() int {
	return len(p.vessel)
}

// ParseFrame parses the per-frame vessel state. Orbit, target, node and
// waypoint arrive on their own commands and are left empty here.
func (p *Parser) ParseFrame(data []string) (core.VesselSnapshot, error) {
	return parseFields(p, ":FRAME:", p.vessel, data)
}

// setResources reads [fuel,mono,charge,evaFuel,chargeRate].
func setResources(v *vs, s string) error {
	r := &v.Resources
	return util.ParseTuple(s, &r.Fuel, &r.Mono, &r.Charge, &r.EVAFuel, &r.ChargeRate)
}

// setFlags reads the list of flag names that are set. Names this version
// does not know are logged and skipped.
func (p *Parser) setFlags(v *vs, s string) error {
	names, err := util.ParseStringList(s)
	if err != nil {
		return err
	}
	f := &v.Flags
	for _, name := range names {
		switch name {
		case "landed":
			f.Landed = true
		case "splashed":
			f.Splashed = true
		case "orbiting":
			f.Orbiting = true
		case "gear":
			f.GearDeployed = true
		case "retractableGear":
			f.RetractableGear = true
		case "lights":
			f.Lights = true
		case "brakes":
			f.Brakes = true
		case "sas":
			f.SAS = true
		case "rcs":
			f.RCS = true
		case "eva":
			f.EVA = true
		default:
			p.logger.Debug("Unknown vessel flag", "flag", name)
		}
	}
	return nil
}

// setDragParts reads [[mass,maxDrag,significant],...].
func setDragParts(v *vs, s string) error {
	return util.ParseTuples(s, func(_ int, elem string) error {
		var d core.PartDrag
		if err := util.ParseTuple(elem, &d.Mass, &d.MaxDrag, &d.Significant); err != nil {
			return err
		}
		v.DragParts = append(v.DragParts, d)
		return nil
	})
}

// setEngines reads [[ignited,shutdown,maxThrust,isp,[[name,requirement],...]],...].
func setEngines(v *vs, s string) error {
	return util.ParseTuples(s, func(_ int, elem string) error {
		var (
			e     core.Engine
			props json.RawMessage
		)
		if err := util.ParseTuple(elem, &e.Ignited, &e.Shutdown, &e.MaxThrust, &e.Isp, &props); err != nil {
			return err
		}
		err := util.ParseTuples(string(props), func(_ int, pe string) error {
			var d core.PropellantDemand
			if err := util.ParseTuple(pe, &d.Name, &d.Requirement); err != nil {
				return err
			}
			e.Propellants = append(e.Propellants, d)
			return nil
		})
		if err != nil {
			return fmt.Errorf("propellants: %w", err)
		}
		v.Engines = append(v.Engines, e)
		return nil
	})
}

// setIntakes reads [[enabled,resource,airFlow],...].
func setIntakes(v *vs, s string) error {
	return util.ParseTuples(s, func(_ int, elem string) error {
		var in core.Intake
		if err := util.ParseTuple(elem, &in.Enabled, &in.Resource, &in.AirFlow); err != nil {
			return err
		}
		v.Intakes = append(v.Intakes, in)
		return nil
	})
}
