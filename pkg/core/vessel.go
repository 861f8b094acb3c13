// pkg/core/vessel.go
package core

import "github.com/steamgauges/extension/internal/vecmath"

// PartDrag is the drag contribution of one part.
type PartDrag struct {
	Mass        float64 // t
	MaxDrag     float64
	Significant bool // physically significant parts only contribute to drag
}

// PropellantDemand is one propellant an engine is currently asking for.
type PropellantDemand struct {
	Name        string
	Requirement float64 // units per physics tick
}

// Engine is the per-frame state of one engine module.
type Engine struct {
	Ignited     bool
	Shutdown    bool
	MaxThrust   float64 // kN
	Isp         float64 // s, at current pressure
	Propellants []PropellantDemand
}

// Active reports whether the engine is drawing propellant.
func (e Engine) Active() bool {
	return e.Ignited && !e.Shutdown
}

// Intake is the per-frame state of one air intake.
type Intake struct {
	Enabled  bool
	Resource string
	AirFlow  float64 // units per second
}

// Resources holds resource totals as fractions of capacity in [0, 1].
type Resources struct {
	Fuel       float64
	Mono       float64
	Charge     float64
	EVAFuel    float64
	ChargeRate float64 // units per second, negative when draining
}

// Flags are the boolean vessel states shown as indicator lamps.
type Flags struct {
	Landed          bool
	Splashed        bool
	Orbiting        bool // orbiting or escaping, not suborbital
	GearDeployed    bool
	RetractableGear bool // vessel has gear that can be retracted
	Lights          bool
	Brakes          bool
	SAS             bool
	RCS             bool
	EVA             bool
}

// ManeuverNode is the next planned burn.
type ManeuverNode struct {
	UT          float64
	BurnVector  vecmath.Vec3 // world frame, m/s
	RemainingDV float64
	TotalDV     float64
	BurnTime    float64 // s, estimated by the host
}

// Target is the selected rendezvous target.
type Target struct {
	Name             string
	Orbit            OrbitSnapshot
	RelativePosition vecmath.Vec3 // target minus vessel, vessel frame
	RelativeVelocity vecmath.Vec3 // target minus vessel, vessel frame
}

// Distance is the straight line distance to the target.
func (t Target) Distance() float64 {
	return t.RelativePosition.Length()
}

// Waypoint is a surface navigation target.
type Waypoint struct {
	Name      string
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// VesselSnapshot is everything the instrument panel reads from the host for
// one frame. It is built fresh each frame and never mutated by the gauges.
type VesselSnapshot struct {
	Name string
	Body string
	UT   float64

	SurfaceSpeed    float64
	OrbitalSpeed    float64
	HorizontalSpeed float64
	VerticalSpeed   float64

	Altitude        float64 // above sea level
	RadarAltitude   float64 // above terrain, -1 when unknown
	TerrainAltitude float64
	Latitude        float64
	Longitude       float64

	Heading       float64
	Pitch         float64
	Roll          float64
	AngleOfAttack float64

	Mass              float64 // t
	Gravity           float64 // m/s², local
	Density           float64 // kg/m³
	StaticTemperature float64 // K
	Mach              float64
	EASCoefficient    float64 // EAS/TAS
	GForce            float64

	Forward vecmath.Vec3
	Up      vecmath.Vec3
	Right   vecmath.Vec3

	SurfaceVelocity vecmath.Vec3
	OrbitalVelocity vecmath.Vec3

	Throttle  float64
	WarpIndex int     // current time warp rate index, 0 is normal time
	MaxThrust float64 // kN, all active engines
	Isp       float64 // s, thrust weighted

	FixedDeltaTime float64
	DragParts      []PartDrag
	Engines        []Engine
	Intakes        []Intake

	Resources           Resources
	MaxPartTemperature  float64 // hottest part as a fraction of its limit
	MaxPartTemperatureK float64
	AblatorFraction     float64

	Flags Flags

	Orbit    OrbitSnapshot
	Node     Option[ManeuverNode]
	Target   Option[Target]
	Waypoint Option[Waypoint]
}
