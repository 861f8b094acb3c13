package instruments

import (
	"math"

	"github.com/steamgauges/extension/internal/digits"
	"github.com/steamgauges/extension/internal/orbit"
	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

const (
	// burnDoneDV is the remaining dV, m/s, at which a burn counts as done.
	burnDoneDV = 0.5
	// stopOffTarget is how far the burn vector may wander off the nose,
	// degrees, before auto stop cuts the throttle.
	stopOffTarget = 7.6
	// startOffTarget is the pointing accuracy auto burn needs to start.
	startOffTarget = 2.0
)

// warpStep drops time warp to Index once the burn is at most Within seconds
// away.
type warpStep struct {
	Within float64
	Index  int
}

var warpSteps = []warpStep{
	{Within: 5000, Index: 4},
	{Within: 500, Index: 3},
	{Within: 50, Index: 2},
	{Within: 5, Index: 0},
}

// NodeReading is the maneuver node gauge.
type NodeReading struct {
	NoNode     bool        `json:"noNode"`
	DeltaV     core.Glyphs `json:"deltaV"`
	DVNeedle   float64     `json:"dvNeedle"`
	Throttle   float64     `json:"throttle"`
	TimeToBurn core.Glyphs `json:"timeToBurn"`
	BurnTime   core.Glyphs `json:"burnTime"`
	Pitch      float64     `json:"pitch"` // burn vector off the nose, degrees
	Yaw        float64     `json:"yaw"`
	AutoBurn   bool        `json:"autoBurn"`
	AutoStop   bool        `json:"autoStop"`
	Commands   Commands    `json:"-"`
	Note       string      `json:"-"`

	timeToBurn  float64
	remainingDV float64
}

// NodeAutomation holds the armed auto burn and auto stop switches. Each
// disarms itself once it fires.
type NodeAutomation struct {
	AutoBurn bool
	AutoStop bool
}

// burnPointing is the burn vector's pitch and yaw away from the nose.
func burnPointing(v core.VesselSnapshot, burn vecmath.Vec3) (pitch, yaw float64) {
	pitch = vecmath.AngleAroundNormal(burn, v.Forward, v.Right)
	yaw = vecmath.AngleAroundNormal(burn, v.Forward, v.Up)
	return pitch, yaw
}

func offTarget(pitch, yaw, limit float64) bool {
	return math.Abs(pitch) > limit || math.Abs(yaw) > limit
}

// NodeBurnTime picks the burn duration: the rocket equation estimate when
// calculated is set and the vessel has thrust, else the host's figure.
func NodeBurnTime(v core.VesselSnapshot, n core.ManeuverNode, calculated bool) float64 {
	if calculated {
		if t, ok := orbit.BurnTime(v.Mass, v.MaxThrust, v.Isp, n.RemainingDV); ok {
			return t
		}
	}
	if math.IsNaN(n.BurnTime) || math.IsInf(n.BurnTime, 0) {
		return 0
	}
	return n.BurnTime
}

// TimeToBurn is whole seconds until the burn should start, centred on the
// node. Past the node it is 0.
func TimeToBurn(ut, nodeUT, burnTime float64) float64 {
	if ut >= nodeUT {
		return 0
	}
	return math.Trunc((nodeUT - ut) - burnTime/2)
}

// Step runs the automation for one frame.
func (a *NodeAutomation) Step(r NodeReading, throttle float64, warpIndex int) (Commands, string) {
	var cmd Commands
	var note string
	ttb := r.timeToBurn

	if a.AutoStop {
		if (r.remainingDV < burnDoneDV || offTarget(r.Pitch, r.Yaw, stopOffTarget)) && ttb < 1 {
			a.AutoStop = false
			cmd.Throttle = core.Some(0.0)
			note = "burn complete, throttle back"
		}
	}

	if a.AutoBurn {
		for _, s := range warpSteps {
			if ttb <= s.Within && warpIndex > s.Index {
				cmd.WarpIndex = core.Some(s.Index)
			}
		}
		if ttb < 1 && throttle == 0 && !offTarget(r.Pitch, r.Yaw, startOffTarget) {
			a.AutoBurn = false
			cmd.Throttle = core.Some(1.0)
			note = "node reached, commencing burn"
		}
	}
	return cmd, note
}

// Node evaluates the maneuver node gauge. auto may be nil.
func Node(v core.VesselSnapshot, s NodeSettings, auto *NodeAutomation) NodeReading {
	n, ok := v.Node.Get()
	r := NodeReading{Throttle: -180 * vecmath.Clamp(v.Throttle, 0, 1)}
	if auto != nil {
		r.AutoBurn, r.AutoStop = auto.AutoBurn, auto.AutoStop
	}
	if !ok {
		r.NoNode = true
		return r
	}

	total := n.TotalDV
	if total == 0 {
		total = 0.01
	}
	r.DVNeedle = -180 * vecmath.Clamp(n.RemainingDV/total, 0, 1)
	r.DeltaV = digits.Format(n.TotalDV, digits.Options{Width: 5, Magnitude: true})
	r.remainingDV = n.RemainingDV

	burn := NodeBurnTime(v, n, s.CalculatedBurn)
	r.timeToBurn = TimeToBurn(v.UT, n.UT, burn)
	r.TimeToBurn = digits.HoursMinutesSeconds(r.timeToBurn)
	r.BurnTime = digits.HoursMinutesSeconds(burn)
	r.Pitch, r.Yaw = burnPointing(v, n.BurnVector)

	if auto != nil {
		r.Commands, r.Note = auto.Step(r, v.Throttle, v.WarpIndex)
		r.AutoBurn, r.AutoStop = auto.AutoBurn, auto.AutoStop
	}
	return r
}
