// Package instruments computes what every gauge on the panel shows for one
// vessel snapshot: needle angles, tape offsets, digit readouts and lamps.
//
// Gauge functions are pure. The two pieces of state that survive between
// frames, the radar altimeter and node automation, live in Panel.
package instruments

import (
	"fmt"
	"strings"

	"github.com/steamgauges/extension/internal/bodies"
	"github.com/steamgauges/extension/internal/orbit"
	"github.com/steamgauges/extension/pkg/core"
)

// Kind names a gauge.
type Kind string

const (
	KindAir         Kind = "air"
	KindFuel        Kind = "fuel"
	KindElectrical  Kind = "electrical"
	KindTemperature Kind = "temperature"
	KindRadar       Kind = "radar"
	KindRendezvous  Kind = "rendezvous"
	KindNode        Kind = "node"
	KindOrbit       Kind = "orbit"
	KindNav         Kind = "nav"
	KindCompass     Kind = "compass"
	KindHUD         Kind = "hud"
)

// Kinds lists every gauge in panel order.
var Kinds = []Kind{
	KindAir, KindFuel, KindElectrical, KindTemperature, KindRadar,
	KindRendezvous, KindNode, KindOrbit, KindNav, KindCompass, KindHUD,
}

// ParseKind resolves a gauge name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown gauge %q", s)
}

// ApproachFinder finds the closest approach between two orbits. The cache
// package provides a memoising implementation.
type ApproachFinder interface {
	ClosestApproach(a, b orbit.Elements, ut float64) orbit.Approach
}

type directApproach struct{}

func (directApproach) ClosestApproach(a, b orbit.Elements, ut float64) orbit.Approach {
	return orbit.ClosestApproach(a, b, ut)
}

// Env is the read-only context gauges need beyond the snapshot.
type Env struct {
	Bodies     *bodies.Catalog
	Approaches ApproachFinder
}

func (e Env) withDefaults() Env {
	if e.Bodies == nil {
		e.Bodies = bodies.Default()
	}
	if e.Approaches == nil {
		e.Approaches = directApproach{}
	}
	return e
}

// hasAtmosphere prefers the catalog and falls back to the measured density
// for bodies it does not know.
func (e Env) hasAtmosphere(v core.VesselSnapshot) bool {
	if b, ok := e.Bodies.Lookup(v.Body); ok {
		return b.HasAtmosphere()
	}
	return v.Density > 0
}

func (e Env) bodyRadius(v core.VesselSnapshot) float64 {
	if v.Orbit.BodyRadius > 0 {
		return v.Orbit.BodyRadius
	}
	if b, ok := e.Bodies.Lookup(v.Body); ok {
		return b.Radius
	}
	return 0
}

// Commands are the control inputs automation wants applied this frame.
type Commands struct {
	Throttle  core.Option[float64] `json:"throttle"`
	WarpIndex core.Option[int]     `json:"warpIndex"`
}

func (c *Commands) merge(o Commands) {
	if o.Throttle.Valid {
		c.Throttle = o.Throttle
	}
	if o.WarpIndex.Valid && (!c.WarpIndex.Valid || o.WarpIndex.Value < c.WarpIndex.Value) {
		c.WarpIndex = o.WarpIndex
	}
}

// Empty reports whether nothing is to be applied.
func (c Commands) Empty() bool {
	return !c.Throttle.Valid && !c.WarpIndex.Valid
}
