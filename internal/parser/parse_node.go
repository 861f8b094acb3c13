package parser

import (
	"fmt"

	"github.com/steamgauges/extension/internal/vecmath"
	"github.com/steamgauges/extension/pkg/core"
)

type mn = core.ManeuverNode

func nodeFields() []field[mn] {
	return []field[mn]{
		num("ut", func(n *mn) *float64 { return &n.UT }),
		vector("burnVector", func(n *mn) *vecmath.Vec3 { return &n.BurnVector }),
		num("remainingDV", func(n *mn) *float64 { return &n.RemainingDV }),
		num("totalDV", func(n *mn) *float64 { return &n.TotalDV }),
		num("burnTime", func(n *mn) *float64 { return &n.BurnTime }),
	}
}

type wp = core.Waypoint

func waypointFields() []field[wp] {
	return []field[wp]{
		text("name", func(w *wp) *string { return &w.Name }),
		num("latitude", func(w *wp) *float64 { return &w.Latitude }),
		num("longitude", func(w *wp) *float64 { return &w.Longitude }),
		num("altitude", func(w *wp) *float64 { return &w.Altitude }),
	}
}

// ParseNode parses the next maneuver node. Negative delta-v is rejected.
func (p *Parser) ParseNode(data []string) (core.ManeuverNode, error) {
	n, err := parseFields(p, ":NODE:", p.node, data)
	if err != nil {
		return n, err
	}
	if n.TotalDV < 0 || n.RemainingDV < 0 {
		return n, &FieldError{Command: ":NODE:", Index: 2, Field: "remainingDV",
			Err: fmt.Errorf("negative delta-v %.1f/%.1f", n.RemainingDV, n.TotalDV)}
	}
	return n, nil
}

// ParseWaypoint parses the active navigation waypoint.
func (p *Parser) ParseWaypoint(data []string) (core.Waypoint, error) {
	w, err := parseFields(p, ":WAYPOINT:", p.waypoint, data)
	if err != nil {
		return w, err
	}
	if w.Latitude < -90 || w.Latitude > 90 {
		return w, &FieldError{Command: ":WAYPOINT:", Index: 1, Field: "latitude",
			Err: fmt.Errorf("%.3f is outside [-90, 90]", w.Latitude)}
	}
	return w, nil
}
