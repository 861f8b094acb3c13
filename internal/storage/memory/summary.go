package memory

import (
	"sort"
	"time"

	"github.com/steamgauges/extension/pkg/core"
)

// Summary is the headline numbers of a recorded flight.
type Summary struct {
	Vessel         string
	Bodies         []string // in the order first visited
	Frames         int
	Duration       time.Duration // wall clock
	GameTime       float64       // seconds of UT covered
	MaxAltitude    float64
	MaxSpeed       float64
	MaxMach        float64
	HardestLanding float64 // fastest touchdown sink rate, m/s
	Warnings       map[core.WarningState]int
	Events         map[core.EventKind]int
}

// WarningsByCount lists the warnings that fired, most frequent first.
func (s Summary) WarningsByCount() []core.WarningState {
	out := make([]core.WarningState, 0, len(s.Warnings))
	for w := range s.Warnings {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if s.Warnings[out[i]] != s.Warnings[out[j]] {
			return s.Warnings[out[i]] > s.Warnings[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Summarize walks a recording once.
func Summarize(rec *Recording) Summary {
	s := Summary{
		Vessel:   rec.Flight.VesselName,
		Frames:   len(rec.Frames),
		Warnings: make(map[core.WarningState]int),
		Events:   make(map[core.EventKind]int),
	}

	seen := make(map[string]bool)
	for _, f := range rec.Frames {
		if f.Body != "" && !seen[f.Body] {
			seen[f.Body] = true
			s.Bodies = append(s.Bodies, f.Body)
		}
		s.MaxAltitude = max(s.MaxAltitude, f.Altitude)
		s.MaxSpeed = max(s.MaxSpeed, f.SurfaceSpeed)
		s.MaxMach = max(s.MaxMach, f.Mach)
	}
	if n := len(rec.Frames); n > 1 {
		s.GameTime = rec.Frames[n-1].UT - rec.Frames[0].UT
	}

	for _, e := range rec.Events {
		s.Events[e.Kind]++
		if e.Kind == core.EventWarning {
			s.Warnings[e.Warning]++
		}
	}
	s.HardestLanding = hardestTouchdown(rec)

	if !rec.Flight.EndTime.IsZero() {
		s.Duration = rec.Flight.EndTime.Sub(rec.Flight.StartTime)
	}
	return s
}

// hardestTouchdown finds the largest sink rate among the frames that
// raised a touchdown event.
func hardestTouchdown(rec *Recording) float64 {
	var worst float64
	for _, e := range rec.Events {
		if e.Kind != core.EventTouchdown {
			continue
		}
		i := sort.Search(len(rec.Frames), func(i int) bool { return rec.Frames[i].UT >= e.UT })
		if i == len(rec.Frames) {
			i--
		}
		if i >= 0 {
			worst = max(worst, -rec.Frames[i].VerticalSpeed)
		}
	}
	return worst
}
