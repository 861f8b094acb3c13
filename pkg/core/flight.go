// pkg/core/flight.go
package core

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
)

// ErrNoFlight is returned when frames arrive before a flight is started.
var ErrNoFlight = errors.New("no flight in progress")

// Flight is one recorded session of a vessel, from launch (or load) until
// the host ends it.
type Flight struct {
	ID               uint
	Key              string // stable hash of vessel name and start UT
	VesselName       string
	Body             string
	StartUT          float64
	StartTime        time.Time
	EndTime          time.Time
	ExtensionVersion string
}

// FlightKey derives Flight.Key from the vessel name and start UT.
func FlightKey(vessel string, startUT float64) string {
	buf := binary.LittleEndian.AppendUint64([]byte(vessel), math.Float64bits(startUT))
	return strconv.FormatUint(xxh3.Hash(buf), 16)
}

// Frame is the recorded state of one evaluated panel frame.
type Frame struct {
	FlightID      uint
	Time          time.Time
	UT            float64
	Body          string
	Latitude      float64
	Longitude     float64
	Altitude      float64
	RadarAltitude float64
	SurfaceSpeed  float64
	VerticalSpeed float64
	Mach          float64
	Warning       WarningState
	// Channels is the flattened panel output, keyed "gauge.reading".
	Channels map[string]float64
}

// EventKind classifies discrete flight events.
type EventKind string

const (
	EventWarning   EventKind = "warning"
	EventAutoBurn  EventKind = "auto_burn"
	EventAutoStop  EventKind = "auto_stop"
	EventWarpDown  EventKind = "warp_down"
	EventTouchdown EventKind = "touchdown"
)

// Event is a discrete change worth keeping apart from the frame stream,
// such as a GPWS callout starting or automation cutting the throttle.
type Event struct {
	FlightID uint
	Time     time.Time
	UT       float64
	Kind     EventKind
	Warning  WarningState
	Message  string
}
