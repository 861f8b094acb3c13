// pkg/core/warning.go
package core

import "fmt"

// WarningState is the single GPWS callout active in a frame.
type WarningState int8

const (
	WarningNone WarningState = iota
	WarningSinkrate
	WarningPullUp
	WarningTerrainPullUp
	WarningDontSink
	WarningTooLowGear
	WarningTooLowTerrain
	WarningBankAngle
)

var warningNames = [...]string{
	"none",
	"sinkrate",
	"pull_up",
	"terrain_pull_up",
	"dont_sink",
	"too_low_gear",
	"too_low_terrain",
	"bank_angle",
}

func (w WarningState) String() string {
	if w >= 0 && int(w) < len(warningNames) {
		return warningNames[w]
	}
	return fmt.Sprintf("WarningState(%d)", int(w))
}

func (w WarningState) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// ParseWarningState is the inverse of String.
func ParseWarningState(s string) (WarningState, error) {
	for i, name := range warningNames {
		if name == s {
			return WarningState(i), nil
		}
	}
	return WarningNone, fmt.Errorf("unknown warning state %q", s)
}

// Active reports whether a callout should sound.
func (w WarningState) Active() bool {
	return w != WarningNone
}

func (w *WarningState) UnmarshalText(b []byte) error {
	v, err := ParseWarningState(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
