package scale

import "math"

// Band is one texture strip of a multi-strip tape. Values below Below are
// drawn from this band.
type Band struct {
	Below  float64
	Scale  Scale
	Window float64 // visible fraction of the strip
}

// Tape selects a band for a value and maps the value to a scroll offset in
// that band. Bands must be ordered by increasing Below.
type Tape struct {
	Bands []Band
}

// Position is where a tape should be scrolled for a value.
type Position struct {
	Band   int
	Offset float64
	Window float64
}

// Locate returns the tape position for v. ok is false when v is beyond the
// last band, in which case the tape is replaced by a digit readout.
func (t Tape) Locate(v float64) (pos Position, ok bool) {
	if math.IsNaN(v) {
		return Position{}, false
	}
	for i, b := range t.Bands {
		if v < b.Below {
			return Position{Band: i, Offset: b.Scale.Map(v), Window: b.Window}, true
		}
	}
	return Position{}, false
}
