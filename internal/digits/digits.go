// Package digits turns numbers into glyph sequences for the digit strips on
// the gauge faces.
package digits

import (
	"math"

	"github.com/steamgauges/extension/pkg/core"
)

// Options controls a single readout.
//
// Width is the number of glyph positions available, the minus sign included;
// zero means unbounded. A value that does not fit is saturated to all nines.
// Min and Max clamp the input when Min < Max.
type Options struct {
	Width        int
	Decimals     int
	Sign         bool
	Rolling      bool
	Magnitude    bool
	LeadingZeros bool
	Min, Max     float64
}

// Magnitude thresholds for the suffix glyph when no width is set. With a
// width, values switch to kilo once they no longer fit in the digits.
const (
	KiloThreshold = 1e5
	MegaThreshold = 1e8
)

// Format decomposes v into glyphs, most significant first. The ones digit is
// always printed, as are the fractional digits. Without Sign a negative value
// shows its magnitude. NaN yields an empty readout.
func Format(v float64, opts Options) core.Glyphs {
	if math.IsNaN(v) {
		return core.Glyphs{}
	}
	if opts.Min < opts.Max {
		v = math.Max(opts.Min, math.Min(opts.Max, v))
	}

	negative := v < 0
	width := opts.Width
	if negative && opts.Sign && width > 1 {
		// the minus sign takes a digit position
		width--
	}

	var suffix core.Glyph = -1
	if opts.Magnitude {
		kilo, mega := KiloThreshold, MegaThreshold
		if width > 0 {
			// decimals share the glyph budget with the whole part
			whole := max(width-opts.Decimals, 1)
			kilo, mega = math.Pow10(whole), math.Pow10(whole+3)
		}
		switch a := math.Abs(v); {
		case a < kilo:
			suffix = core.GlyphMeters
		case a < mega:
			suffix = core.GlyphKilo
			v /= 1e3
		default:
			suffix = core.GlyphMega
			v /= 1e6
		}
	}

	scaled := math.Abs(v) * math.Pow10(opts.Decimals)

	var n float64
	if opts.Rolling {
		n = math.Floor(scaled)
	} else {
		n = math.Round(scaled)
	}

	count := countDigits(n)
	if count < opts.Decimals+1 {
		count = opts.Decimals + 1
	}
	if width > 0 {
		if count > width {
			count = width
			n = math.Pow10(width) - 1
			scaled = n
		}
		if opts.LeadingZeros {
			count = width
		}
	}

	out := core.Glyphs{Decimals: opts.Decimals, Rolling: opts.Rolling}
	if negative && opts.Sign && (n > 0 || opts.Rolling && scaled > 0) {
		out.Glyphs = append(out.Glyphs, core.GlyphMinus)
	}
	for i := count - 1; i >= 0; i-- {
		d := math.Mod(math.Floor(n/math.Pow10(i)), 10)
		out.Glyphs = append(out.Glyphs, core.Glyph(d))
	}
	if suffix >= 0 {
		out.Glyphs = append(out.Glyphs, suffix)
	}
	if opts.Rolling {
		out.Roll = RollPosition(scaled)
	}
	return out
}

// RollPosition is where the least significant strip sits for a scaled value:
// its digit plus the fractional remainder, wrapped into [0, 10).
func RollPosition(scaled float64) float64 {
	r := math.Mod(scaled, 10)
	if r < 0 {
		r += 10
	}
	return r
}

func countDigits(n float64) int {
	c := 1
	for n >= 10 {
		n = math.Floor(n / 10)
		c++
	}
	return c
}
