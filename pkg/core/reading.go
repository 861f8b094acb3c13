// pkg/core/reading.go
package core

import (
	"fmt"
	"strings"
)

// Glyph indexes a digit strip texture: 0-9 are digits, the rest are symbols.
type Glyph int8

const (
	GlyphMinus Glyph = iota + 10
	GlyphMeters
	GlyphKilo
	GlyphMega
)

func (g Glyph) String() string {
	switch {
	case g >= 0 && g <= 9:
		return string(rune('0' + g))
	case g == GlyphMinus:
		return "-"
	case g == GlyphMeters:
		return "m"
	case g == GlyphKilo:
		return "k"
	case g == GlyphMega:
		return "M"
	}
	return "?"
}

// Glyphs is a formatted digit readout. Decimals is how many trailing digit
// glyphs sit right of the decimal point. Roll is the strip position of the
// rolling least significant digit, in [0, 10); it is only meaningful when
// Rolling is set.
type Glyphs struct {
	Glyphs   []Glyph `json:"glyphs"`
	Decimals int     `json:"decimals"`
	Rolling  bool    `json:"rolling,omitempty"`
	Roll     float64 `json:"roll,omitempty"`
}

// Digits returns only the numeric glyphs, in order.
func (g Glyphs) Digits() []int {
	var out []int
	for _, gl := range g.Glyphs {
		if gl >= 0 && gl <= 9 {
			out = append(out, int(gl))
		}
	}
	return out
}

// Negative reports whether the readout carries a minus glyph.
func (g Glyphs) Negative() bool {
	for _, gl := range g.Glyphs {
		if gl == GlyphMinus {
			return true
		}
	}
	return false
}

func (g Glyphs) String() string {
	var b strings.Builder
	digits := 0
	total := len(g.Digits())
	for _, gl := range g.Glyphs {
		if gl >= 0 && gl <= 9 {
			if g.Decimals > 0 && digits == total-g.Decimals {
				b.WriteByte('.')
			}
			digits++
		}
		b.WriteString(gl.String())
	}
	return b.String()
}

// Light is the state of an indicator lamp.
type Light int8

const (
	LightOff Light = iota
	LightRed
	LightYellow
	LightGreen
)

var lightNames = [...]string{"off", "red", "yellow", "green"}

func (l Light) String() string {
	if int(l) < len(lightNames) && l >= 0 {
		return lightNames[l]
	}
	return fmt.Sprintf("Light(%d)", int(l))
}

func (l Light) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// CutoffLight picks a lamp for a value against ascending red/yellow/green
// cutoffs: at or below red is red, then yellow, then green, else off.
func CutoffLight(v, red, yellow, green float64) Light {
	switch {
	case v <= red:
		return LightRed
	case v <= yellow:
		return LightYellow
	case v <= green:
		return LightGreen
	}
	return LightOff
}

func (l *Light) UnmarshalText(b []byte) error {
	for i, name := range lightNames {
		if name == string(b) {
			*l = Light(i)
			return nil
		}
	}
	return fmt.Errorf("unknown light %q", string(b))
}
