package digits

import (
	"math"

	"github.com/steamgauges/extension/pkg/core"
)

// Split breaks a duration in seconds into hours, minutes and seconds. Negative
// and NaN durations read as zero; anything above maxHours saturates to
// maxHours:59:59.
func Split(seconds float64, maxHours int) (h, m, s int) {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0, 0, 0
	}
	total := math.Floor(seconds)
	limit := float64(maxHours)*3600 + 59*60 + 59
	if total > limit {
		total = limit
	}
	t := int(total)
	return t / 3600, (t % 3600) / 60, t % 60
}

// HoursMinutesSeconds is the seven-glyph hhh:mm:ss readout used for burn and
// event countdowns, capped at 999:59:59.
func HoursMinutesSeconds(seconds float64) core.Glyphs {
	h, m, s := Split(seconds, 999)
	return clock(h, 3, m, s)
}

// ClockHMS is the six-glyph hh:mm:ss readout used for time en route, capped at
// 99:59:59.
func ClockHMS(seconds float64) core.Glyphs {
	h, m, s := Split(seconds, 99)
	return clock(h, 2, m, s)
}

// MinutesSeconds is a four-glyph mm:ss readout capped at 99:59.
func MinutesSeconds(seconds float64) core.Glyphs {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := math.Min(math.Floor(seconds), 99*60+59)
	t := int(total)
	return clock(-1, 0, t/60, t%60)
}

func clock(h, hourWidth, m, s int) core.Glyphs {
	var out core.Glyphs
	if hourWidth > 0 {
		out.Glyphs = appendPadded(out.Glyphs, h, hourWidth)
	}
	out.Glyphs = appendPadded(out.Glyphs, m, 2)
	out.Glyphs = appendPadded(out.Glyphs, s, 2)
	return out
}

func appendPadded(dst []core.Glyph, v, width int) []core.Glyph {
	p := 1
	for i := 1; i < width; i++ {
		p *= 10
	}
	for ; p > 0; p /= 10 {
		dst = append(dst, core.Glyph(v/p%10))
	}
	return dst
}
