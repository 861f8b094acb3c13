package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/steamgauges/extension/internal/bodies"
	"github.com/steamgauges/extension/internal/geo"
	"github.com/steamgauges/extension/internal/storage/memory"
)

var errUsage = errors.New("usage: steamgauges replay|track <flight file>...")

// runCLI handles the commands available when the library is run as an
// executable.
func runCLI(args []string, out io.Writer) error {
	if len(args) < 2 {
		return errUsage
	}

	var run func(*memory.Recording, io.Writer) error
	switch strings.ToLower(args[0]) {
	case "replay":
		run = printSummary
	case "track":
		run = printTrack
	default:
		return errUsage
	}

	for _, path := range args[1:] {
		rec, err := memory.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "== %s\n", path)
		if err := run(rec, out); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func printSummary(rec *memory.Recording, out io.Writer) error {
	s := memory.Summarize(rec)

	fmt.Fprintf(out, "Vessel:          %s\n", s.Vessel)
	if !rec.Flight.StartTime.IsZero() {
		fmt.Fprintf(out, "Recorded:        %s\n", rec.Flight.StartTime.Format(time.RFC3339))
	}
	fmt.Fprintf(out, "Bodies:          %s\n", strings.Join(s.Bodies, " > "))
	fmt.Fprintf(out, "Frames:          %s\n", humanize.Comma(int64(s.Frames)))
	fmt.Fprintf(out, "Duration:        %s wall, %s game\n",
		s.Duration.Round(time.Second), (time.Duration(s.GameTime) * time.Second).String())
	fmt.Fprintf(out, "Max altitude:    %s\n", humanize.SIWithDigits(s.MaxAltitude, 1, "m"))
	fmt.Fprintf(out, "Max speed:       %s\n", humanize.SIWithDigits(s.MaxSpeed, 1, "m/s"))
	fmt.Fprintf(out, "Max mach:        %s\n", humanize.FtoaWithDigits(s.MaxMach, 2))
	if s.HardestLanding > 0 {
		fmt.Fprintf(out, "Hardest landing: %s m/s\n", humanize.FtoaWithDigits(s.HardestLanding, 1))
	}

	if ws := s.WarningsByCount(); len(ws) > 0 {
		fmt.Fprintln(out, "Warnings:")
		for _, w := range ws {
			fmt.Fprintf(out, "  %-16s %s\n", w, humanize.Comma(int64(s.Warnings[w])))
		}
	}
	return nil
}

// printTrack prints one WKT line per body visited, with its surface length.
func printTrack(rec *memory.Recording, out io.Writer) error {
	catalog := bodies.Default()

	var (
		body  string
		track []geo.TrackPoint
	)
	flush := func() error {
		if len(track) < 2 {
			return nil
		}
		ls, err := geo.TrackLineString(track)
		if err != nil {
			return err
		}
		length := "unknown length"
		if b, ok := catalog.Lookup(body); ok {
			length = humanize.SIWithDigits(geo.SurfaceDistance(track, b.Radius), 1, "m")
		}
		fmt.Fprintf(out, "%s (%s, %d points)\n%s\n", body, length, len(track), ls.AsText())
		return nil
	}

	for _, f := range rec.Frames {
		if f.Body != body {
			if err := flush(); err != nil {
				return err
			}
			body, track = f.Body, track[:0]
		}
		track = append(track, geo.TrackPoint{Latitude: f.Latitude, Longitude: f.Longitude, Altitude: f.Altitude})
	}
	return flush()
}
