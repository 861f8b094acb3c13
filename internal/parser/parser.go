// Package parser converts the string arguments the game passes with each
// command into the snapshot types the instruments read.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/steamgauges/extension/internal/util"
	"github.com/steamgauges/extension/pkg/core"
)

// ErrArgCount is returned when a command carries fewer arguments than its
// layout names.
var ErrArgCount = errors.New("too few arguments")

// FieldError names the argument that failed to parse.
type FieldError struct {
	Command string
	Index   int
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s arg %d (%s): %v", e.Command, e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// parseIntFromFloat parses a string that may be an integer or float into int64.
// The game serializes every number as a float, so "3.00" is a valid 3.
func parseIntFromFloat(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid int64", s)
	}
	return int64(f), nil
}

// Parser provides pure []string -> snapshot conversion.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger

	vessel   []field[core.VesselSnapshot]
	orbit    []field[core.OrbitSnapshot]
	target   []field[core.Target]
	node     []field[core.ManeuverNode]
	waypoint []field[core.Waypoint]
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Parser{logger: logger}
	p.vessel = p.vesselFields()
	p.orbit = orbitFields()
	p.target = targetFields()
	p.node = nodeFields()
	p.waypoint = waypointFields()
	return p
}

// parseFields runs data through the layout. Arguments past the end of the
// layout are ignored so an older extension keeps working with a newer mod.
func parseFields[T any](p *Parser, command string, fields []field[T], data []string) (T, error) {
	var out T
	if len(data) < len(fields) {
		return out, fmt.Errorf("%s: %w: got %d, want %d", command, ErrArgCount, len(data), len(fields))
	}
	if len(data) > len(fields) {
		p.logger.Debug("Ignoring extra arguments", "command", command, "got", len(data), "want", len(fields))
	}
	for i, f := range fields {
		if err := f.set(&out, util.CleanArg(data[i])); err != nil {
			return out, &FieldError{Command: command, Index: i, Field: f.name, Err: err}
		}
	}
	return out, nil
}
