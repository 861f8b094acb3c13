// Package util provides helpers for decoding the string arguments the game
// passes to the extension.
package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/steamgauges/extension/internal/vecmath"
)

// ErrTupleSize is returned when a positional array has the wrong length.
var ErrTupleSize = errors.New("wrong number of values")

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// CleanArg applies both fixes, in the order the host escapes them.
func CleanArg(s string) string {
	return FixEscapeQuotes(TrimQuotes(s))
}

// ParseTuple decodes a positional array such as [1.5,true,"IntakeAir"] into
// dst, one pointer per element.
func ParseTuple(s string, dst ...any) error {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("%w: got %d, want %d", ErrTupleSize, len(raw), len(dst))
	}
	for i := range dst {
		if err := json.Unmarshal(raw[i], dst[i]); err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
	}
	return nil
}

// ParseTuples decodes an array of positional arrays, calling each for every
// element in order.
func ParseTuples(s string, each func(i int, elem string) error) error {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return err
	}
	for i, r := range raw {
		if err := each(i, string(r)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ParseVector decodes "[x,y,z]".
func ParseVector(s string) (vecmath.Vec3, error) {
	var v vecmath.Vec3
	err := ParseTuple(strings.TrimSpace(s), &v.X, &v.Y, &v.Z)
	return v, err
}

// ParseStringList decodes ["a","b"]. An empty argument is an empty list.
func ParseStringList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
