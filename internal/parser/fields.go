package parser

import (
	"strconv"

	"github.com/steamgauges/extension/internal/util"
	"github.com/steamgauges/extension/internal/vecmath"
)

// field is one positional argument of a command layout.
type field[T any] struct {
	name string
	set  func(*T, string) error
}

func num[T any](name string, at func(*T) *float64) field[T] {
	return field[T]{name: name, set: func(t *T, s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*at(t) = v
		return nil
	}}
}

func integer[T any](name string, at func(*T) *int) field[T] {
	return field[T]{name: name, set: func(t *T, s string) error {
		v, err := parseIntFromFloat(s)
		if err != nil {
			return err
		}
		*at(t) = int(v)
		return nil
	}}
}

func text[T any](name string, at func(*T) *string) field[T] {
	return field[T]{name: name, set: func(t *T, s string) error {
		*at(t) = s
		return nil
	}}
}

func vector[T any](name string, at func(*T) *vecmath.Vec3) field[T] {
	return field[T]{name: name, set: func(t *T, s string) error {
		v, err := util.ParseVector(s)
		if err != nil {
			return err
		}
		*at(t) = v
		return nil
	}}
}

// embed lifts the fields of an inner layout onto the struct that holds it.
func embed[T, U any](fields []field[U], at func(*T) *U) []field[T] {
	out := make([]field[T], len(fields))
	for i, f := range fields {
		set := f.set
		out[i] = field[T]{name: f.name, set: func(t *T, s string) error {
			return set(at(t), s)
		}}
	}
	return out
}
