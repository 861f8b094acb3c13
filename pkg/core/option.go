package core

// Option holds a value that may be absent, such as the selected target or the
// next maneuver node. The zero value is empty.
type Option[T any] struct {
	Value T    `json:"value"`
	Valid bool `json:"valid"`
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

// None returns an empty option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Valid
}
