// Package vecmath holds the small amount of 3D vector math the gauges need:
// vector arithmetic, signed angles about a reference normal and degree wrapping.
package vecmath

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Vec3 is a direction or position in a right-handed frame.
type Vec3 struct {
	X, Y, Z float64
}

// V is shorthand for constructing a Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector along v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether v has (numerically) zero length.
func (v Vec3) IsZero() bool {
	return v.Length() < zeroLength
}

// Distance between two positions.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

const zeroLength = 1e-12

// Angle returns the unsigned angle between a and b in degrees, in [0, 180].
// A zero-length argument yields 0.
func Angle(a, b Vec3) float64 {
	la, lb := a.Length(), b.Length()
	if la < zeroLength || lb < zeroLength {
		return 0
	}
	// atan2 of |a×b| and a·b stays accurate near 0 and 180 where acos does not.
	return Degrees(math.Atan2(a.Cross(b).Length(), a.Dot(b)))
}

// SignedAngle projects a and b into the plane perpendicular to up and
// returns the angle from the first projection to the second in degrees, in
// [-180, 180], as seen looking down up. Swapping a and b negates the result.
//
// Degenerate input is defined, not NaN: if up has zero length, or either
// vector has no component off up, the result is 0.
func SignedAngle(a, b, up Vec3) float64 {
	n := up.Normalize()
	if n.IsZero() {
		return 0
	}
	pa := a.Sub(n.Scale(a.Dot(n)))
	pb := b.Sub(n.Scale(b.Dot(n)))
	if pa.IsZero() || pb.IsZero() {
		return 0
	}
	return Degrees(math.Atan2(pa.Cross(pb).Dot(n), pa.Dot(pb)))
}

// AngleAroundNormal turns a 3D offset into a planar deviation (pitch-like or
// yaw-like) for a needle. It is SignedAngle under the name the gauges use.
func AngleAroundNormal(a, b, up Vec3) float64 {
	return SignedAngle(a, b, up)
}

// WrapDegrees maps an angle into [-180, 180).
func WrapDegrees(d float64) float64 {
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// Wrap360 maps an angle into [0, 360).
func Wrap360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Degrees converts radians to degrees.
func Degrees(r float64) float64 {
	return r * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(d float64) float64 {
	return d / 180 * math.Pi
}

func Clamp[T constraints.Integer | constraints.Float](x, low, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

func Lerp[T constraints.Float](x, a, b T) T {
	return (1-x)*a + x*b
}

func Abs[T constraints.Integer | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[T constraints.Integer | constraints.Float](x T) T {
	return x * x
}

// Sign returns -1, 0 or 1.
func Sign[T constraints.Signed | constraints.Float](x T) T {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}
