package orbit

import (
	"errors"
	"math"
)

// ErrCoplanar is returned when two orbits share a plane and so have no nodes.
var ErrCoplanar = errors.New("orbits are coplanar, no relative nodes")

const coplanarTolerance = 1e-9

// AscendingNodeTrueAnomaly returns the true anomaly on a where it crosses the
// plane of b heading north relative to b.
func AscendingNodeTrueAnomaly(a, b Elements) (float64, error) {
	line := b.Normal().Cross(a.Normal())
	if line.Length() < coplanarTolerance {
		return math.NaN(), ErrCoplanar
	}
	return a.TrueAnomalyOfDirection(line), nil
}

// DescendingNodeTrueAnomaly is opposite the ascending node.
func DescendingNodeTrueAnomaly(a, b Elements) (float64, error) {
	an, err := AscendingNodeTrueAnomaly(a, b)
	if err != nil {
		return math.NaN(), err
	}
	return ClampTwoPi(an + math.Pi), nil
}

// TimeOfAscendingNode returns the UT at which a next passes its ascending node
// relative to b. On a hyperbolic orbit the node may never be reached, which
// is reported as ErrTrueAnomalyUnattainable.
func TimeOfAscendingNode(a, b Elements, ut float64) (float64, error) {
	nu, err := AscendingNodeTrueAnomaly(a, b)
	if err != nil {
		return math.NaN(), err
	}
	return a.UTAtTrueAnomaly(nu, ut)
}

// TimeOfDescendingNode returns the UT at which a next passes its descending
// node relative to b.
func TimeOfDescendingNode(a, b Elements, ut float64) (float64, error) {
	nu, err := DescendingNodeTrueAnomaly(a, b)
	if err != nil {
		return math.NaN(), err
	}
	return a.UTAtTrueAnomaly(nu, ut)
}

// RelativeInclination is the angle between the two orbital planes in degrees.
func RelativeInclination(a, b Elements) float64 {
	na, nb := a.Normal(), b.Normal()
	return math.Atan2(na.Cross(nb).Length(), na.Dot(nb)) * 180 / math.Pi
}
