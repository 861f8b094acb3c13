package orbit

import (
	"errors"
	"fmt"
	"math"
)

// ErrTrueAnomalyUnattainable matches any UnattainableAnomalyError with errors.Is.
var ErrTrueAnomalyUnattainable = errors.New("true anomaly unattainable for this eccentricity")

// UnattainableAnomalyError is returned when a hyperbolic orbit never reaches
// the requested true anomaly because it lies beyond the asymptote.
type UnattainableAnomalyError struct {
	Eccentricity float64
	TrueAnomaly  float64 // radians
}

func (e *UnattainableAnomalyError) Error() string {
	limit := math.Acos(-1 / e.Eccentricity)
	return fmt.Sprintf("true anomaly %.4f rad is beyond the asymptote (±%.4f rad) for eccentricity %.4f",
		e.TrueAnomaly, limit, e.Eccentricity)
}

func (e *UnattainableAnomalyError) Is(target error) bool {
	return target == ErrTrueAnomalyUnattainable
}

const (
	twoPi        = 2 * math.Pi
	keplerTol    = 1e-12
	keplerMaxIts = 64
)

// ClampTwoPi wraps an angle in radians into [0, 2π).
func ClampTwoPi(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// ClampPi wraps an angle in radians into [-π, π).
func ClampPi(a float64) float64 {
	return ClampTwoPi(a+math.Pi) - math.Pi
}

// TrueToEccentric converts true anomaly to eccentric anomaly (hyperbolic
// anomaly when e ≥ 1). Elliptical results are in [0, 2π). On a hyperbolic
// orbit a true anomaly beyond the asymptote returns *UnattainableAnomalyError.
func TrueToEccentric(e, nu float64) (float64, error) {
	nu = ClampTwoPi(nu)
	denom := 1 + e*math.Cos(nu)

	if e < 1 {
		cosE := (e + math.Cos(nu)) / denom
		sinE := math.Sqrt(math.Max(0, 1-cosE*cosE))
		if nu > math.Pi {
			sinE = -sinE
		}
		return ClampTwoPi(math.Atan2(sinE, cosE)), nil
	}

	if denom <= 0 {
		return math.NaN(), &UnattainableAnomalyError{Eccentricity: e, TrueAnomaly: nu}
	}
	coshE := (e + math.Cos(nu)) / denom
	if coshE < 1 {
		return math.NaN(), &UnattainableAnomalyError{Eccentricity: e, TrueAnomaly: nu}
	}
	E := math.Log(coshE + math.Sqrt(coshE*coshE-1))
	if nu > math.Pi {
		E = -E
	}
	return E, nil
}

// EccentricToMean is Kepler's equation. Elliptical results are in [0, 2π).
func EccentricToMean(e, E float64) float64 {
	if e < 1 {
		return ClampTwoPi(E - e*math.Sin(E))
	}
	return e*math.Sinh(E) - E
}

// MeanToEccentric solves Kepler's equation with Newton's method.
func MeanToEccentric(e, M float64) float64 {
	if e < 1 {
		M = ClampTwoPi(M)
		E := M
		if e > 0.8 {
			E = math.Pi
		}
		for i := 0; i < keplerMaxIts; i++ {
			step := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
			E -= step
			if math.Abs(step) < keplerTol {
				break
			}
		}
		return E
	}

	E := math.Asinh(M / e)
	for i := 0; i < keplerMaxIts; i++ {
		step := (e*math.Sinh(E) - E - M) / (e*math.Cosh(E) - 1)
		E -= step
		if math.Abs(step) < keplerTol {
			break
		}
	}
	return E
}

// EccentricToTrue converts eccentric (or hyperbolic) anomaly to true anomaly.
// Elliptical results are in [0, 2π); hyperbolic ones in (-π, π).
func EccentricToTrue(e, E float64) float64 {
	if e < 1 {
		return ClampTwoPi(2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2)))
	}
	return 2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(E/2))
}
