package geo

import "math"

// Course is the great-circle path from one surface point to another.
type Course struct {
	Distance float64 // m along the surface
	Bearing  float64 // initial bearing, degrees in [0, 360)
}

// SurfaceCourse is the haversine distance and initial bearing from (lat1,
// lon1) to (lat2, lon2) on a sphere of radius r. Angles are in degrees.
func SurfaceCourse(lat1, lon1, lat2, lon2, r float64) Course {
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	p1, p2 := rad(lat1), rad(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(p1)*math.Cos(p2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	y := math.Sin(dLon) * math.Cos(p2)
	x := math.Cos(p1)*math.Sin(p2) - math.Sin(p1)*math.Cos(p2)*math.Cos(dLon)
	brng := math.Mod(deg(math.Atan2(y, x))+360, 360)

	return Course{Distance: r * c, Bearing: brng}
}

// Approach describes where the current ground track passes a surface point.
type Approach struct {
	// CrossTrack is the distance between the track and the point at its
	// closest, signed positive when the point lies right of the track.
	CrossTrack float64
	// AlongTrack is the distance along the track to that closest point.
	AlongTrack float64
}

// SurfaceApproach projects a point at the given bearing and distance onto
// the great circle leaving the current position on heading. The point's
// side is reported through the sign of CrossTrack.
func SurfaceApproach(r, heading, bearing, dist float64) Approach {
	if r <= 0 {
		return Approach{}
	}
	dXt := math.Asin(math.Sin(dist/r)*math.Sin(rad(bearing)-rad(heading))) * r
	cosAt := math.Cos(dist/r) / math.Cos(dXt/r)
	dAt := math.Acos(math.Max(-1, math.Min(1, cosAt))) * r
	return Approach{CrossTrack: dXt, AlongTrack: dAt}
}

// RelativeBearing is bearing seen from heading, in [-180, 180).
func RelativeBearing(bearing, heading float64) float64 {
	return math.Mod(math.Mod(bearing-heading+540, 360)+360, 360) - 180
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }
