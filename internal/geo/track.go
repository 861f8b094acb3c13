package geo

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// TrackPoint is one sample of a recorded ground track.
type TrackPoint struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// TrackLineString builds the projected 2D line of a ground track.
func TrackLineString(points []TrackPoint) (geom.LineString, error) {
	if len(points) < 2 {
		return geom.LineString{}, fmt.Errorf("track must have at least 2 points, got %d", len(points))
	}

	flatCoords := make([]float64, 0, len(points)*2)
	for _, p := range points {
		c, ok := GroundTrackPoint(p.Latitude, p.Longitude, p.Altitude).Coordinates()
		if !ok {
			return geom.LineString{}, ErrInvalidCoordinates
		}
		flatCoords = append(flatCoords, c.X, c.Y)
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// SurfaceDistance sums great-circle legs of a track on a body of radius r.
func SurfaceDistance(points []TrackPoint, r float64) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		total += SurfaceCourse(a.Latitude, a.Longitude, b.Latitude, b.Longitude, r).Distance
	}
	return total
}
