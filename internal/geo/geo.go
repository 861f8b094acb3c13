package geo

import (
	"errors"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// GROUND TRACK POINTS
// Positions are stored projected to 3857 so recorded flights drop straight onto
// web map tiles. Mercator is spherical, so the projection is valid for any body;
// x and y are in Earth-scaled metres and are only meant for display.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

var toWebMercator = wgs84.EPSG().Transform(4326, 3857)

// PointFromString parses "lat,lon" or "lat,lon,alt" into a projected ground
// track point, and returns the altitude separately.
func PointFromString(coords string) (point geom.Point, alt float64, err error) {
	parts := strings.Split(coords, ",")
	if len(parts) < 2 {
		return geom.NewEmptyPoint(geom.DimXYZ), 0, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXYZ), 0, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXYZ), 0, ErrInvalidCoordinates
	}
	if len(parts) > 2 {
		alt, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return geom.NewEmptyPoint(geom.DimXYZ), 0, ErrInvalidCoordinates
		}
	}
	return GroundTrackPoint(lat, lon, alt), alt, nil
}

// GroundTrackPoint projects a latitude/longitude in degrees to a 3857 point
// carrying the altitude as Z. Latitudes are clamped to the mercator limit.
func GroundTrackPoint(lat, lon, alt float64) geom.Point {
	if lat > MaxMercatorLatitude {
		lat = MaxMercatorLatitude
	} else if lat < -MaxMercatorLatitude {
		lat = -MaxMercatorLatitude
	}
	x, y, _ := toWebMercator(WrapLongitude(lon), lat, 0)
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: x, Y: y},
			Z:    alt,
			Type: geom.DimXYZ,
		},
	)
}

// MaxMercatorLatitude is where web mercator stops.
const MaxMercatorLatitude = 85.05112878

// WrapLongitude maps a longitude into [-180, 180). The host reports
// longitudes that keep counting past a full turn.
func WrapLongitude(lon float64) float64 {
	for lon >= 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
