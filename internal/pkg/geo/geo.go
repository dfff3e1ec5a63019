// Package geo holds the coordinate math shared by duplicate detection and
// the hotspot grid.
package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points using the
// haversine formula.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	latDelta := toRadians(lat2 - lat1)
	lngDelta := toRadians(lng2 - lng1)

	a := math.Sin(latDelta/2)*math.Sin(latDelta/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(lngDelta/2)*math.Sin(lngDelta/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// WithinDistance reports whether two points are at most maxKm apart.
func WithinDistance(lat1, lng1, lat2, lng2, maxKm float64) bool {
	return DistanceKm(lat1, lng1, lat2, lng2) <= maxKm
}

// SnapToGrid rounds a coordinate to three decimal places (~110 m cells),
// the resolution used for hotspot counting.
func SnapToGrid(coord float64) float64 {
	return math.Round(coord*1000) / 1000
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
