// Package geo provides great-circle distance helpers for track points
package geo

import (
	"errors"
	"math"
)

const earthRadiusKm = 6371.0

var errInvalidCoordinate = errors.New("coordinate out of range")

// HaversineKm returns the great-circle distance between two points in
// kilometres.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceApprox returns an equirectangular approximation of the distance
// between two points in kilometres. It is accurate enough for the short
// hops between consecutive fixes and fails on invalid input instead of
// producing NaN.
func DistanceApprox(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if !valid(lat1, lon1) || !valid(lat2, lon2) {
		return 0, errInvalidCoordinate
	}

	x := toRad(lon2-lon1) * math.Cos(toRad(lat1+lat2)/2)
	y := toRad(lat2 - lat1)

	return math.Sqrt(x*x+y*y) * earthRadiusKm, nil
}

func valid(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}

	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
