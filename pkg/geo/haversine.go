package geo

import (
	"math"

	"reserve-backend/domain"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// IsUnset reports whether a coordinate is the (0,0) placeholder left by a missing location.
func IsUnset(p domain.Location) bool {
	return p.Lat == 0 && p.Lng == 0
}

// Valid reports whether the coordinate lies inside the WGS84 ranges.
func Valid(p domain.Location) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceKm returns the haversine distance between a and b in kilometers.
func DistanceKm(a, b domain.Location) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// DistanceBetween is DistanceKm rounded to one decimal. It is nil when the requester
// gave no position or the candidate sits on the (0,0) placeholder.
func DistanceBetween(from *domain.Location, to domain.Location) *float64 {
	if from == nil || IsUnset(to) {
		return nil
	}
	d := Round1(DistanceKm(*from, to))
	return &d
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
