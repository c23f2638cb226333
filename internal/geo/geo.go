// Package geo provides straight-line distance and arrival estimates for
// catalog queries. Estimates assume a fixed nominal travel speed; they are
// deliberately rough and always round up to at least one minute.
package geo

import "math"

const (
	// earthRadiusMeters is the mean Earth radius used by the haversine formula.
	earthRadiusMeters = 6371000.0

	// DefaultSpeedMetersPerMinute is the nominal travel speed for ETA estimates.
	DefaultSpeedMetersPerMinute = 50.0
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(a, b Point) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// ETAMinutes estimates travel time between origin and stop at the given speed
// in meters per minute. A nil origin or stop means the position is unknown;
// the rider still gets a number, so the estimate degrades to 1 minute rather
// than failing. The result is never less than 1.
func ETAMinutes(origin, stop *Point, speedMetersPerMinute float64) int {
	if origin == nil || stop == nil {
		return 1
	}
	if speedMetersPerMinute <= 0 {
		speedMetersPerMinute = DefaultSpeedMetersPerMinute
	}
	eta := int(math.Round(DistanceMeters(*origin, *stop) / speedMetersPerMinute))
	if eta < 1 {
		return 1
	}
	return eta
}
