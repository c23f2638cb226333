package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	points := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 40.1772, Lng: 44.5035},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: -179.9},
	}
	for _, p := range points {
		if d := DistanceMeters(p, p); d != 0 {
			t.Fatalf("DistanceMeters(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Point{Lat: 40.1772, Lng: 44.5035}
	b := Point{Lat: 40.7937, Lng: 43.8453}
	ab := DistanceMeters(a, b)
	ba := DistanceMeters(b, a)
	if math.Abs(ab-ba) > 1e-6 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// One degree of latitude is roughly 111.19 km on a 6371 km sphere.
	a := Point{Lat: 40.0, Lng: 44.5}
	b := Point{Lat: 41.0, Lng: 44.5}
	d := DistanceMeters(a, b)
	if d < 111000 || d > 111400 {
		t.Fatalf("one degree of latitude = %v m, expected ~111195 m", d)
	}
}

func TestETAMinutesMissingCoordinate(t *testing.T) {
	p := &Point{Lat: 40.0, Lng: 44.5}
	if eta := ETAMinutes(nil, p, DefaultSpeedMetersPerMinute); eta != 1 {
		t.Fatalf("ETAMinutes(nil origin) = %d, want 1", eta)
	}
	if eta := ETAMinutes(p, nil, DefaultSpeedMetersPerMinute); eta != 1 {
		t.Fatalf("ETAMinutes(nil stop) = %d, want 1", eta)
	}
}

func TestETAMinutesNeverBelowOne(t *testing.T) {
	origin := &Point{Lat: 40.0, Lng: 44.5}
	nearby := &Point{Lat: 40.00001, Lng: 44.5}
	if eta := ETAMinutes(origin, nearby, DefaultSpeedMetersPerMinute); eta < 1 {
		t.Fatalf("ETAMinutes for a ~1m distance = %d, want >= 1", eta)
	}
	if eta := ETAMinutes(origin, origin, DefaultSpeedMetersPerMinute); eta != 1 {
		t.Fatalf("ETAMinutes(same point) = %d, want 1", eta)
	}
}

func TestETAMinutesRounding(t *testing.T) {
	origin := &Point{Lat: 40.0, Lng: 44.5}
	// ~0.01 degree of latitude is about 1112 m -> 22 minutes at 50 m/min.
	stop := &Point{Lat: 40.01, Lng: 44.5}
	eta := ETAMinutes(origin, stop, 50)
	if eta < 21 || eta > 23 {
		t.Fatalf("ETAMinutes = %d, expected ~22", eta)
	}
}
