package domain

import (
	"math"
	"testing"
)

func TestCoordinatesDistanceKm(t *testing.T) {
	ankara := Coordinates{Lat: 39.93, Lon: 32.86}
	istanbul := Coordinates{Lat: 41.01, Lon: 28.98}

	d := ankara.DistanceKm(istanbul)
	if d < 345 || d > 360 {
		t.Fatalf("Ankara-Istanbul distance = %.1f km, want ~351", d)
	}

	if rev := istanbul.DistanceKm(ankara); math.Abs(rev-d) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", d, rev)
	}

	if same := ankara.DistanceKm(ankara); same != 0 {
		t.Fatalf("distance to self = %v, want 0", same)
	}
}
