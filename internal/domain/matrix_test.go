package domain

import (
	"math"
	"testing"
)

func TestNewDistanceMatrix(t *testing.T) {
	stations := []Station{
		{ID: 1, Name: "Center", Coords: Coordinates{Lat: 39.93, Lon: 32.86}, IsCenter: true},
		{ID: 2, Name: "North", Coords: Coordinates{Lat: 40.10, Lon: 32.86}},
		{ID: 3, Name: "East", Coords: Coordinates{Lat: 39.93, Lon: 33.10}},
	}

	m := NewDistanceMatrix(stations)

	if len(m) != 3 {
		t.Fatalf("matrix has %d rows, want 3", len(m))
	}

	for _, src := range stations {
		if d := m.Between(src.ID, src.ID); d != 0 {
			t.Errorf("diagonal (%d,%d) = %v, want 0", src.ID, src.ID, d)
		}
		for _, dst := range stations {
			if ab, ba := m.Between(src.ID, dst.ID), m.Between(dst.ID, src.ID); math.Abs(ab-ba) > 1e-9 {
				t.Errorf("matrix not symmetric: (%d,%d)=%v (%d,%d)=%v", src.ID, dst.ID, ab, dst.ID, src.ID, ba)
			}
		}
	}

	// ~0.17 degrees of latitude is roughly 19 km.
	if d := m.Between(1, 2); d < 17 || d > 21 {
		t.Errorf("distance (1,2) = %.2f km, want ~19", d)
	}
}

func TestNewDistanceMatrixEmpty(t *testing.T) {
	m := NewDistanceMatrix(nil)
	if len(m) != 0 {
		t.Fatalf("empty station list produced %d rows", len(m))
	}
}
