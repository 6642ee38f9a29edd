package services

import (
	"math"
	"testing"

	"cargo-route-service/internal/domain"
)

func TestSolveTourNearestNeighbor(t *testing.T) {
	matrix := symMatrix(map[[2]int64]float64{
		{1, 2}: 10,
		{1, 3}: 15,
		{1, 4}: 20,
		{2, 3}: 7,
		{2, 4}: 9,
		{3, 4}: 3,
	})

	legs := SolveTour(1, []int64{4, 2, 3}, matrix)

	wantOrder := []int64{2, 3, 4}
	wantDist := []float64{10, 7, 3}
	if len(legs) != len(wantOrder) {
		t.Fatalf("got %d legs, want %d", len(legs), len(wantOrder))
	}
	for i, leg := range legs {
		if leg.StationID != wantOrder[i] {
			t.Errorf("leg %d visits station %d, want %d", i, leg.StationID, wantOrder[i])
		}
		if math.Abs(leg.DistanceKm-wantDist[i]) > 1e-9 {
			t.Errorf("leg %d distance = %v, want %v", i, leg.DistanceKm, wantDist[i])
		}
	}

	if total := TourDistanceKm(legs); math.Abs(total-20) > 1e-9 {
		t.Fatalf("tour distance = %v, want 20", total)
	}
}

func TestSolveTourDedupesAndSkipsDepot(t *testing.T) {
	matrix := symMatrix(map[[2]int64]float64{
		{1, 2}: 10,
		{1, 3}: 15,
		{2, 3}: 7,
	})

	legs := SolveTour(1, []int64{2, 2, 1, 3}, matrix)

	if len(legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(legs))
	}
	for _, leg := range legs {
		if leg.StationID == 1 {
			t.Fatal("depot appeared in tour")
		}
	}
}

func TestSolveTourTieBreakKeepsInputOrder(t *testing.T) {
	matrix := symMatrix(map[[2]int64]float64{
		{1, 5}: 10,
		{1, 6}: 10,
		{5, 6}: 10,
	})

	legs := SolveTour(1, []int64{5, 6}, matrix)
	if legs[0].StationID != 5 || legs[1].StationID != 6 {
		t.Fatalf("tie order = [%d %d], want [5 6]", legs[0].StationID, legs[1].StationID)
	}

	legs = SolveTour(1, []int64{6, 5}, matrix)
	if legs[0].StationID != 6 || legs[1].StationID != 5 {
		t.Fatalf("tie order = [%d %d], want [6 5]", legs[0].StationID, legs[1].StationID)
	}
}

func TestSolveTourEmpty(t *testing.T) {
	if legs := SolveTour(1, nil, domain.DistanceMatrix{}); len(legs) != 0 {
		t.Fatalf("empty input produced %d legs", len(legs))
	}
}
