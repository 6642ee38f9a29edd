package services

import (
	"testing"

	"cargo-route-service/internal/domain"
)

// symMatrix builds a symmetric distance matrix from one-way pairs.
func symMatrix(pairs map[[2]int64]float64) domain.DistanceMatrix {
	m := domain.DistanceMatrix{}
	set := func(a, b int64, d float64) {
		if m[a] == nil {
			m[a] = map[int64]float64{a: 0}
		}
		m[a][b] = d
	}
	for k, d := range pairs {
		set(k[0], k[1], d)
		set(k[1], k[0], d)
	}
	return m
}

func TestClusterCargoGroupsNearbyStations(t *testing.T) {
	matrix := symMatrix(map[[2]int64]float64{
		{1, 2}: 5,
		{3, 4}: 6,
		{1, 3}: 80, {1, 4}: 80, {2, 3}: 80, {2, 4}: 80,
	})
	cargo := []*domain.Cargo{
		{ID: 11, StationID: 1, WeightKg: 100},
		{ID: 12, StationID: 2, WeightKg: 200},
		{ID: 13, StationID: 3, WeightKg: 500},
		{ID: 14, StationID: 4, WeightKg: 50},
	}

	clusters := ClusterCargo(cargo, matrix, DefaultClusterRadiusKm)

	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}

	// Heaviest first: {3,4} at 550 kg beats {1,2} at 300 kg.
	if clusters[0].TotalWeight != 550 || clusters[1].TotalWeight != 300 {
		t.Fatalf("cluster weights = %d, %d; want 550, 300",
			clusters[0].TotalWeight, clusters[1].TotalWeight)
	}

	seen := make(map[int64]int)
	for _, cl := range clusters {
		sum := 0
		for _, c := range cl.Cargo {
			seen[c.ID]++
			sum += c.WeightKg
		}
		if sum != cl.TotalWeight {
			t.Errorf("cluster weight %d does not match cargo sum %d", cl.TotalWeight, sum)
		}
	}
	for _, c := range cargo {
		if seen[c.ID] != 1 {
			t.Errorf("cargo %d appears %d times across clusters, want exactly once", c.ID, seen[c.ID])
		}
	}
}

func TestClusterCargoRadiusSplitsFarStations(t *testing.T) {
	matrix := symMatrix(map[[2]int64]float64{
		{1, 2}: 5,
		{3, 4}: 6,
		{1, 3}: 80, {1, 4}: 80, {2, 3}: 80, {2, 4}: 80,
	})
	cargo := []*domain.Cargo{
		{ID: 11, StationID: 1, WeightKg: 100},
		{ID: 12, StationID: 2, WeightKg: 100},
		{ID: 13, StationID: 3, WeightKg: 100},
		{ID: 14, StationID: 4, WeightKg: 100},
	}

	// Radius 5 keeps {1,2} together but splits {3,4} six km apart.
	clusters := ClusterCargo(cargo, matrix, 5)

	if len(clusters) != 3 {
		t.Fatalf("got %d clusters, want 3", len(clusters))
	}
	if clusters[0].TotalWeight != 200 {
		t.Fatalf("first cluster weight = %d, want 200", clusters[0].TotalWeight)
	}
}

func TestClusterCargoSingleStation(t *testing.T) {
	cargo := []*domain.Cargo{
		{ID: 21, StationID: 9, WeightKg: 120},
		{ID: 22, StationID: 9, WeightKg: 80},
	}

	clusters := ClusterCargo(cargo, domain.DistanceMatrix{}, DefaultClusterRadiusKm)

	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	if len(clusters[0].StationIDs) != 1 || clusters[0].StationIDs[0] != 9 {
		t.Fatalf("station ids = %v, want [9]", clusters[0].StationIDs)
	}
	if clusters[0].TotalWeight != 200 {
		t.Fatalf("weight = %d, want 200", clusters[0].TotalWeight)
	}
}

func TestClusterCargoEmpty(t *testing.T) {
	if clusters := ClusterCargo(nil, domain.DistanceMatrix{}, DefaultClusterRadiusKm); len(clusters) != 0 {
		t.Fatalf("empty cargo produced %d clusters", len(clusters))
	}
}
