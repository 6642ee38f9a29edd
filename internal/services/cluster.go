package services

import (
	"slices"
	"sort"

	"cargo-route-service/internal/domain"
)

const (
	// DefaultClusterRadiusKm is the absorption radius for the main run.
	DefaultClusterRadiusKm = 15.0
	// TightClusterRadiusKm is a narrower radius for ad hoc analysis paths.
	TightClusterRadiusKm = 10.0
)

// Cluster groups nearby stations and their pending cargo so a single vehicle
// can serve them without fragmenting routes.
type Cluster struct {
	StationIDs  []int64
	Cargo       []*domain.Cargo
	TotalWeight int
}

// ClusterCargo groups pending cargo by station proximity.
//
// Cargo is grouped by station first. The lowest unvisited active station id
// seeds a cluster, which absorbs every other unvisited station within
// radiusKm, again in ascending-id order. Greedy and single-pass, not
// globally optimal; a cluster may hold a single station when nothing falls
// within the radius. Clusters come back heaviest first.
func ClusterCargo(cargo []*domain.Cargo, matrix domain.DistanceMatrix, radiusKm float64) []Cluster {
	byStation := make(map[int64][]*domain.Cargo)
	for _, c := range cargo {
		byStation[c.StationID] = append(byStation[c.StationID], c)
	}

	activeIDs := make([]int64, 0, len(byStation))
	for id := range byStation {
		activeIDs = append(activeIDs, id)
	}
	slices.Sort(activeIDs)

	visited := make(map[int64]struct{}, len(activeIDs))
	clusters := make([]Cluster, 0, len(activeIDs))

	for _, seedID := range activeIDs {
		if _, ok := visited[seedID]; ok {
			continue
		}
		visited[seedID] = struct{}{}

		cl := Cluster{
			StationIDs:  []int64{seedID},
			Cargo:       slices.Clone(byStation[seedID]),
			TotalWeight: totalWeight(byStation[seedID]),
		}

		for _, neighborID := range activeIDs {
			if _, ok := visited[neighborID]; ok {
				continue
			}
			if matrix.Between(seedID, neighborID) > radiusKm {
				continue
			}

			visited[neighborID] = struct{}{}
			cl.StationIDs = append(cl.StationIDs, neighborID)
			cl.Cargo = append(cl.Cargo, byStation[neighborID]...)
			cl.TotalWeight += totalWeight(byStation[neighborID])
		}

		clusters = append(clusters, cl)
	}

	// Heaviest cluster first; stable so equal weights keep seed order.
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TotalWeight > clusters[j].TotalWeight
	})

	return clusters
}

func totalWeight(cargo []*domain.Cargo) int {
	sum := 0
	for _, c := range cargo {
		sum += c.WeightKg
	}
	return sum
}
