package services

import "cargo-route-service/internal/domain"

// TourLeg is one hop of a computed tour.
type TourLeg struct {
	StationID  int64
	DistanceKm float64
}

// SolveTour orders the given stations by repeated nearest-neighbor selection
// starting from the depot. Duplicates are removed up front; on exact distance
// ties the first candidate encountered wins, scanning in the order supplied,
// so results are deterministic. The depot itself never appears in the output
// and adding the closing leg back to it is the caller's responsibility.
func SolveTour(depotID int64, stationIDs []int64, matrix domain.DistanceMatrix) []TourLeg {
	unvisited := make([]int64, 0, len(stationIDs))
	seen := make(map[int64]struct{}, len(stationIDs))
	for _, id := range stationIDs {
		if id == depotID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unvisited = append(unvisited, id)
	}

	path := make([]TourLeg, 0, len(unvisited))
	current := depotID

	for len(unvisited) > 0 {
		best := 0
		minDist := matrix.Between(current, unvisited[0])
		for i := 1; i < len(unvisited); i++ {
			if d := matrix.Between(current, unvisited[i]); d < minDist {
				minDist = d
				best = i
			}
		}

		next := unvisited[best]
		path = append(path, TourLeg{StationID: next, DistanceKm: minDist})
		current = next
		unvisited = append(unvisited[:best], unvisited[best+1:]...)
	}

	return path
}

// TourDistanceKm sums the consecutive legs of a tour.
func TourDistanceKm(legs []TourLeg) float64 {
	total := 0.0
	for _, l := range legs {
		total += l.DistanceKm
	}
	return total
}
