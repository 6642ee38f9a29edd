package services

import (
	"sort"

	"cargo-route-service/internal/domain"
)

// Strategy selects the knapsack objective for the fixed-fleet mode.
type Strategy string

const (
	StrategyWeight Strategy = "WEIGHT" // maximize delivered kilograms
	StrategyCount  Strategy = "COUNT"  // maximize delivered item count
)

// minScoreDistanceKm clamps the scoring divisor so cargo at the depot
// station does not divide by zero.
const minScoreDistanceKm = 0.1

// AssignLimited fills only the owned fleet, ranking cargo by value per
// kilometer from the depot: value is 1 for COUNT and the item weight for
// WEIGHT. The sort is stable, so equal scores keep their original relative
// order and the mode is deterministic for identical inputs. Vehicles are
// filled in the given (capacity descending) order, each trying every
// remaining candidate in score order with no feasibility floor. Rentals are
// never created; whatever fits nowhere comes back as skipped.
func AssignLimited(
	cargo []*domain.Cargo,
	owned []*domain.Vehicle,
	matrix domain.DistanceMatrix,
	depotID int64,
	strategy Strategy,
) ([]*domain.Assignment, []*domain.Cargo) {
	type scoredCargo struct {
		cargo *domain.Cargo
		score float64
	}

	scored := make([]scoredCargo, 0, len(cargo))
	for _, c := range cargo {
		d := matrix.Between(depotID, c.StationID)
		if d < minScoreDistanceKm {
			d = minScoreDistanceKm
		}

		value := float64(c.WeightKg)
		if strategy == StrategyCount {
			value = 1
		}

		scored = append(scored, scoredCargo{cargo: c, score: value / d})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	remaining := make([]*domain.Cargo, 0, len(scored))
	for _, sc := range scored {
		remaining = append(remaining, sc.cargo)
	}

	assignments := make([]*domain.Assignment, 0, len(owned))
	for _, v := range owned {
		a := domain.NewAssignment(v, false)
		packInto(a, &remaining)
		assignments = append(assignments, a)
	}

	return assignments, remaining
}
