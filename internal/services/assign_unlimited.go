package services

import (
	"slices"

	"cargo-route-service/internal/domain"
)

// RentalReuseDetourLimit is the flat cost ceiling for redirecting an
// already-loaded rental to another cluster. Above it, provisioning a fresh
// rental (base cost 200) beats the relocation fuel. Heuristic policy, kept
// in sync with domain.RentalBaseCost.
const RentalReuseDetourLimit = 200.0

// AssignUnlimited packs ranked clusters into the owned fleet first and spins
// up rentals for the overflow.
//
// Per cluster, while cargo remains: the minimum remaining cargo weight acts
// as a feasibility floor; vehicles below it are skipped, as is any loaded
// rental whose relocation fuel to the cluster's lead station exceeds
// RentalReuseDetourLimit. Among the rest, the vehicle with the LARGEST
// remaining capacity wins (best-fit-by-slack, a deliberate policy), and as
// many cluster items as fit are packed in cluster order. When nothing can
// take more cargo, rentals sized max(500, next item) are created until the
// cluster drains. With allowRentals false the cluster remainder is returned
// as skipped instead.
//
// Owned vehicles are expected sorted by capacity descending.
func AssignUnlimited(
	clusters []Cluster,
	owned []*domain.Vehicle,
	matrix domain.DistanceMatrix,
	allowRentals bool,
) ([]*domain.Assignment, []*domain.Cargo) {
	assignments := make([]*domain.Assignment, 0, len(owned))
	for _, v := range owned {
		assignments = append(assignments, domain.NewAssignment(v, false))
	}

	var skipped []*domain.Cargo
	rentalCount := 0

	for _, cluster := range clusters {
		remaining := slices.Clone(cluster.Cargo)

		for len(remaining) > 0 {
			minWeight := remaining[0].WeightKg
			for _, c := range remaining[1:] {
				if c.WeightKg < minWeight {
					minWeight = c.WeightKg
				}
			}

			best := -1
			maxSlack := -1
			for i, a := range assignments {
				slack := a.RemainingCapacity()
				if slack < minWeight {
					continue
				}

				// Reusing a loaded rental only pays off while the relocation
				// fuel stays under a fresh rental's base cost.
				if a.IsRental && len(a.StationIDs()) > 0 {
					detourKm := matrix.Between(a.LastStationID(), remaining[0].StationID)
					if detourKm*a.Vehicle.FuelCostPerKm > RentalReuseDetourLimit {
						continue
					}
				}

				if slack > maxSlack {
					maxSlack = slack
					best = i
				}
			}

			if best != -1 {
				if packInto(assignments[best], &remaining) > 0 {
					continue
				}
			}

			if !allowRentals {
				// Fixed fleet: abandon the rest of this cluster.
				skipped = append(skipped, remaining...)
				break
			}

			for len(remaining) > 0 {
				rentalCount++
				rental := domain.NewRentalVehicle(rentalCount, remaining[0].WeightKg)
				a := domain.NewAssignment(rental, true)
				assignments = append(assignments, a)

				// A fresh rental always fits its sizing item; the guard stops
				// runaway creation if that invariant is ever violated.
				if packInto(a, &remaining) == 0 {
					break
				}
			}
		}
	}

	return assignments, skipped
}

// packInto greedily adds cargo in order while capacity allows, removing
// packed items from remaining. Returns the number of items packed.
func packInto(a *domain.Assignment, remaining *[]*domain.Cargo) int {
	packed := 0
	rest := (*remaining)[:0]
	for _, c := range *remaining {
		if a.Fits(c) {
			a.Add(c)
			packed++
			continue
		}
		rest = append(rest, c)
	}
	*remaining = rest

	return packed
}
