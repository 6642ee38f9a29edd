package services

import "cargo-route-service/internal/domain"

// RouteCost prices a vehicle's tour: fixed base cost plus fuel over the
// driven distance. Pure function, no side effects.
func RouteCost(v *domain.Vehicle, distanceKm float64) float64 {
	return v.BaseCost + distanceKm*v.FuelCostPerKm
}
