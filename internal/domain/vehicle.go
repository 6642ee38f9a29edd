package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// Rental provisioning defaults. The rental-reuse rule in the assignment
// engine compares detour fuel against RentalBaseCost, so the two must stay
// in sync.
const (
	RentalBaseCost      = 200.0
	RentalFuelPerKm     = 1.0
	MinRentalCapacityKg = 500
)

// Vehicle carries cargo. Owned vehicles are long-lived reference data;
// rentals are ephemeral, created inside a single optimization run.
type Vehicle struct {
	ID            int64
	PlateNumber   string
	CapacityKg    int
	BaseCost      float64
	FuelCostPerKm float64
	IsRental      bool
	Status        VehicleStatus
}

// NewRentalVehicle provisions a rental sized for the next unpacked cargo
// item. The plate embeds a UUID fragment so concurrent scenario runs cannot
// collide on identity.
func NewRentalVehicle(seq int, nextCargoWeightKg int) *Vehicle {
	capacity := MinRentalCapacityKg
	if nextCargoWeightKg > capacity {
		capacity = nextCargoWeightKg
	}

	return &Vehicle{
		PlateNumber:   fmt.Sprintf("RENT-%s-%d", uuid.NewString()[:8], seq),
		CapacityKg:    capacity,
		BaseCost:      RentalBaseCost,
		FuelCostPerKm: RentalFuelPerKm,
		IsRental:      true,
		Status:        VehicleActive,
	}
}
