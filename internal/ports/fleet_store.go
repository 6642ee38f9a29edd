package ports

import (
	"context"

	"cargo-route-service/internal/domain"
)

// SortOrder controls how pending cargo is ordered when loaded for a run.
type SortOrder string

const (
	WeightDesc SortOrder = "DESC"
	WeightAsc  SortOrder = "ASC"
)

// FleetStore is the read boundary the optimizer depends on, plus the entry
// point into a transactional scope for a run's writes. Handlers and services
// stay unaware of the concrete store behind it.
type FleetStore interface {
	// ListStations returns all stations ordered by id.
	ListStations(ctx context.Context) ([]domain.Station, error)

	// ListOwnedActiveVehicles returns active non-rental vehicles ordered by
	// capacity descending.
	ListOwnedActiveVehicles(ctx context.Context) ([]*domain.Vehicle, error)

	// ListPendingCargo returns pending cargo for a date ordered by weight.
	ListPendingCargo(ctx context.Context, date string, order SortOrder) ([]*domain.Cargo, error)

	// ListRoutesByDate returns committed routes for a date ordered by id.
	ListRoutesByDate(ctx context.Context, date string) ([]domain.Route, error)

	Begin(ctx context.Context) (FleetTx, error)
}

// FleetTx is one atomic unit of optimization output: either every write in
// the run is committed, or all of them are rolled back.
type FleetTx interface {
	// CreateRentalVehicle persists an ephemeral rental and fills its ID.
	CreateRentalVehicle(ctx context.Context, v *domain.Vehicle) error

	// CreateRoute persists a route and fills its ID.
	CreateRoute(ctx context.Context, r *domain.Route) error

	CreateRouteStops(ctx context.Context, stops []domain.RouteStop) error

	// AssignCargo links a cargo item to the vehicle carrying it on a date.
	AssignCargo(ctx context.Context, cargoID, vehicleID int64, date string) error

	MarkCargoPlanned(ctx context.Context, cargoIDs []int64) error

	Commit() error
	Rollback() error
}
