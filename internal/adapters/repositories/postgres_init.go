package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the fleet tables when they do not exist yet.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		is_center BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id BIGSERIAL PRIMARY KEY,
		plate_number TEXT NOT NULL,
		capacity_kg INTEGER NOT NULL,
		base_cost NUMERIC(10, 2) NOT NULL DEFAULT 0,
		fuel_cost_per_km NUMERIC(10, 2) NOT NULL DEFAULT 1.0,
		is_rental BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL DEFAULT 'active'
	);
	`

	createCargosQuery := `
	CREATE TABLE IF NOT EXISTS cargos (
		id BIGSERIAL PRIMARY KEY,
		station_id BIGINT NOT NULL REFERENCES stations(id),
		weight_kg INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		request_date DATE NOT NULL DEFAULT CURRENT_DATE,
		requester TEXT NOT NULL DEFAULT ''
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id BIGINT NOT NULL REFERENCES vehicles(id),
		route_date DATE,
		total_distance_km NUMERIC(10, 2),
		total_cost NUMERIC(10, 2),
		calculated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRouteStopsQuery := `
	CREATE TABLE IF NOT EXISTS route_stops (
		id BIGSERIAL PRIMARY KEY,
		route_id BIGINT NOT NULL REFERENCES routes(id),
		station_id BIGINT NOT NULL REFERENCES stations(id),
		vehicle_id BIGINT REFERENCES vehicles(id),
		previous_station_id BIGINT REFERENCES stations(id),
		next_station_id BIGINT REFERENCES stations(id),
		visit_order INTEGER NOT NULL DEFAULT 1,
		operation_type TEXT NOT NULL DEFAULT 'dropoff'
	);
	`

	createCargosVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS cargos_vehicles (
		id BIGSERIAL PRIMARY KEY,
		cargo_id BIGINT NOT NULL REFERENCES cargos(id),
		vehicle_id BIGINT NOT NULL REFERENCES vehicles(id),
		route_date DATE
	);
	`

	createCargoIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_cargos_status_request_date
	ON cargos(status, request_date);
	`

	createStopsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_stops_route_order
	ON route_stops(route_id, visit_order);
	`

	statements := []string{
		createStationsQuery,
		createVehiclesQuery,
		createCargosQuery,
		createRoutesQuery,
		createRouteStopsQuery,
		createCargosVehiclesQuery,
		createCargoIndexQuery,
		createStopsIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
