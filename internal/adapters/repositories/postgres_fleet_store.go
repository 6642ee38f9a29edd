package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
)

// PostgresFleetStore implements ports.FleetStore over Postgres.
type PostgresFleetStore struct {
	DB *sql.DB
}

func NewPostgresFleetStore(db *sql.DB) *PostgresFleetStore {
	return &PostgresFleetStore{DB: db}
}

func (s *PostgresFleetStore) ListStations(ctx context.Context) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "store.ListStations")(&err)

	if s.DB == nil {
		return nil, errors.New("fleet store: db is nil")
	}

	q := `
	SELECT id, name, latitude, longitude, is_center
	FROM stations
	ORDER BY id;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list stations: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Station
	for rows.Next() {
		var st domain.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Coords.Lat, &st.Coords.Lon, &st.IsCenter); err != nil {
			return nil, fmt.Errorf("list stations: scan: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return out, nil
}

func (s *PostgresFleetStore) ListOwnedActiveVehicles(ctx context.Context) (_ []*domain.Vehicle, err error) {
	defer obs.Time(ctx, "store.ListOwnedActiveVehicles")(&err)

	if s.DB == nil {
		return nil, errors.New("fleet store: db is nil")
	}

	q := `
	SELECT id, plate_number, capacity_kg, base_cost, fuel_cost_per_km, is_rental, status
	FROM vehicles
	WHERE status = 'active' AND is_rental = FALSE
	ORDER BY capacity_kg DESC, id;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query: %w", err)
	}
	defer rows.Close()

	var out []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.PlateNumber, &v.CapacityKg, &v.BaseCost, &v.FuelCostPerKm, &v.IsRental, &v.Status); err != nil {
			return nil, fmt.Errorf("list vehicles: scan: %w", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return out, nil
}

func (s *PostgresFleetStore) ListPendingCargo(ctx context.Context, date string, order ports.SortOrder) (_ []*domain.Cargo, err error) {
	defer obs.Time(ctx, "store.ListPendingCargo")(&err)

	if s.DB == nil {
		return nil, errors.New("fleet store: db is nil")
	}

	// Direction cannot be a bind parameter; restrict it to the two known values.
	dir := "DESC"
	if order == ports.WeightAsc {
		dir = "ASC"
	}

	q := fmt.Sprintf(`
	SELECT id, station_id, weight_kg, status, request_date::text, requester
	FROM cargos
	WHERE status = 'pending' AND request_date = $1
	ORDER BY weight_kg %s, id;
	`, dir)

	rows, err := s.DB.QueryContext(ctx, q, date)
	if err != nil {
		return nil, fmt.Errorf("list pending cargo: query: %w", err)
	}
	defer rows.Close()

	var out []*domain.Cargo
	for rows.Next() {
		var c domain.Cargo
		if err := rows.Scan(&c.ID, &c.StationID, &c.WeightKg, &c.Status, &c.RequestDate, &c.Requester); err != nil {
			return nil, fmt.Errorf("list pending cargo: scan: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending cargo: row iteration: %w", err)
	}

	return out, nil
}

func (s *PostgresFleetStore) ListRoutesByDate(ctx context.Context, date string) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "store.ListRoutesByDate")(&err)

	if s.DB == nil {
		return nil, errors.New("fleet store: db is nil")
	}

	q := `
	SELECT id, vehicle_id, route_date::text, total_distance_km, total_cost
	FROM routes
	WHERE route_date = $1
	ORDER BY id;
	`

	rows, err := s.DB.QueryContext(ctx, q, date)
	if err != nil {
		return nil, fmt.Errorf("list routes: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Route
	for rows.Next() {
		var r domain.Route
		if err := rows.Scan(&r.ID, &r.VehicleID, &r.RouteDate, &r.TotalDistanceKm, &r.TotalCost); err != nil {
			return nil, fmt.Errorf("list routes: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return out, nil
}

func (s *PostgresFleetStore) Begin(ctx context.Context) (ports.FleetTx, error) {
	if s.DB == nil {
		return nil, errors.New("fleet store: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("fleet store: begin tx: %w", err)
	}

	return &postgresTx{tx: tx}, nil
}

type postgresTx struct {
	tx *sql.Tx
}

func (t *postgresTx) CreateRentalVehicle(ctx context.Context, v *domain.Vehicle) error {
	q := `
	INSERT INTO vehicles (plate_number, capacity_kg, base_cost, fuel_cost_per_km, is_rental, status)
	VALUES ($1, $2, $3, $4, TRUE, $5)
	RETURNING id;
	`

	if err := t.tx.QueryRowContext(ctx, q, v.PlateNumber, v.CapacityKg, v.BaseCost, v.FuelCostPerKm, v.Status).Scan(&v.ID); err != nil {
		return fmt.Errorf("create rental vehicle: %w", err)
	}

	return nil
}

func (t *postgresTx) CreateRoute(ctx context.Context, r *domain.Route) error {
	q := `
	INSERT INTO routes (vehicle_id, route_date, total_distance_km, total_cost)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`

	if err := t.tx.QueryRowContext(ctx, q, r.VehicleID, r.RouteDate, r.TotalDistanceKm, r.TotalCost).Scan(&r.ID); err != nil {
		return fmt.Errorf("create route: %w", err)
	}

	return nil
}

func (t *postgresTx) CreateRouteStops(ctx context.Context, stops []domain.RouteStop) error {
	if len(stops) == 0 {
		return nil
	}

	stmt, err := t.tx.PrepareContext(ctx, `
	INSERT INTO route_stops (route_id, station_id, vehicle_id, previous_station_id, next_station_id, visit_order, operation_type)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return fmt.Errorf("create route stops: prepare: %w", err)
	}
	defer stmt.Close()

	for _, st := range stops {
		if _, err := stmt.ExecContext(ctx, st.RouteID, st.StationID, st.VehicleID, st.PreviousStationID, st.NextStationID, st.VisitOrder, st.OperationType); err != nil {
			return fmt.Errorf("create route stops: station=%d order=%d: %w", st.StationID, st.VisitOrder, err)
		}
	}

	return nil
}

func (t *postgresTx) AssignCargo(ctx context.Context, cargoID, vehicleID int64, date string) error {
	q := `
	INSERT INTO cargos_vehicles (cargo_id, vehicle_id, route_date)
	VALUES ($1, $2, $3);
	`

	if _, err := t.tx.ExecContext(ctx, q, cargoID, vehicleID, date); err != nil {
		return fmt.Errorf("assign cargo %d to vehicle %d: %w", cargoID, vehicleID, err)
	}

	return nil
}

func (t *postgresTx) MarkCargoPlanned(ctx context.Context, cargoIDs []int64) error {
	if len(cargoIDs) == 0 {
		return nil
	}

	q := `
	UPDATE cargos
	SET status = 'planned'
	WHERE id = ANY($1::bigint[]);
	`

	if _, err := t.tx.ExecContext(ctx, q, cargoIDs); err != nil {
		return fmt.Errorf("mark cargo planned: %w", err)
	}

	return nil
}

func (t *postgresTx) Commit() error {
	return t.tx.Commit()
}

func (t *postgresTx) Rollback() error {
	return t.tx.Rollback()
}
