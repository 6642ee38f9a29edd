package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cargo-route-service/internal/domain"
)

type StationSeed struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsCenter  bool    `json:"is_center"`
}

type VehicleSeed struct {
	ID            int64   `json:"id"`
	PlateNumber   string  `json:"plate_number"`
	CapacityKg    int     `json:"capacity_kg"`
	BaseCost      float64 `json:"base_cost"`
	FuelCostPerKm float64 `json:"fuel_cost_per_km"`
	Status        string  `json:"status"`
}

type CargoSeed struct {
	ID          int64  `json:"id"`
	StationID   int64  `json:"station_id"`
	WeightKg    int    `json:"weight_kg"`
	RequestDate string `json:"request_date"`
	Requester   string `json:"requester"`
}

type SeedFile struct {
	Stations []StationSeed `json:"stations"`
	Vehicles []VehicleSeed `json:"vehicles"`
	Cargo    []CargoSeed   `json:"cargo"`
}

// ReadSeedFile loads and validates a JSON seed dataset.
func ReadSeedFile(jsonPath string) (*SeedFile, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed fleet: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("seed fleet: parse json: %w", err)
	}

	for i, s := range data.Stations {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("seed fleet: station at index %d: name cannot be empty", i+1)
		}
	}
	for i, v := range data.Vehicles {
		if v.CapacityKg <= 0 {
			return nil, fmt.Errorf("seed fleet: vehicle at index %d: invalid capacity %d", i+1, v.CapacityKg)
		}
	}
	for i, c := range data.Cargo {
		if c.WeightKg <= 0 {
			return nil, fmt.Errorf("seed fleet: cargo at index %d: invalid weight %d", i+1, c.WeightKg)
		}
		if c.StationID == 0 {
			return nil, fmt.Errorf("seed fleet: cargo at index %d: station_id is required", i+1)
		}
	}

	return &data, nil
}

// SeedFromJSON populates the database from a JSON seed dataset.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	data, err := ReadSeedFile(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed fleet: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stationStmt, err := tx.Prepare(`
	INSERT INTO stations (id, name, latitude, longitude, is_center)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		is_center = EXCLUDED.is_center;
	`)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare station insert: %w", err)
	}
	defer stationStmt.Close()

	for _, s := range data.Stations {
		if _, err := stationStmt.Exec(s.ID, s.Name, s.Latitude, s.Longitude, s.IsCenter); err != nil {
			return fmt.Errorf("seed fleet: insert station id=%d: %w", s.ID, err)
		}
	}

	vehicleStmt, err := tx.Prepare(`
	INSERT INTO vehicles (id, plate_number, capacity_kg, base_cost, fuel_cost_per_km, is_rental, status)
	VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	ON CONFLICT (id) DO UPDATE
	SET plate_number = EXCLUDED.plate_number,
		capacity_kg = EXCLUDED.capacity_kg,
		base_cost = EXCLUDED.base_cost,
		fuel_cost_per_km = EXCLUDED.fuel_cost_per_km,
		status = EXCLUDED.status;
	`)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, v := range data.Vehicles {
		status := v.Status
		if status == "" {
			status = string(domain.VehicleActive)
		}
		if _, err := vehicleStmt.Exec(v.ID, v.PlateNumber, v.CapacityKg, v.BaseCost, v.FuelCostPerKm, status); err != nil {
			return fmt.Errorf("seed fleet: insert vehicle id=%d: %w", v.ID, err)
		}
	}

	cargoStmt, err := tx.Prepare(`
	INSERT INTO cargos (id, station_id, weight_kg, status, request_date, requester)
	VALUES ($1, $2, $3, 'pending', $4, $5)
	ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare cargo insert: %w", err)
	}
	defer cargoStmt.Close()

	for _, c := range data.Cargo {
		if _, err := cargoStmt.Exec(c.ID, c.StationID, c.WeightKg, c.RequestDate, c.Requester); err != nil {
			return fmt.Errorf("seed fleet: insert cargo id=%d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed fleet: commit tx: %w", err)
	}

	return nil
}

// LoadSeed fills the in-memory store from the same JSON dataset the
// database seeding uses.
func (s *MemoryFleetStore) LoadSeed(jsonPath string) error {
	data, err := ReadSeedFile(jsonPath)
	if err != nil {
		return err
	}

	for _, st := range data.Stations {
		s.AddStation(domain.Station{
			ID:       st.ID,
			Name:     st.Name,
			Coords:   domain.Coordinates{Lat: st.Latitude, Lon: st.Longitude},
			IsCenter: st.IsCenter,
		})
	}
	for _, v := range data.Vehicles {
		status := domain.VehicleStatus(v.Status)
		if status == "" {
			status = domain.VehicleActive
		}
		s.AddVehicle(domain.Vehicle{
			ID:            v.ID,
			PlateNumber:   v.PlateNumber,
			CapacityKg:    v.CapacityKg,
			BaseCost:      v.BaseCost,
			FuelCostPerKm: v.FuelCostPerKm,
			Status:        status,
		})
	}
	for _, c := range data.Cargo {
		s.AddCargo(domain.Cargo{
			ID:          c.ID,
			StationID:   c.StationID,
			WeightKg:    c.WeightKg,
			RequestDate: c.RequestDate,
			Requester:   c.Requester,
		})
	}

	return nil
}
