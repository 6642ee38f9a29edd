package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/ports"
)

// MemoryFleetStore keeps the whole dataset in process. It backs local runs
// without a DATABASE_URL and the service tests. Writes are staged per
// transaction and applied on Commit, so rolled-back scenario runs never
// touch the live data.
type MemoryFleetStore struct {
	mu       sync.Mutex
	stations []domain.Station
	vehicles map[int64]*domain.Vehicle
	cargo    map[int64]*domain.Cargo
	routes   map[int64]*domain.Route
	stops    []domain.RouteStop
	links    []cargoLink
	nextID   int64
}

// cargoLink records which vehicle carries a cargo item on a date.
type cargoLink struct {
	CargoID   int64
	VehicleID int64
	RouteDate string
}

func NewMemoryFleetStore() *MemoryFleetStore {
	return &MemoryFleetStore{
		vehicles: make(map[int64]*domain.Vehicle),
		cargo:    make(map[int64]*domain.Cargo),
		routes:   make(map[int64]*domain.Route),
	}
}

// AddStation registers reference data; ids are assigned when zero.
func (s *MemoryFleetStore) AddStation(st domain.Station) domain.Station {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == 0 {
		st.ID = s.allocateID()
	} else if st.ID > s.nextID {
		s.nextID = st.ID
	}
	s.stations = append(s.stations, st)

	return st
}

func (s *MemoryFleetStore) AddVehicle(v domain.Vehicle) domain.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == 0 {
		v.ID = s.allocateID()
	} else if v.ID > s.nextID {
		s.nextID = v.ID
	}
	stored := v
	s.vehicles[v.ID] = &stored

	return v
}

func (s *MemoryFleetStore) AddCargo(c domain.Cargo) domain.Cargo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		c.ID = s.allocateID()
	} else if c.ID > s.nextID {
		s.nextID = c.ID
	}
	if c.Status == "" {
		c.Status = domain.CargoPending
	}
	stored := c
	s.cargo[c.ID] = &stored

	return c
}

// allocateID hands out the next id. Callers must hold s.mu.
func (s *MemoryFleetStore) allocateID() int64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryFleetStore) ListStations(ctx context.Context) ([]domain.Station, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Station, len(s.stations))
	copy(out, s.stations)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *MemoryFleetStore) ListOwnedActiveVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if v.IsRental || v.Status != domain.VehicleActive {
			continue
		}
		c := *v
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CapacityKg != out[j].CapacityKg {
			return out[i].CapacityKg > out[j].CapacityKg
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (s *MemoryFleetStore) ListPendingCargo(ctx context.Context, date string, order ports.SortOrder) ([]*domain.Cargo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Cargo, 0, len(s.cargo))
	for _, c := range s.cargo {
		if c.Status != domain.CargoPending || c.RequestDate != date {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeightKg != out[j].WeightKg {
			if order == ports.WeightAsc {
				return out[i].WeightKg < out[j].WeightKg
			}
			return out[i].WeightKg > out[j].WeightKg
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (s *MemoryFleetStore) ListRoutesByDate(ctx context.Context, date string) ([]domain.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Route, 0, len(s.routes))
	for _, r := range s.routes {
		if r.RouteDate == date {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// ListRouteStops returns the ordered stops of a committed route.
func (s *MemoryFleetStore) ListRouteStops(routeID int64) []domain.RouteStop {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.RouteStop
	for _, st := range s.stops {
		if st.RouteID == routeID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitOrder < out[j].VisitOrder })

	return out
}

// CargoStatus reports the committed status of a cargo item.
func (s *MemoryFleetStore) CargoStatus(cargoID int64) (domain.CargoStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cargo[cargoID]
	if !ok {
		return "", false
	}
	return c.Status, true
}

// VehicleCount reports how many vehicles exist, rentals included.
func (s *MemoryFleetStore) VehicleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.vehicles)
}

func (s *MemoryFleetStore) Begin(ctx context.Context) (ports.FleetTx, error) {
	return &memoryTx{store: s}, nil
}

// memoryTx stages writes until Commit. Ids are allocated eagerly (like a
// database sequence, rolled-back ids stay burned) so staged rows can
// reference each other.
type memoryTx struct {
	store *MemoryFleetStore
	done  bool

	rentals []*domain.Vehicle
	routes  []*domain.Route
	stops   []domain.RouteStop
	links   []cargoLink
	planned []int64
}

func (t *memoryTx) CreateRentalVehicle(ctx context.Context, v *domain.Vehicle) error {
	if t.done {
		return errors.New("memory tx: already finished")
	}

	t.store.mu.Lock()
	v.ID = t.store.allocateID()
	t.store.mu.Unlock()

	cp := *v
	t.rentals = append(t.rentals, &cp)

	return nil
}

func (t *memoryTx) CreateRoute(ctx context.Context, r *domain.Route) error {
	if t.done {
		return errors.New("memory tx: already finished")
	}

	t.store.mu.Lock()
	r.ID = t.store.allocateID()
	t.store.mu.Unlock()

	cp := *r
	t.routes = append(t.routes, &cp)

	return nil
}

func (t *memoryTx) CreateRouteStops(ctx context.Context, stops []domain.RouteStop) error {
	if t.done {
		return errors.New("memory tx: already finished")
	}

	for _, st := range stops {
		t.store.mu.Lock()
		st.ID = t.store.allocateID()
		t.store.mu.Unlock()
		t.stops = append(t.stops, st)
	}

	return nil
}

func (t *memoryTx) AssignCargo(ctx context.Context, cargoID, vehicleID int64, date string) error {
	if t.done {
		return errors.New("memory tx: already finished")
	}

	t.links = append(t.links, cargoLink{CargoID: cargoID, VehicleID: vehicleID, RouteDate: date})

	return nil
}

func (t *memoryTx) MarkCargoPlanned(ctx context.Context, cargoIDs []int64) error {
	if t.done {
		return errors.New("memory tx: already finished")
	}

	t.planned = append(t.planned, cargoIDs...)

	return nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return errors.New("memory tx: already finished")
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range t.rentals {
		s.vehicles[v.ID] = v
	}
	for _, r := range t.routes {
		s.routes[r.ID] = r
	}
	s.stops = append(s.stops, t.stops...)
	s.links = append(s.links, t.links...)
	for _, id := range t.planned {
		c, ok := s.cargo[id]
		if !ok {
			return fmt.Errorf("memory tx: commit: unknown cargo %d", id)
		}
		c.Status = domain.CargoPlanned
	}

	return nil
}

func (t *memoryTx) Rollback() error {
	// Safe after Commit, matching database/sql semantics.
	t.done = true
	return nil
}
