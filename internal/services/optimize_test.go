package services

import (
	"context"
	"math"
	"strings"
	"testing"

	"cargo-route-service/internal/adapters/repositories"
	"cargo-route-service/internal/domain"
)

const testDate = "2026-03-15"

// newTestStore seeds a depot and two stations roughly 11 and 13 km north
// of it, with the northern pair about 2 km apart.
func newTestStore(vehicleCapacityKg int) *repositories.MemoryFleetStore {
	s := repositories.NewMemoryFleetStore()
	s.AddStation(domain.Station{ID: 1, Name: "Depot", Coords: domain.Coordinates{Lat: 39.90, Lon: 32.80}, IsCenter: true})
	s.AddStation(domain.Station{ID: 2, Name: "North", Coords: domain.Coordinates{Lat: 40.00, Lon: 32.80}})
	s.AddStation(domain.Station{ID: 3, Name: "Far North", Coords: domain.Coordinates{Lat: 40.02, Lon: 32.80}})
	s.AddVehicle(domain.Vehicle{ID: 10, PlateNumber: "34ABC01", CapacityKg: vehicleCapacityKg, BaseCost: 100, FuelCostPerKm: 2, Status: domain.VehicleActive})
	s.AddCargo(domain.Cargo{ID: 101, StationID: 2, WeightKg: 300, RequestDate: testDate, Requester: "alice"})
	s.AddCargo(domain.Cargo{ID: 102, StationID: 3, WeightKg: 400, RequestDate: testDate, Requester: "bob"})
	return s
}

func TestOptimizerRunEmptyDate(t *testing.T) {
	store := newTestStore(1000)
	opt := &Optimizer{Store: store}

	res, err := opt.Run(context.Background(), "2026-01-01", DefaultOptions())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Routes) != 0 || res.Stats.RouteCount != 0 {
		t.Fatalf("empty date produced %d routes", len(res.Routes))
	}

	routes, _ := store.ListRoutesByDate(context.Background(), "2026-01-01")
	if len(routes) != 0 {
		t.Fatalf("store has %d routes after an empty run", len(routes))
	}
}

func TestOptimizerRunMissingDepot(t *testing.T) {
	store := repositories.NewMemoryFleetStore()
	store.AddStation(domain.Station{ID: 2, Name: "North", Coords: domain.Coordinates{Lat: 40.00, Lon: 32.80}})
	store.AddCargo(domain.Cargo{ID: 101, StationID: 2, WeightKg: 300, RequestDate: testDate})
	opt := &Optimizer{Store: store}

	_, err := opt.Run(context.Background(), testDate, DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "no depot") {
		t.Fatalf("err = %v, want missing-depot error", err)
	}
}

func TestOptimizerRunCommitsRoute(t *testing.T) {
	store := newTestStore(1000)
	opt := &Optimizer{Store: store}
	ctx := context.Background()

	res, err := opt.Run(ctx, testDate, DefaultOptions())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(res.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(res.Routes))
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("skipped %d items, want 0", len(res.Skipped))
	}
	if res.Stats.TotalWeightKg != 700 {
		t.Fatalf("total weight = %d, want 700", res.Stats.TotalWeightKg)
	}

	route := res.Routes[0].Route
	// Depot -> 2 -> 3 -> depot is roughly 11 + 2 + 13 km.
	if route.TotalDistanceKm < 25 || route.TotalDistanceKm > 29 {
		t.Fatalf("route distance = %.2f km, want ~27", route.TotalDistanceKm)
	}
	wantCost := 100 + route.TotalDistanceKm*2
	if math.Abs(route.TotalCost-wantCost) > 1e-9 {
		t.Fatalf("route cost = %v, want %v", route.TotalCost, wantCost)
	}

	stops := store.ListRouteStops(route.ID)
	if len(stops) != 2 {
		t.Fatalf("route has %d stops, want 2", len(stops))
	}
	if stops[0].StationID != 2 || stops[1].StationID != 3 {
		t.Fatalf("stop order = [%d %d], want [2 3]", stops[0].StationID, stops[1].StationID)
	}
	if stops[0].PreviousStationID != 1 || stops[0].NextStationID != 3 {
		t.Fatalf("first stop links = prev %d next %d, want prev 1 next 3",
			stops[0].PreviousStationID, stops[0].NextStationID)
	}
	if stops[1].PreviousStationID != 2 || stops[1].NextStationID != 1 {
		t.Fatalf("last stop links = prev %d next %d, want prev 2 next 1",
			stops[1].PreviousStationID, stops[1].NextStationID)
	}
	if stops[0].VisitOrder != 1 || stops[1].VisitOrder != 2 {
		t.Fatalf("visit orders = %d, %d; want 1, 2", stops[0].VisitOrder, stops[1].VisitOrder)
	}

	for _, id := range []int64{101, 102} {
		status, ok := store.CargoStatus(id)
		if !ok || status != domain.CargoPlanned {
			t.Errorf("cargo %d status = %q, want planned", id, status)
		}
	}

	if store.VehicleCount() != 1 {
		t.Fatalf("vehicle count = %d, want 1 (no rental needed)", store.VehicleCount())
	}
}

func TestOptimizerRunCreatesRental(t *testing.T) {
	store := newTestStore(300)
	opt := &Optimizer{Store: store}

	res, err := opt.Run(context.Background(), testDate, DefaultOptions())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(res.Routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(res.Routes))
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("skipped %d items, want 0", len(res.Skipped))
	}

	var rental *PlannedRoute
	for i := range res.Routes {
		if res.Routes[i].IsRental {
			rental = &res.Routes[i]
		}
	}
	if rental == nil {
		t.Fatal("no rental route although the owned fleet is too small")
	}
	if !strings.HasPrefix(rental.Plate, "RENT-") {
		t.Fatalf("rental plate = %q, want RENT- prefix", rental.Plate)
	}

	if store.VehicleCount() != 2 {
		t.Fatalf("vehicle count = %d, want 2 after committing the rental", store.VehicleCount())
	}
}

func TestOptimizerRunLimitedMode(t *testing.T) {
	store := newTestStore(300)
	opt := &Optimizer{Store: store}

	opts := DefaultOptions()
	opts.Mode = ModeLimited
	opts.AllowRentals = false
	opts.Strategy = StrategyCount

	res, err := opt.Run(context.Background(), testDate, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// The nearer 300 kg item scores 1/11 against 1/13 and takes the
	// only truck; the 400 kg item fits nowhere.
	if len(res.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(res.Routes))
	}
	if res.Stats.TotalWeightKg != 300 {
		t.Fatalf("total weight = %d, want 300", res.Stats.TotalWeightKg)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].ID != 102 {
		t.Fatalf("skipped = %v, want cargo 102", res.Skipped)
	}
	if store.VehicleCount() != 1 {
		t.Fatalf("vehicle count = %d, want 1 (limited mode never rents)", store.VehicleCount())
	}

	if status, _ := store.CargoStatus(101); status != domain.CargoPlanned {
		t.Errorf("cargo 101 status = %q, want planned", status)
	}
	if status, _ := store.CargoStatus(102); status != domain.CargoPending {
		t.Errorf("cargo 102 status = %q, want still pending", status)
	}
}

func TestOptimizerAnalyzeLeavesStoreUntouched(t *testing.T) {
	store := newTestStore(300)
	opt := &Optimizer{Store: store}
	ctx := context.Background()

	scenarios, err := opt.Analyze(ctx, testDate)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if len(scenarios) != 3 {
		t.Fatalf("got %d scenarios, want 3", len(scenarios))
	}
	for _, name := range []string{"unlimited", "fixed_count", "fixed_weight"} {
		if _, ok := scenarios[name]; !ok {
			t.Fatalf("scenario %q missing from %v", name, scenarios)
		}
	}

	if got := scenarios["unlimited"].TotalWeightKg; got != 700 {
		t.Errorf("unlimited weight = %d, want 700", got)
	}
	if got := scenarios["fixed_count"].TotalWeightKg; got != 300 {
		t.Errorf("fixed_count weight = %d, want 300", got)
	}
	if got := scenarios["fixed_weight"].TotalWeightKg; got != 300 {
		t.Errorf("fixed_weight weight = %d, want 300", got)
	}

	// Every scenario rolled back: no routes, no rentals, cargo untouched.
	routes, _ := store.ListRoutesByDate(ctx, testDate)
	if len(routes) != 0 {
		t.Fatalf("store has %d routes after analyze", len(routes))
	}
	if store.VehicleCount() != 1 {
		t.Fatalf("vehicle count = %d, want 1 after analyze", store.VehicleCount())
	}
	for _, id := range []int64{101, 102} {
		if status, _ := store.CargoStatus(id); status != domain.CargoPending {
			t.Errorf("cargo %d status = %q, want still pending", id, status)
		}
	}
}

func TestMatrixKeyChangesWithStations(t *testing.T) {
	a := []domain.Station{{ID: 1, Coords: domain.Coordinates{Lat: 39.9, Lon: 32.8}}}
	b := []domain.Station{{ID: 1, Coords: domain.Coordinates{Lat: 39.9, Lon: 32.9}}}

	ka, kb := matrixKey(a), matrixKey(b)
	if ka == kb {
		t.Fatal("moving a station did not change the cache key")
	}
	if !strings.HasPrefix(ka, "matrix:") {
		t.Fatalf("key = %q, want matrix: prefix", ka)
	}
	if ka != matrixKey(a) {
		t.Fatal("cache key not stable for identical input")
	}
}
