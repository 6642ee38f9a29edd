package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/metrics"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
)

// Mode selects the assignment engine for a run.
type Mode string

const (
	ModeUnlimited Mode = "unlimited"
	ModeLimited   Mode = "limited"
)

// Options tune a single optimization pass.
type Options struct {
	Mode         Mode
	AllowRentals bool
	SortOrder    ports.SortOrder
	Strategy     Strategy // limited mode only
}

func DefaultOptions() Options {
	return Options{
		Mode:         ModeUnlimited,
		AllowRentals: true,
		SortOrder:    ports.WeightDesc,
		Strategy:     StrategyWeight,
	}
}

// Stats aggregates one run's output.
type Stats struct {
	RouteCount      int
	TotalCost       float64
	TotalDistanceKm float64
	TotalWeightKg   int
}

// PlannedRoute couples a created route with its stops and cargo.
type PlannedRoute struct {
	Route    domain.Route
	Stops    []domain.RouteStop
	Cargo    []*domain.Cargo
	Plate    string
	IsRental bool
}

// Result is everything one optimization pass produced.
type Result struct {
	Routes  []PlannedRoute
	Skipped []*domain.Cargo
	Stats   Stats
}

// Optimizer wires the distance matrix, clusterer, assignment engines, tour
// solver and cost model into one pass over a date. All persistence goes
// through the injected store so scenario runs can be sandboxed.
type Optimizer struct {
	Store ports.FleetStore
	Cache ports.MatrixCache // optional
}

// Run executes one optimization pass for the date and commits its output.
func (o *Optimizer) Run(ctx context.Context, date string, opts Options) (*Result, error) {
	return o.run(ctx, date, opts, true)
}

// Analyze runs three canned scenario variants against the same pending
// snapshot and rolls every one of them back, returning stats keyed by
// scenario name for side-by-side comparison.
func (o *Optimizer) Analyze(ctx context.Context, date string) (map[string]Stats, error) {
	scenarios := []struct {
		name string
		opts Options
	}{
		{"unlimited", Options{Mode: ModeUnlimited, AllowRentals: true, SortOrder: ports.WeightDesc}},
		{"fixed_count", Options{Mode: ModeUnlimited, AllowRentals: false, SortOrder: ports.WeightDesc}},
		{"fixed_weight", Options{Mode: ModeUnlimited, AllowRentals: false, SortOrder: ports.WeightAsc}},
	}

	out := make(map[string]Stats, len(scenarios))
	for _, sc := range scenarios {
		res, err := o.run(ctx, date, sc.opts, false)
		if err != nil {
			return nil, fmt.Errorf("analyze scenarios: %s: %w", sc.name, err)
		}
		out[sc.name] = res.Stats
	}

	return out, nil
}

func (o *Optimizer) run(ctx context.Context, date string, opts Options, commit bool) (_ *Result, err error) {
	defer obs.Time(ctx, "optimizer.run")(&err)
	start := time.Now()

	cargo, err := o.Store.ListPendingCargo(ctx, date, opts.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("optimize %s: list pending cargo: %w", date, err)
	}

	stations, err := o.Store.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("optimize %s: list stations: %w", date, err)
	}

	owned, err := o.Store.ListOwnedActiveVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("optimize %s: list vehicles: %w", date, err)
	}

	var depot *domain.Station
	for i := range stations {
		if stations[i].IsCenter {
			depot = &stations[i]
			break
		}
	}
	if depot == nil {
		return nil, fmt.Errorf("optimize %s: no depot station configured", date)
	}

	if len(cargo) == 0 {
		return &Result{Routes: []PlannedRoute{}}, nil
	}

	matrix, err := o.distanceMatrix(ctx, stations)
	if err != nil {
		return nil, fmt.Errorf("optimize %s: build distance matrix: %w", date, err)
	}

	var (
		assignments []*domain.Assignment
		skipped     []*domain.Cargo
	)
	if opts.Mode == ModeLimited {
		assignments, skipped = AssignLimited(cargo, owned, matrix, depot.ID, opts.Strategy)
	} else {
		clusters := ClusterCargo(cargo, matrix, DefaultClusterRadiusKm)
		assignments, skipped = AssignUnlimited(clusters, owned, matrix, opts.AllowRentals)
	}

	tx, err := o.Store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("optimize %s: begin transaction: %w", date, err)
	}
	defer func() { _ = tx.Rollback() }()

	result := &Result{Routes: []PlannedRoute{}, Skipped: skipped}
	rentalsUsed := 0

	for _, a := range assignments {
		if len(a.Cargo) == 0 {
			continue
		}

		if a.IsRental {
			if err := tx.CreateRentalVehicle(ctx, a.Vehicle); err != nil {
				return nil, fmt.Errorf("optimize %s: create rental %s: %w", date, a.Vehicle.PlateNumber, err)
			}
			rentalsUsed++
		}

		cargoIDs := make([]int64, 0, len(a.Cargo))
		for _, c := range a.Cargo {
			if err := tx.AssignCargo(ctx, c.ID, a.Vehicle.ID, date); err != nil {
				return nil, fmt.Errorf("optimize %s: assign cargo %d: %w", date, c.ID, err)
			}
			cargoIDs = append(cargoIDs, c.ID)
		}
		if err := tx.MarkCargoPlanned(ctx, cargoIDs); err != nil {
			return nil, fmt.Errorf("optimize %s: mark cargo planned: %w", date, err)
		}

		legs := SolveTour(depot.ID, a.StationIDs(), matrix)
		distKm := TourDistanceKm(legs)
		if len(legs) > 0 {
			// Close the loop back to the depot.
			distKm += matrix.Between(legs[len(legs)-1].StationID, depot.ID)
		}

		route := domain.Route{
			VehicleID:       a.Vehicle.ID,
			RouteDate:       date,
			TotalDistanceKm: distKm,
			TotalCost:       RouteCost(a.Vehicle, distKm),
		}
		if err := tx.CreateRoute(ctx, &route); err != nil {
			return nil, fmt.Errorf("optimize %s: create route for vehicle %d: %w", date, a.Vehicle.ID, err)
		}

		stops := buildStops(route.ID, depot.ID, a.Vehicle.ID, legs)
		if err := tx.CreateRouteStops(ctx, stops); err != nil {
			return nil, fmt.Errorf("optimize %s: create route stops: %w", date, err)
		}

		for _, c := range a.Cargo {
			c.Status = domain.CargoPlanned
		}

		result.Routes = append(result.Routes, PlannedRoute{
			Route:    route,
			Stops:    stops,
			Cargo:    a.Cargo,
			Plate:    a.Vehicle.PlateNumber,
			IsRental: a.IsRental,
		})
		result.Stats.TotalCost += route.TotalCost
		result.Stats.TotalDistanceKm += route.TotalDistanceKm
		result.Stats.TotalWeightKg += a.CurrentLoad
	}
	result.Stats.RouteCount = len(result.Routes)

	if !commit {
		// Scenario run: the deferred rollback discards every mutation.
		return result, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("optimize %s: commit: %w", date, err)
	}

	metrics.OptimizationRuns.WithLabelValues(string(opts.Mode)).Inc()
	metrics.RoutesCreated.Add(float64(result.Stats.RouteCount))
	metrics.RentalsCreated.Add(float64(rentalsUsed))
	metrics.CargoSkipped.Add(float64(len(skipped)))
	metrics.RunDuration.Observe(time.Since(start).Seconds())

	return result, nil
}

// distanceMatrix builds the run's matrix, going through the cache when one
// is wired. Cache failures degrade to recomputation.
func (o *Optimizer) distanceMatrix(ctx context.Context, stations []domain.Station) (domain.DistanceMatrix, error) {
	if o.Cache == nil {
		return domain.NewDistanceMatrix(stations), nil
	}

	key := matrixKey(stations)
	m, ok, err := o.Cache.Get(ctx, key)
	if err != nil {
		log.Printf("matrix cache get failed key=%s err=%v", key, err)
	} else if ok {
		return m, nil
	}

	m = domain.NewDistanceMatrix(stations)
	if err := o.Cache.Put(ctx, key, m); err != nil {
		log.Printf("matrix cache put failed key=%s err=%v", key, err)
	}

	return m, nil
}

// matrixKey digests the station set (ids and coordinates) so any change to
// either invalidates the cached matrix. Stations arrive ordered by id.
func matrixKey(stations []domain.Station) string {
	h := sha256.New()
	for _, s := range stations {
		fmt.Fprintf(h, "%d:%.8f:%.8f;", s.ID, s.Coords.Lat, s.Coords.Lon)
	}

	return "matrix:" + hex.EncodeToString(h.Sum(nil))[:16]
}

func buildStops(routeID, depotID, vehicleID int64, legs []TourLeg) []domain.RouteStop {
	stops := make([]domain.RouteStop, 0, len(legs))
	prev := depotID
	for i, leg := range legs {
		next := depotID
		if i < len(legs)-1 {
			next = legs[i+1].StationID
		}

		stops = append(stops, domain.RouteStop{
			RouteID:           routeID,
			StationID:         leg.StationID,
			VehicleID:         vehicleID,
			PreviousStationID: prev,
			NextStationID:     next,
			VisitOrder:        i + 1,
			OperationType:     domain.OpDropoff,
		})
		prev = leg.StationID
	}

	return stops
}
