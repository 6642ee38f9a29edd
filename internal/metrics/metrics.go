package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// OptimizationRuns counts committed optimization runs by mode.
	OptimizationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimization_runs_total", Help: "Committed optimization runs by mode."},
		[]string{"mode"},
	)
	// RoutesCreated counts routes materialized by committed runs.
	RoutesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "optimization_routes_created_total", Help: "Routes created by committed runs."},
	)
	// RentalsCreated counts rental vehicles provisioned by committed runs.
	RentalsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "optimization_rentals_created_total", Help: "Rental vehicles created by committed runs."},
	)
	// CargoSkipped counts cargo left unassigned by committed runs.
	CargoSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "optimization_cargo_skipped_total", Help: "Cargo items left unassigned by committed runs."},
	)
	// RunDuration records optimization pass durations in seconds.
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "optimization_run_duration_seconds", Help: "Optimization pass duration in seconds.", Buckets: prometheus.DefBuckets},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(OptimizationRuns)
		Registry.MustRegister(RoutesCreated)
		Registry.MustRegister(RentalsCreated)
		Registry.MustRegister(CargoSkipped)
		Registry.MustRegister(RunDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
