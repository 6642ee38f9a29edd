package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"cargo-route-service/internal/api/handlers"
	"cargo-route-service/internal/metrics"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(store ports.FleetStore, cache ports.MatrixCache) http.Handler {
	mux := http.NewServeMux()

	optimizer := &services.Optimizer{Store: store, Cache: cache}
	optimizeHandler := &handlers.OptimizeHandler{Optimizer: optimizer}
	routesHandler := &handlers.RoutesHandler{Store: store}

	// One run per second with a small burst is plenty for a daily planner.
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/optimize", rateLimited(limiter, optimizeHandler.Optimize))
	mux.HandleFunc("/optimize/analyze", rateLimited(limiter, optimizeHandler.Analyze))
	mux.HandleFunc("/routes", routesHandler.List)

	return loggingMiddleware(mux)
}
