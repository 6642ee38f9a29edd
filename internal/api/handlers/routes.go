package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/ports"
)

type RoutesHandler struct {
	Store ports.FleetStore
}

// List returns the committed routes for a date (default today).
func (h *RoutesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	routes, err := h.Store.ListRoutesByDate(r.Context(), date)
	if err != nil {
		log.Printf("list routes failed: date=%s err=%v", date, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutesResponse{Date: date, Routes: make([]dto.RouteSummary, 0, len(routes))}
	for _, rt := range routes {
		res.Routes = append(res.Routes, dto.RouteSummary{
			RouteID:         rt.ID,
			VehicleID:       rt.VehicleID,
			TotalDistanceKm: rt.TotalDistanceKm,
			TotalCost:       rt.TotalCost,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
