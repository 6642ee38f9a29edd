package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
)

type OptimizeHandler struct {
	Optimizer *services.Optimizer
}

// Optimize runs one optimization pass for a date and commits its output.
// The request may pick the engine mode, knapsack strategy, cargo sort order
// and whether rentals are allowed; everything defaults to the main run.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, ok := normalizeDate(w, r, req.Date)
	if !ok {
		return
	}

	opts := services.DefaultOptions()

	switch strings.ToLower(strings.TrimSpace(req.Mode)) {
	case "", string(services.ModeUnlimited):
	case string(services.ModeLimited):
		opts.Mode = services.ModeLimited
		opts.AllowRentals = false
	default:
		writeError(w, r, http.StatusBadRequest, "mode must be unlimited or limited")
		return
	}

	switch strings.ToUpper(strings.TrimSpace(req.Strategy)) {
	case "", string(services.StrategyWeight):
	case string(services.StrategyCount):
		opts.Strategy = services.StrategyCount
	default:
		writeError(w, r, http.StatusBadRequest, "strategy must be WEIGHT or COUNT")
		return
	}

	switch strings.ToUpper(strings.TrimSpace(req.SortOrder)) {
	case "", string(ports.WeightDesc):
	case string(ports.WeightAsc):
		opts.SortOrder = ports.WeightAsc
	default:
		writeError(w, r, http.StatusBadRequest, "sort_order must be ASC or DESC")
		return
	}

	if req.AllowRentals != nil && opts.Mode == services.ModeUnlimited {
		opts.AllowRentals = *req.AllowRentals
	}

	result, err := h.Optimizer.Run(r.Context(), date, opts)
	if err != nil {
		log.Printf("optimization failed: date=%s err=%v", date, err)
		writeError(w, r, http.StatusInternalServerError, "optimization failed")
		return
	}

	writeJSON(w, r, http.StatusOK, toOptimizeResponse(date, result))
}

// Analyze runs the three canned scenario variants and returns their stats
// side by side. Nothing is persisted.
func (h *OptimizeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, ok := normalizeDate(w, r, req.Date)
	if !ok {
		return
	}

	scenarios, err := h.Optimizer.Analyze(r.Context(), date)
	if err != nil {
		log.Printf("scenario analysis failed: date=%s err=%v", date, err)
		writeError(w, r, http.StatusInternalServerError, "scenario analysis failed")
		return
	}

	res := dto.AnalyzeResponse{Date: date, Scenarios: make(map[string]dto.StatsResponse, len(scenarios))}
	for name, st := range scenarios {
		res.Scenarios[name] = toStatsResponse(st)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// decodeBody strictly decodes a single JSON object, tolerating an empty body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return true
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}

// normalizeDate validates YYYY-MM-DD, defaulting to today.
func normalizeDate(w http.ResponseWriter, r *http.Request, date string) (string, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now().Format("2006-01-02"), true
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return "", false
	}

	return date, true
}

func toOptimizeResponse(date string, result *services.Result) dto.OptimizeResponse {
	res := dto.OptimizeResponse{
		Date:    date,
		Routes:  make([]dto.RouteResponse, 0, len(result.Routes)),
		Skipped: make([]dto.CargoResponse, 0, len(result.Skipped)),
		Stats:   toStatsResponse(result.Stats),
	}

	for _, pr := range result.Routes {
		rr := dto.RouteResponse{
			RouteID:         pr.Route.ID,
			VehicleID:       pr.Route.VehicleID,
			Plate:           pr.Plate,
			IsRental:        pr.IsRental,
			RouteDate:       pr.Route.RouteDate,
			TotalDistanceKm: pr.Route.TotalDistanceKm,
			TotalCost:       pr.Route.TotalCost,
			Stops:           make([]dto.StopResponse, 0, len(pr.Stops)),
			Cargo:           make([]dto.CargoResponse, 0, len(pr.Cargo)),
		}
		for _, st := range pr.Stops {
			rr.Stops = append(rr.Stops, dto.StopResponse{
				StationID:         st.StationID,
				PreviousStationID: st.PreviousStationID,
				NextStationID:     st.NextStationID,
				VisitOrder:        st.VisitOrder,
				OperationType:     string(st.OperationType),
			})
		}
		for _, c := range pr.Cargo {
			rr.Cargo = append(rr.Cargo, dto.CargoResponse{
				CargoID:   c.ID,
				StationID: c.StationID,
				WeightKg:  c.WeightKg,
				Requester: c.Requester,
			})
		}
		res.Routes = append(res.Routes, rr)
	}

	for _, c := range result.Skipped {
		res.Skipped = append(res.Skipped, dto.CargoResponse{
			CargoID:   c.ID,
			StationID: c.StationID,
			WeightKg:  c.WeightKg,
			Requester: c.Requester,
		})
	}

	return res
}

func toStatsResponse(st services.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		RouteCount:      st.RouteCount,
		TotalCost:       st.TotalCost,
		TotalDistanceKm: st.TotalDistanceKm,
		TotalWeightKg:   st.TotalWeightKg,
	}
}
