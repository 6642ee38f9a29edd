package dto

type OptimizeRequest struct {
	Date         string `json:"date"`
	Mode         string `json:"mode"`
	Strategy     string `json:"strategy"`
	SortOrder    string `json:"sort_order"`
	AllowRentals *bool  `json:"allow_rentals"`
}

type AnalyzeRequest struct {
	Date string `json:"date"`
}

type StopResponse struct {
	StationID         int64  `json:"station_id"`
	PreviousStationID int64  `json:"previous_station_id"`
	NextStationID     int64  `json:"next_station_id"`
	VisitOrder        int    `json:"visit_order"`
	OperationType     string `json:"operation_type"`
}

type CargoResponse struct {
	CargoID   int64  `json:"cargo_id"`
	StationID int64  `json:"station_id"`
	WeightKg  int    `json:"weight_kg"`
	Requester string `json:"requester,omitempty"`
}

type RouteResponse struct {
	RouteID         int64           `json:"route_id"`
	VehicleID       int64           `json:"vehicle_id"`
	Plate           string          `json:"plate"`
	IsRental        bool            `json:"is_rental"`
	RouteDate       string          `json:"route_date"`
	TotalDistanceKm float64         `json:"total_distance_km"`
	TotalCost       float64         `json:"total_cost"`
	Stops           []StopResponse  `json:"stops"`
	Cargo           []CargoResponse `json:"cargo"`
}

type StatsResponse struct {
	RouteCount      int     `json:"route_count"`
	TotalCost       float64 `json:"total_cost"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalWeightKg   int     `json:"total_weight_kg"`
}

type OptimizeResponse struct {
	Date    string          `json:"date"`
	Routes  []RouteResponse `json:"routes"`
	Skipped []CargoResponse `json:"skipped"`
	Stats   StatsResponse   `json:"stats"`
}

type AnalyzeResponse struct {
	Date      string                   `json:"date"`
	Scenarios map[string]StatsResponse `json:"scenarios"`
}

type ListRoutesResponse struct {
	Date   string         `json:"date"`
	Routes []RouteSummary `json:"routes"`
}

type RouteSummary struct {
	RouteID         int64   `json:"route_id"`
	VehicleID       int64   `json:"vehicle_id"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalCost       float64 `json:"total_cost"`
}
