package domain

// Route is the priced tour one vehicle drives on one date.
type Route struct {
	ID              int64
	VehicleID       int64
	RouteDate       string
	TotalDistanceKm float64
	TotalCost       float64
}

type StopOperation string

const (
	OpPickup  StopOperation = "pickup"
	OpDropoff StopOperation = "dropoff"
	OpNone    StopOperation = "none"
)

// RouteStop is one ordered visit within a Route. Stops form a single path
// anchored at the depot: the first stop's previous link and the last stop's
// next link both reference the depot station, and visit_order increases
// strictly from 1.
type RouteStop struct {
	ID                int64
	RouteID           int64
	StationID         int64
	VehicleID         int64
	PreviousStationID int64
	NextStationID     int64
	VisitOrder        int
	OperationType     StopOperation
}
