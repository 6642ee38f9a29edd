package domain

// CargoStatus tracks the lifecycle of a request. The optimizer moves
// pending cargo to planned; delivery confirmation happens out of band.
type CargoStatus string

const (
	CargoPending   CargoStatus = "pending"
	CargoPlanned   CargoStatus = "planned"
	CargoDelivered CargoStatus = "delivered"
)

// Cargo is a single weighted delivery request bound to one station.
type Cargo struct {
	ID          int64
	StationID   int64
	WeightKg    int
	Status      CargoStatus
	RequestDate string // YYYY-MM-DD
	Requester   string
}
