package domain

// Assignment pairs a vehicle with the cargo committed to it during one
// optimization pass. It exists only for the duration of that pass.
//
// Visited stations keep first-visit order: the last entry is the station the
// vehicle was most recently routed toward, which the rental-reuse rule
// inspects.
type Assignment struct {
	Vehicle     *Vehicle
	IsRental    bool
	Cargo       []*Cargo
	CurrentLoad int

	stationIDs []int64
	seen       map[int64]struct{}
}

func NewAssignment(v *Vehicle, isRental bool) *Assignment {
	return &Assignment{
		Vehicle:  v,
		IsRental: isRental,
		seen:     make(map[int64]struct{}),
	}
}

// Add commits one cargo item and records its station.
func (a *Assignment) Add(c *Cargo) {
	a.Cargo = append(a.Cargo, c)
	a.CurrentLoad += c.WeightKg
	if _, ok := a.seen[c.StationID]; !ok {
		a.seen[c.StationID] = struct{}{}
		a.stationIDs = append(a.stationIDs, c.StationID)
	}
}

// Fits reports whether the cargo can be added without exceeding capacity.
func (a *Assignment) Fits(c *Cargo) bool {
	return a.CurrentLoad+c.WeightKg <= a.Vehicle.CapacityKg
}

// RemainingCapacity in kilograms.
func (a *Assignment) RemainingCapacity() int {
	return a.Vehicle.CapacityKg - a.CurrentLoad
}

// StationIDs returns the distinct visited stations in first-visit order.
func (a *Assignment) StationIDs() []int64 { return a.stationIDs }

// LastStationID returns the most recently visited station, or 0 when the
// assignment is still empty.
func (a *Assignment) LastStationID() int64 {
	if len(a.stationIDs) == 0 {
		return 0
	}
	return a.stationIDs[len(a.stationIDs)-1]
}
