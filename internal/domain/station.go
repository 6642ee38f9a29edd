package domain

// Station is immutable reference data for an optimization run.
// Exactly one station in a dataset is the depot (IsCenter), where every
// vehicle tour starts and ends.
type Station struct {
	ID       int64
	Name     string
	Coords   Coordinates
	IsCenter bool
}
