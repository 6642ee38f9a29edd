package domain

import "github.com/golang/geo/s2"

const earthRadiusKm = 6371.0088

// Immutable geographic coordinates (latitude, longitude in degrees).
type Coordinates struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle distance to other in kilometers.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	a := s2.LatLngFromDegrees(c.Lat, c.Lon)
	b := s2.LatLngFromDegrees(other.Lat, other.Lon)
	return a.Distance(b).Radians() * earthRadiusKm
}
