package domain

// DistanceMatrix holds precomputed pairwise great-circle distances in
// kilometers between stations. It is built once per optimization run;
// lookups never recompute a distance.
type DistanceMatrix map[int64]map[int64]float64

// NewDistanceMatrix computes the full N×N matrix for the given stations.
// The diagonal is zero and an empty station list yields an empty matrix.
func NewDistanceMatrix(stations []Station) DistanceMatrix {
	m := make(DistanceMatrix, len(stations))
	for _, src := range stations {
		row := make(map[int64]float64, len(stations))
		for _, dst := range stations {
			if src.ID == dst.ID {
				row[dst.ID] = 0
				continue
			}
			row[dst.ID] = src.Coords.DistanceKm(dst.Coords)
		}
		m[src.ID] = row
	}

	return m
}

// Between returns the distance in kilometers between two station ids.
func (m DistanceMatrix) Between(from, to int64) float64 {
	return m[from][to]
}
