package ports

import (
	"context"

	"cargo-route-service/internal/domain"
)

// MatrixCache is an optional cache for precomputed distance matrices, keyed
// by a digest of the station set. A miss is (nil, false, nil).
type MatrixCache interface {
	Get(ctx context.Context, key string) (domain.DistanceMatrix, bool, error)
	Put(ctx context.Context, key string, m domain.DistanceMatrix) error
}
