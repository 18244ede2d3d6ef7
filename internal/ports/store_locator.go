package ports

import (
	"context"

	"market-price-service/internal/domain"
)

// Contract for finding stores within a radius of a coordinate.
type StoreLocator interface {
	// Return all stores within radiusKm of the coordinate, in upstream
	// arrival order. A zero radius is valid and simply matches nothing.
	NearbyStores(ctx context.Context, at domain.Coordinates, radiusKm int) ([]domain.Store, error)
}
