package ports

import (
	"context"

	"market-price-service/internal/domain"
)

// Contract for searching product prices across a fixed set of stores.
type ProductSearcher interface {
	// Return all listings matching the free-text keywords across the
	// given depots, in upstream order.
	SearchPrices(ctx context.Context, keywords string, depotIDs []string) ([]domain.ProductListing, error)
}
