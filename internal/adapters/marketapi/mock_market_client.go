package marketapi

import (
	"context"
	"sync"

	"market-price-service/internal/domain"
)

// SearchCall records one SearchPrices invocation for assertions.
type SearchCall struct {
	Keywords string
	DepotIDs []string
}

// MockMarketClient is an in-memory stand-in for the locator and searcher
// ports. Searches run concurrently during aggregation, so call recording
// is guarded by a mutex.
type MockMarketClient struct {
	mu sync.Mutex

	Stores    []domain.Store
	LocateErr error

	Listings  map[string][]domain.ProductListing
	SearchErr map[string]error

	LocateCalls int
	SearchCalls []SearchCall
}

func NewMockMarketClient(stores []domain.Store, listings map[string][]domain.ProductListing) *MockMarketClient {
	return &MockMarketClient{
		Stores:   stores,
		Listings: listings,
	}
}

func (m *MockMarketClient) NearbyStores(ctx context.Context, at domain.Coordinates, radiusKm int) ([]domain.Store, error) {
	m.mu.Lock()
	m.LocateCalls++
	m.mu.Unlock()

	if m.LocateErr != nil {
		return nil, m.LocateErr
	}
	return m.Stores, nil
}

func (m *MockMarketClient) SearchPrices(ctx context.Context, keywords string, depotIDs []string) ([]domain.ProductListing, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, SearchCall{Keywords: keywords, DepotIDs: depotIDs})
	m.mu.Unlock()

	if err, ok := m.SearchErr[keywords]; ok {
		return nil, err
	}
	return m.Listings[keywords], nil
}
