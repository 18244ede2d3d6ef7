package marketapi

import (
	"context"
	"fmt"

	"market-price-service/internal/domain"
	"market-price-service/internal/platform/obs"
)

type nearestRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  int     `json:"distance"`
}

// Wire schema of one store in the nearest-stores response. The store
// name arrives as sellerName on current responses and marketAdi on
// older ones; everything else the upstream sends is dropped here.
type nearestStore struct {
	ID         string  `json:"id"`
	Distance   float64 `json:"distance"`
	SellerName string  `json:"sellerName"`
	MarketAdi  string  `json:"marketAdi"`
}

// NearbyStores returns all stores within radiusKm of the coordinate, in
// upstream arrival order. Entries without an id are dropped at the
// boundary.
func (c *Client) NearbyStores(ctx context.Context, at domain.Coordinates, radiusKm int) (_ []domain.Store, err error) {
	defer obs.Time(ctx, "marketapi.NearbyStores")(&err)

	payload := nearestRequest{
		Latitude:  at.Lat,
		Longitude: at.Lon,
		Distance:  radiusKm,
	}

	var decoded []nearestStore
	if err := c.postJSON(ctx, c.nearestURL, payload, &decoded); err != nil {
		return nil, fmt.Errorf("nearest stores lookup: %w", err)
	}

	stores := make([]domain.Store, 0, len(decoded))
	for _, s := range decoded {
		if s.ID == "" {
			c.log.Warn("dropping store without id", "name", s.SellerName)
			continue
		}

		name := s.SellerName
		if name == "" {
			name = s.MarketAdi
		}

		distance := s.Distance
		if distance < 0 {
			distance = 0
		}

		stores = append(stores, domain.Store{
			ID:             s.ID,
			Name:           name,
			DistanceMeters: distance,
		})
	}

	return stores, nil
}
