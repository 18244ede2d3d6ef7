package services

import (
	"context"
	"log/slog"
	"sync"

	"market-price-service/internal/domain"
	"market-price-service/internal/platform/obs"
	"market-price-service/internal/ports"
)

// Messages surfaced through ShoppingListResult.ErrorMessage for the
// non-fatal empty outcomes.
const (
	NoStoresMessage     = "no stores found within the requested radius"
	NothingFoundMessage = "no matching products found in nearby stores"
)

type ShoppingListRequest struct {
	Products []string
	At       domain.Coordinates
	RadiusKm int
	SortBy   string
	Limit    int
}

// AggregateShoppingList runs the full locate, fan-out, merge, rank
// pipeline for one shopping list.
//
// The store set is resolved once and fixed for the whole call. One
// search runs per product name (duplicates included), all concurrently
// against the identical depot-id set; a failed search degrades to zero
// listings for that product and never aborts the batch. Results are
// merged strictly in product-list order, then listing order, then
// depot-price order, so ranking ties resolve predictably.
func AggregateShoppingList(
	ctx context.Context,
	req ShoppingListRequest,
	locator ports.StoreLocator,
	searcher ports.ProductSearcher,
	logger *slog.Logger,
) domain.ShoppingListResult {
	defer obs.Time(ctx, "services.AggregateShoppingList")(nil)

	if logger == nil {
		logger = slog.Default()
	}

	stores, err := locator.NearbyStores(ctx, req.At, req.RadiusKm)
	if err != nil {
		logger.Warn("store lookup failed", "radius_km", req.RadiusKm, "err", err)
		return emptyResult(NoStoresMessage)
	}
	if len(stores) == 0 {
		return emptyResult(NoStoresMessage)
	}

	storeByID := make(map[string]domain.Store, len(stores))
	depotIDs := make([]string, 0, len(stores))
	for _, s := range stores {
		if _, ok := storeByID[s.ID]; ok {
			continue
		}
		storeByID[s.ID] = s
		depotIDs = append(depotIDs, s.ID)
	}

	// One search per product name. Each goroutine writes only its own
	// slot; the merge below runs single-threaded after the barrier, so
	// input order wins over completion order.
	listings := make([][]domain.ProductListing, len(req.Products))
	var wg sync.WaitGroup
	for i, name := range req.Products {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			// A panicking fetch degrades like a failed one; it must not
			// take down the batch (or the process).
			defer func() {
				if r := recover(); r != nil {
					logger.Error("product search panicked", "product", name, "panic", r)
				}
			}()

			found, err := searcher.SearchPrices(ctx, name, depotIDs)
			if err != nil {
				logger.Warn("product search failed", "product", name, "err", err)
				return
			}
			listings[i] = found
		}(i, name)
	}
	wg.Wait()

	records := make([]domain.EnrichedPriceRecord, 0)
	for _, productListings := range listings {
		for _, listing := range productListings {
			for _, entry := range listing.DepotPrices {
				store, ok := storeByID[entry.DepotID]
				if !ok {
					// Orphan price: no owning store in this call.
					logger.Warn("dropping price entry for unknown store",
						"depot_id", entry.DepotID, "product", listing.Title)
					continue
				}

				records = append(records, domain.EnrichedPriceRecord{
					ProductTitle:    listing.Title,
					ProductQuantity: listing.QuantityLabel,
					Price:           entry.Price,
					UnitPrice:       entry.UnitPriceLabel,
					MarketName:      entry.MarketName,
					DistanceKm:      store.DistanceKm(),
				})
			}
		}
	}

	ranked := RankRecords(records, req.SortBy, req.Limit)
	if len(ranked) == 0 {
		return emptyResult(NothingFoundMessage)
	}

	return domain.ShoppingListResult{Records: ranked, Count: len(ranked)}
}

// FindCheapestProduct searches one product and shapes the result for the
// single-product tool, cheapest first.
func FindCheapestProduct(
	ctx context.Context,
	productName string,
	at domain.Coordinates,
	radiusKm int,
	locator ports.StoreLocator,
	searcher ports.ProductSearcher,
	logger *slog.Logger,
) domain.ProductSearchResult {
	agg := AggregateShoppingList(ctx, ShoppingListRequest{
		Products: []string{productName},
		At:       at,
		RadiusKm: radiusKm,
		SortBy:   SortByPrice,
	}, locator, searcher, logger)

	res := domain.ProductSearchResult{
		SearchQuery: productName,
		Results:     make([]domain.ProductPrice, 0, agg.Count),
	}

	if agg.Count == 0 {
		res.ErrorMessage = agg.ErrorMessage
		return res
	}

	for _, rec := range agg.Records {
		res.Results = append(res.Results, domain.ProductPrice{
			ProductName: rec.ProductTitle,
			Price:       rec.Price,
			Market: domain.MarketInfo{
				Name:       rec.MarketName,
				DistanceKm: rec.DistanceKm,
			},
		})
	}
	res.CheapestOption = &res.Results[0]

	return res
}

func emptyResult(msg string) domain.ShoppingListResult {
	return domain.ShoppingListResult{
		Records:      []domain.EnrichedPriceRecord{},
		Count:        0,
		ErrorMessage: msg,
	}
}
