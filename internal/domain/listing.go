package domain

// PriceEntry is one product's price at one store, as returned by the
// price-search API. DepotID references a Store.ID from the same
// aggregation call.
type PriceEntry struct {
	DepotID        string
	Price          float64
	UnitPriceLabel string
	MarketName     string
}

// ProductListing is one distinct product match with its per-store prices,
// in upstream order.
type ProductListing struct {
	Title         string
	QuantityLabel string
	DepotPrices   []PriceEntry
}
