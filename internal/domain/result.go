package domain

// EnrichedPriceRecord merges one price entry with its resolved store.
// This is the atomic unit carried through ranking and output.
type EnrichedPriceRecord struct {
	ProductTitle    string  `json:"product_title"`
	ProductQuantity string  `json:"product_quantity,omitempty"`
	Price           float64 `json:"price"`
	UnitPrice       string  `json:"unit_price,omitempty"`
	MarketName      string  `json:"market_name"`
	DistanceKm      float64 `json:"distance_km"`
}

// ShoppingListResult is the terminal output of one shopping-list
// aggregation call. All failure modes except authentication are
// representable here; callers never see a raw error.
type ShoppingListResult struct {
	Records      []EnrichedPriceRecord `json:"records"`
	Count        int                   `json:"count"`
	ErrorMessage string                `json:"error_message,omitempty"`
}

// MarketInfo describes the store holding a price.
type MarketInfo struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
}

// ProductPrice is one store's price for a searched product.
type ProductPrice struct {
	ProductName string     `json:"product_name"`
	Price       float64    `json:"price"`
	Market      MarketInfo `json:"market"`
}

// ProductSearchResult is the return shape of the single-product search
// tool, results ordered cheapest first.
type ProductSearchResult struct {
	SearchQuery    string         `json:"search_query"`
	Results        []ProductPrice `json:"results"`
	CheapestOption *ProductPrice  `json:"cheapest_option,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
}
