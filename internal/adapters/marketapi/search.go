package marketapi

import (
	"context"
	"fmt"

	"market-price-service/internal/domain"
	"market-price-service/internal/platform/obs"
)

type searchRequest struct {
	Keywords string   `json:"keywords"`
	Depots   []string `json:"depots"`
	Size     int      `json:"size"`
}

type searchResponse struct {
	Content []searchItem `json:"content"`
}

type searchItem struct {
	Title                string      `json:"title"`
	RefinedQuantityUnit  string      `json:"refinedQuantityUnit"`
	ProductDepotInfoList []depotInfo `json:"productDepotInfoList"`
}

type depotInfo struct {
	DepotID   string  `json:"depotId"`
	Price     float64 `json:"price"`
	UnitPrice string  `json:"unitPrice"`
	MarketAdi string  `json:"marketAdi"`
}

// SearchPrices returns all listings matching the keywords across the
// given depots, in upstream order. Depot entries without an id or with
// a non-positive price are dropped at the boundary.
func (c *Client) SearchPrices(ctx context.Context, keywords string, depotIDs []string) (_ []domain.ProductListing, err error) {
	defer obs.Time(ctx, "marketapi.SearchPrices")(&err)

	payload := searchRequest{
		Keywords: keywords,
		Depots:   depotIDs,
		Size:     c.pageSize,
	}

	var decoded searchResponse
	if err := c.postJSON(ctx, c.searchURL, payload, &decoded); err != nil {
		return nil, fmt.Errorf("price search %q: %w", keywords, err)
	}

	listings := make([]domain.ProductListing, 0, len(decoded.Content))
	for _, item := range decoded.Content {
		prices := make([]domain.PriceEntry, 0, len(item.ProductDepotInfoList))
		for _, d := range item.ProductDepotInfoList {
			if d.DepotID == "" || d.Price <= 0 {
				c.log.Warn("dropping invalid depot price",
					"product", item.Title, "depot_id", d.DepotID, "price", d.Price)
				continue
			}

			prices = append(prices, domain.PriceEntry{
				DepotID:        d.DepotID,
				Price:          d.Price,
				UnitPriceLabel: d.UnitPrice,
				MarketName:     d.MarketAdi,
			})
		}

		listings = append(listings, domain.ProductListing{
			Title:         item.Title,
			QuantityLabel: item.RefinedQuantityUnit,
			DepotPrices:   prices,
		})
	}

	return listings, nil
}
