package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"market-price-service/internal/domain"
	"market-price-service/internal/ports"
	"market-price-service/internal/services"
)

// ToolHandler adapts MCP tool calls onto the aggregation services.
//
// Pipeline failures never cross this boundary as errors: every outcome,
// including panics and malformed arguments, is converted into the tool's
// structured result shape.
type ToolHandler struct {
	Locator  ports.StoreLocator
	Searcher ports.ProductSearcher
	Logger   *slog.Logger
}

type shoppingListArgs struct {
	ProductList []string `json:"product_list" description:"Product names to price, free text, e.g. [\"milk\", \"bread\"]. May be empty."`
	Latitude    float64  `json:"latitude" description:"Latitude of the shopper's location."`
	Longitude   float64  `json:"longitude" description:"Longitude of the shopper's location."`
	RadiusKm    int      `json:"radius_km,omitempty" description:"Search radius in kilometers. Defaults to 1."`
	Limit       int      `json:"limit,omitempty" description:"Maximum number of records to return. Zero or absent returns all."`
	SortBy      string   `json:"sort_by,omitempty" description:"Sort key: \"price\" or \"unit_price\". Defaults to \"price\"."`
}

type cheapestProductArgs struct {
	ProductName string  `json:"product_name" description:"Name of the product to search for, e.g. \"milk\"."`
	Latitude    float64 `json:"latitude" description:"Latitude of the shopper's location."`
	Longitude   float64 `json:"longitude" description:"Longitude of the shopper's location."`
	RadiusKm    int     `json:"radius_km,omitempty" description:"Search radius in kilometers. Defaults to 1."`
}

// FindShoppingListPrices handles the find_shopping_list_prices tool.
func (h *ToolHandler) FindShoppingListPrices(ctx context.Context, req *protocol.CallToolRequest) (result *protocol.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger().Error("tool panicked", "tool", "find_shopping_list_prices", "panic", r)
			result, err = textResult(domain.ShoppingListResult{
				Records:      []domain.EnrichedPriceRecord{},
				ErrorMessage: fmt.Sprintf("technical error: %v", r),
			})
		}
	}()

	var args shoppingListArgs
	if err := protocol.VerifyAndUnmarshal(req.RawArguments, &args); err != nil {
		h.logger().Warn("invalid tool arguments", "tool", "find_shopping_list_prices", "err", err)
		return textResult(domain.ShoppingListResult{
			Records:      []domain.EnrichedPriceRecord{},
			ErrorMessage: "invalid arguments: " + err.Error(),
		})
	}

	if args.RadiusKm <= 0 {
		args.RadiusKm = 1
	}
	if args.SortBy == "" {
		args.SortBy = services.SortByPrice
	}

	h.logger().Info("tool called", "tool", "find_shopping_list_prices",
		"products", len(args.ProductList), "radius_km", args.RadiusKm, "sort_by", args.SortBy)

	res := services.AggregateShoppingList(ctx, services.ShoppingListRequest{
		Products: args.ProductList,
		At:       domain.Coordinates{Lat: args.Latitude, Lon: args.Longitude},
		RadiusKm: args.RadiusKm,
		SortBy:   args.SortBy,
		Limit:    args.Limit,
	}, h.Locator, h.Searcher, h.logger())

	return textResult(res)
}

// FindCheapestProduct handles the find_cheapest_product tool.
func (h *ToolHandler) FindCheapestProduct(ctx context.Context, req *protocol.CallToolRequest) (result *protocol.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger().Error("tool panicked", "tool", "find_cheapest_product", "panic", r)
			result, err = textResult(domain.ProductSearchResult{
				Results:      []domain.ProductPrice{},
				ErrorMessage: fmt.Sprintf("technical error: %v", r),
			})
		}
	}()

	var args cheapestProductArgs
	if err := protocol.VerifyAndUnmarshal(req.RawArguments, &args); err != nil {
		h.logger().Warn("invalid tool arguments", "tool", "find_cheapest_product", "err", err)
		return textResult(domain.ProductSearchResult{
			Results:      []domain.ProductPrice{},
			ErrorMessage: "invalid arguments: " + err.Error(),
		})
	}

	if args.RadiusKm <= 0 {
		args.RadiusKm = 1
	}

	h.logger().Info("tool called", "tool", "find_cheapest_product",
		"product", args.ProductName, "radius_km", args.RadiusKm)

	res := services.FindCheapestProduct(ctx, args.ProductName,
		domain.Coordinates{Lat: args.Latitude, Lon: args.Longitude},
		args.RadiusKm, h.Locator, h.Searcher, h.logger())

	return textResult(res)
}

func (h *ToolHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func textResult(v any) (*protocol.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			&protocol.TextContent{
				Type: "text",
				Text: string(b),
			},
		},
	}, nil
}
