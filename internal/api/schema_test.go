package api

import "github.com/ThinkInAIXYZ/go-mcp/protocol"

// protocol.VerifyAndUnmarshal only accepts argument structs whose schemas
// were generated via protocol.NewTool. Production does this in
// Server.registerTools; mirror it here so handlers are callable in tests.
func init() {
	if _, err := protocol.NewTool("find_shopping_list_prices", "test schema registration", shoppingListArgs{}); err != nil {
		panic(err)
	}
	if _, err := protocol.NewTool("find_cheapest_product", "test schema registration", cheapestProductArgs{}); err != nil {
		panic(err)
	}
}
