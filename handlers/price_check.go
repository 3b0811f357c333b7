package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// HandlePriceCheck fetches the current price from a supplier product URL.
func HandlePriceCheck(app *pocketbase.PocketBase, client *services.SupplierClient) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			URL string `json:"url"`
		}
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		payload.URL = strings.TrimSpace(payload.URL)
		if payload.URL == "" {
			return jsonError(e, http.StatusBadRequest, "URL required")
		}

		result, err := client.GetPriceFromURL(e.Request.Context(), payload.URL)
		if err != nil {
			log.Printf("price_check: %v", err)
			return jsonError(e, http.StatusBadRequest, "Could not fetch price")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"supplier":     result.Supplier,
			"product_name": result.ProductName,
			"price":        result.Price,
			"url":          result.URL,
			"in_stock":     result.InStock,
		})
	}
}

// HandlePriceCompare fetches prices from several product URLs concurrently
// and returns the successes sorted cheapest first.
func HandlePriceCompare(app *pocketbase.PocketBase, client *services.SupplierClient) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			URLs []string `json:"urls"`
		}
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if len(payload.URLs) == 0 {
			return jsonError(e, http.StatusBadRequest, "urls required")
		}

		results := client.ComparePrices(e.Request.Context(), payload.URLs)
		return e.JSON(http.StatusOK, results)
	}
}

// HandleSupplierSearch returns per-supplier search page URLs for a product
// name, for manual lookup.
func HandleSupplierSearch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		product := strings.TrimSpace(e.Request.URL.Query().Get("product"))
		return e.JSON(http.StatusOK, services.SearchURLs(product))
	}
}
