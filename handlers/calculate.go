package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// HandleCalculate runs the estimator for a gate configuration without
// persisting anything: suggested materials from the price list, labor hours
// from the sizing rules, totals from the configured rates.
func HandleCalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload quotePayload
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if msg, ok := payload.validate(); !ok {
			return jsonError(e, http.StatusBadRequest, msg)
		}

		params := services.GateParams{
			GateType:      "swing",
			GateStyle:     "standard",
			Width:         12,
			Height:        6,
			Material:      "steel",
			Automation:    "none",
			AccessControl: "none",
			GroundType:    "concrete",
			Slope:         "flat",
		}
		if payload.GateType != nil {
			params.GateType = *payload.GateType
		}
		if payload.GateStyle != nil {
			params.GateStyle = *payload.GateStyle
		}
		if payload.Width != nil {
			params.Width = *payload.Width
		}
		if payload.Height != nil {
			params.Height = *payload.Height
		}
		if payload.Material != nil {
			params.Material = *payload.Material
		}
		if payload.Automation != nil {
			params.Automation = *payload.Automation
		}
		if payload.AccessControl != nil {
			params.AccessControl = *payload.AccessControl
		}
		if payload.GroundType != nil {
			params.GroundType = *payload.GroundType
		}
		if payload.Slope != nil {
			params.Slope = *payload.Slope
		}
		if payload.PowerDistance != nil {
			params.PowerDistance = *payload.PowerDistance
		}
		if payload.RemovalNeeded != nil {
			params.RemovalNeeded = *payload.RemovalNeeded
		}

		catalog, err := services.LoadCatalog(app)
		if err != nil {
			log.Printf("calculate: could not load catalog: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items, laborHours, err := services.Estimate(params, catalog)
		if err != nil {
			return serviceError(e, err)
		}

		laborRate := services.GetSettingFloat(app, "labor_rate", 125)
		markupPercent := services.GetSettingFloat(app, "markup_percent", 30)
		taxRate := services.GetSettingFloat(app, "tax_rate", 0)

		priced, totals, err := services.CalcQuoteTotals(items, markupPercent, laborHours, laborRate, taxRate)
		if err != nil {
			return serviceError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"labor_hours":    laborHours,
			"labor_rate":     laborRate,
			"materials_cost": totals.MaterialsSubtotal,
			"markup_percent": markupPercent,
			"subtotal":       totals.Subtotal,
			"tax_amount":     totals.TaxAmount,
			"total":          totals.Total,
			"items":          priced,
		})
	}
}
