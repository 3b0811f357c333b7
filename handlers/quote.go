package handlers

import (
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// quoteItemPayload is one line item in a quote create/update body.
type quoteItemPayload struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unit_cost"`
}

// quotePayload is the JSON body for quote create/update. Pointer fields
// distinguish "absent" from zero so partial updates work.
type quotePayload struct {
	CustomerID    *string             `json:"customer_id"`
	GateType      *string             `json:"gate_type"`
	GateStyle     *string             `json:"gate_style"`
	Width         *float64            `json:"width"`
	Height        *float64            `json:"height"`
	Material      *string             `json:"material"`
	Automation    *string             `json:"automation"`
	AccessControl *string             `json:"access_control"`
	GroundType    *string             `json:"ground_type"`
	Slope         *string             `json:"slope"`
	PowerDistance *float64            `json:"power_distance"`
	RemovalNeeded *bool               `json:"removal_needed"`
	LaborHours    *float64            `json:"labor_hours"`
	LaborRate     *float64            `json:"labor_rate"`
	Notes         *string             `json:"notes"`
	Status        *string             `json:"status"`
	Items         *[]quoteItemPayload `json:"items"`
}

func (p quotePayload) apply(r *core.Record) {
	setStr := func(field string, v *string) {
		if v != nil {
			r.Set(field, strings.TrimSpace(*v))
		}
	}
	setNum := func(field string, v *float64) {
		if v != nil {
			r.Set(field, *v)
		}
	}
	setStr("customer", p.CustomerID)
	setStr("gate_type", p.GateType)
	setStr("gate_style", p.GateStyle)
	setNum("width", p.Width)
	setNum("height", p.Height)
	setStr("material", p.Material)
	setStr("automation", p.Automation)
	setStr("access_control", p.AccessControl)
	setStr("ground_type", p.GroundType)
	setStr("slope", p.Slope)
	setNum("power_distance", p.PowerDistance)
	if p.RemovalNeeded != nil {
		r.Set("removal_needed", *p.RemovalNeeded)
	}
	setNum("labor_hours", p.LaborHours)
	setNum("labor_rate", p.LaborRate)
	setStr("notes", p.Notes)
	setStr("status", p.Status)
}

func (p quotePayload) validate() (string, bool) {
	checkEnum := func(v *string, options []string) bool {
		return v == nil || slices.Contains(options, *v)
	}
	switch {
	case p.Width != nil && *p.Width <= 0:
		return "width must be positive", false
	case p.Height != nil && *p.Height <= 0:
		return "height must be positive", false
	case p.PowerDistance != nil && *p.PowerDistance < 0:
		return "power_distance must not be negative", false
	case p.LaborHours != nil && *p.LaborHours < 0:
		return "labor_hours must not be negative", false
	case p.LaborRate != nil && *p.LaborRate < 0:
		return "labor_rate must not be negative", false
	case !checkEnum(p.GateType, services.GateTypeOptions):
		return "unknown gate_type", false
	case !checkEnum(p.GateStyle, services.GateStyleOptions):
		return "unknown gate_style", false
	case !checkEnum(p.Material, services.MaterialOptions):
		return "unknown material", false
	case !checkEnum(p.Automation, services.AutomationOptions):
		return "unknown automation", false
	case !checkEnum(p.AccessControl, services.AccessControlOptions):
		return "unknown access_control", false
	case !checkEnum(p.GroundType, services.GroundTypeOptions):
		return "unknown ground_type", false
	case !checkEnum(p.Slope, services.SlopeOptions):
		return "unknown slope", false
	case !checkEnum(p.Status, services.QuoteStatusOptions):
		return "unknown status", false
	}
	return "", true
}

// lineItems converts the items payload to service line items.
func lineItems(items []quoteItemPayload) []services.LineItem {
	out := make([]services.LineItem, 0, len(items))
	for _, it := range items {
		unit := it.Unit
		if unit == "" {
			unit = "each"
		}
		quantity := it.Quantity
		if quantity == 0 {
			quantity = 1
		}
		out = append(out, services.LineItem{
			Category:    it.Category,
			Description: it.Description,
			Quantity:    quantity,
			Unit:        unit,
			UnitCost:    it.UnitCost,
		})
	}
	return out
}

// saveQuoteTotals recomputes and stores the aggregate pricing fields on a
// quote record from its current items and rates.
func saveQuoteTotals(r *core.Record, items []services.LineItem) error {
	_, totals, err := services.CalcQuoteTotals(
		items,
		r.GetFloat("markup_percent"),
		r.GetFloat("labor_hours"),
		r.GetFloat("labor_rate"),
		r.GetFloat("tax_rate"),
	)
	if err != nil {
		return err
	}

	r.Set("materials_cost", totals.MaterialsSubtotal)
	r.Set("subtotal", totals.Subtotal)
	r.Set("tax_amount", totals.TaxAmount)
	r.Set("total", totals.Total)
	return nil
}

// replaceQuoteItems deletes a quote's items and inserts the given ones.
func replaceQuoteItems(txApp core.App, quoteID string, items []services.LineItem) error {
	existing, err := txApp.FindRecordsByFilter(
		"quote_items",
		"quote = {:quoteId}",
		"",
		0,
		0,
		map[string]any{"quoteId": quoteID},
	)
	if err == nil {
		for _, r := range existing {
			if err := txApp.Delete(r); err != nil {
				return err
			}
		}
	}

	col, err := txApp.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return err
	}
	for i, it := range items {
		r := core.NewRecord(col)
		r.Set("quote", quoteID)
		r.Set("sort_order", i)
		r.Set("category", it.Category)
		r.Set("description", it.Description)
		r.Set("quantity", it.Quantity)
		r.Set("unit", it.Unit)
		r.Set("unit_cost", it.UnitCost)
		r.Set("total_cost", services.ItemTotal(it.Quantity, it.UnitCost))
		if err := txApp.Save(r); err != nil {
			return err
		}
	}
	return nil
}

// HandleQuoteList returns quote summaries, optionally filtered by status.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		status := strings.TrimSpace(e.Request.URL.Query().Get("status"))

		var records []*core.Record
		var err error
		if status != "" {
			records, err = app.FindRecordsByFilter(
				"quotes",
				"status = {:status}",
				"-created",
				0,
				0,
				map[string]any{"status": status},
			)
		} else {
			records, err = app.FindRecordsByFilter("quotes", "id != ''", "-created", 0, 0)
		}
		if err != nil {
			log.Printf("quote_list: could not fetch quotes: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			customerName := "No customer"
			if customerID := r.GetString("customer"); customerID != "" {
				if c, err := app.FindRecordById("customers", customerID); err == nil {
					customerName = c.GetString("name")
				}
			}
			out = append(out, map[string]any{
				"id":            r.Id,
				"quote_number":  r.GetString("quote_number"),
				"customer_name": customerName,
				"gate_type":     r.GetString("gate_type"),
				"width":         r.GetFloat("width"),
				"height":        r.GetFloat("height"),
				"total":         r.GetFloat("total"),
				"status":        r.GetString("status"),
				"created_at":    r.GetString("created"),
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleQuoteView returns one quote with its customer and line items.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		r, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Quote not found")
		}

		var customer map[string]any
		if customerID := r.GetString("customer"); customerID != "" {
			if c, err := app.FindRecordById("customers", customerID); err == nil {
				customer = customerResponse(c)
			}
		}

		itemRecords, err := app.FindRecordsByFilter(
			"quote_items",
			"quote = {:quoteId}",
			"sort_order",
			0,
			0,
			map[string]any{"quoteId": r.Id},
		)
		if err != nil {
			itemRecords = nil
		}
		items := make([]map[string]any, 0, len(itemRecords))
		for _, it := range itemRecords {
			items = append(items, map[string]any{
				"id":          it.Id,
				"category":    it.GetString("category"),
				"description": it.GetString("description"),
				"quantity":    it.GetFloat("quantity"),
				"unit":        it.GetString("unit"),
				"unit_cost":   it.GetFloat("unit_cost"),
				"total_cost":  it.GetFloat("total_cost"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":             r.Id,
			"quote_number":   r.GetString("quote_number"),
			"customer_id":    r.GetString("customer"),
			"customer":       customer,
			"gate_type":      r.GetString("gate_type"),
			"gate_style":     r.GetString("gate_style"),
			"width":          r.GetFloat("width"),
			"height":         r.GetFloat("height"),
			"material":       r.GetString("material"),
			"automation":     r.GetString("automation"),
			"access_control": r.GetString("access_control"),
			"ground_type":    r.GetString("ground_type"),
			"slope":          r.GetString("slope"),
			"power_distance": r.GetFloat("power_distance"),
			"removal_needed": r.GetBool("removal_needed"),
			"labor_hours":    r.GetFloat("labor_hours"),
			"labor_rate":     r.GetFloat("labor_rate"),
			"materials_cost": r.GetFloat("materials_cost"),
			"markup_percent": r.GetFloat("markup_percent"),
			"tax_rate":       r.GetFloat("tax_rate"),
			"subtotal":       r.GetFloat("subtotal"),
			"tax_amount":     r.GetFloat("tax_amount"),
			"total":          r.GetFloat("total"),
			"status":         r.GetString("status"),
			"notes":          r.GetString("notes"),
			"items":          items,
		})
	}
}

// HandleQuoteCreate creates a quote with a freshly drawn quote number.
// Number generation, the quote insert and its items run in one transaction
// so concurrent creates never share a number.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload quotePayload
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if msg, ok := payload.validate(); !ok {
			return jsonError(e, http.StatusBadRequest, msg)
		}

		var items []services.LineItem
		if payload.Items != nil {
			items = lineItems(*payload.Items)
		}

		var quoteID, quoteNumber string
		err := app.RunInTransaction(func(txApp core.App) error {
			col, err := txApp.FindCollectionByNameOrId("quotes")
			if err != nil {
				return err
			}

			prefix := services.GetSetting(txApp, "quote_prefix", "GQ")
			number, err := services.GenerateQuoteNumber(txApp, prefix, time.Now())
			if err != nil {
				return err
			}

			record := core.NewRecord(col)
			record.Set("quote_number", number)
			record.Set("gate_type", "swing")
			record.Set("gate_style", "standard")
			record.Set("width", 12.0)
			record.Set("height", 6.0)
			record.Set("material", "steel")
			record.Set("automation", "none")
			record.Set("access_control", "none")
			record.Set("ground_type", "concrete")
			record.Set("slope", "flat")
			record.Set("status", "draft")
			record.Set("labor_rate", services.GetSettingFloat(txApp, "labor_rate", 125))
			record.Set("markup_percent", services.GetSettingFloat(txApp, "markup_percent", 30))
			record.Set("tax_rate", services.GetSettingFloat(txApp, "tax_rate", 0))
			payload.apply(record)

			if err := saveQuoteTotals(record, items); err != nil {
				return err
			}
			if err := txApp.Save(record); err != nil {
				return err
			}
			if err := replaceQuoteItems(txApp, record.Id, items); err != nil {
				return err
			}

			quoteID = record.Id
			quoteNumber = number
			return nil
		})
		if err != nil {
			log.Printf("quote_create: could not create quote: %v", err)
			return serviceError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":           quoteID,
			"quote_number": quoteNumber,
		})
	}
}

// HandleQuoteUpdate applies a partial update to a quote and recomputes its
// totals. When items are present in the body they replace the stored ones.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Quote not found")
		}

		var payload quotePayload
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if msg, ok := payload.validate(); !ok {
			return jsonError(e, http.StatusBadRequest, msg)
		}
		payload.apply(record)

		err = app.RunInTransaction(func(txApp core.App) error {
			var items []services.LineItem
			if payload.Items != nil {
				items = lineItems(*payload.Items)
				if err := replaceQuoteItems(txApp, record.Id, items); err != nil {
					return err
				}
			} else {
				existing, err := txApp.FindRecordsByFilter(
					"quote_items",
					"quote = {:quoteId}",
					"sort_order",
					0,
					0,
					map[string]any{"quoteId": record.Id},
				)
				if err == nil {
					for _, it := range existing {
						items = append(items, services.LineItem{
							Category:    it.GetString("category"),
							Description: it.GetString("description"),
							Quantity:    it.GetFloat("quantity"),
							Unit:        it.GetString("unit"),
							UnitCost:    it.GetFloat("unit_cost"),
						})
					}
				}
			}

			if err := saveQuoteTotals(record, items); err != nil {
				return err
			}
			return txApp.Save(record)
		})
		if err != nil {
			log.Printf("quote_update: could not save quote: %v", err)
			return serviceError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}

// HandleQuoteDelete removes a quote. Its items cascade with the relation.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err == nil {
			if err := app.Delete(record); err != nil {
				log.Printf("quote_delete: could not delete quote: %v", err)
				return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}
		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}

// HandleQuoteStatus updates just the status field.
func HandleQuoteStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Quote not found")
		}

		var payload struct {
			Status string `json:"status"`
		}
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if !slices.Contains(services.QuoteStatusOptions, payload.Status) {
			return jsonError(e, http.StatusBadRequest, "unknown status")
		}

		record.Set("status", payload.Status)
		if err := app.Save(record); err != nil {
			log.Printf("quote_status: could not save quote: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}
