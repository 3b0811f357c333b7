package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// HandleMaterialList returns the price list, optionally filtered by
// category or a search term matched against name and supplier.
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()
		category := strings.TrimSpace(q.Get("category"))
		search := strings.TrimSpace(q.Get("search"))

		var records []*core.Record
		var err error
		switch {
		case category != "":
			records, err = app.FindRecordsByFilter(
				"materials",
				"category = {:category}",
				"name",
				0,
				0,
				map[string]any{"category": category},
			)
		case search != "":
			records, err = app.FindRecordsByFilter(
				"materials",
				"name ~ {:term} || supplier ~ {:term}",
				"category,name",
				0,
				0,
				map[string]any{"term": "%" + search + "%"},
			)
		default:
			records, err = app.FindRecordsByFilter("materials", "id != ''", "category,name", 0, 0)
		}
		if err != nil {
			log.Printf("material_list: could not fetch materials: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]services.Material, 0, len(records))
		for _, r := range records {
			out = append(out, services.MaterialFromRecord(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleMaterialCategories returns the distinct categories present in the
// price list.
func HandleMaterialCategories(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("materials", "id != ''", "category", 0, 0)
		if err != nil {
			log.Printf("material_categories: could not fetch materials: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		seen := map[string]bool{}
		var categories []string
		for _, r := range records {
			c := r.GetString("category")
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			categories = append(categories, c)
		}
		return e.JSON(http.StatusOK, categories)
	}
}

// materialPayload is the JSON body for material create/update.
type materialPayload struct {
	Category    *string  `json:"category"`
	Name        *string  `json:"name"`
	Unit        *string  `json:"unit"`
	Cost        *float64 `json:"cost"`
	Markup      *float64 `json:"markup"`
	Supplier    *string  `json:"supplier"`
	SupplierURL *string  `json:"supplier_url"`
}

func (p materialPayload) apply(r *core.Record) {
	if p.Category != nil {
		r.Set("category", strings.TrimSpace(*p.Category))
	}
	if p.Name != nil {
		r.Set("name", strings.TrimSpace(*p.Name))
	}
	if p.Unit != nil {
		r.Set("unit", strings.TrimSpace(*p.Unit))
	}
	if p.Cost != nil {
		r.Set("cost", *p.Cost)
	}
	if p.Markup != nil {
		r.Set("markup", *p.Markup)
	}
	if p.Supplier != nil {
		r.Set("supplier", strings.TrimSpace(*p.Supplier))
	}
	if p.SupplierURL != nil {
		r.Set("supplier_url", strings.TrimSpace(*p.SupplierURL))
	}
}

func (p materialPayload) validate() (string, bool) {
	if p.Cost != nil && *p.Cost < 0 {
		return "cost must not be negative", false
	}
	if p.Markup != nil && *p.Markup < 1 {
		return "markup must be at least 1", false
	}
	return "", true
}

// HandleMaterialCreate adds a price-list entry.
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload materialPayload
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
			return jsonError(e, http.StatusBadRequest, "name is required")
		}
		if msg, ok := payload.validate(); !ok {
			return jsonError(e, http.StatusBadRequest, msg)
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("material_create: could not find materials collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("category", "misc")
		record.Set("unit", "each")
		record.Set("markup", 1.3)
		payload.apply(record)

		if err := app.Save(record); err != nil {
			log.Printf("material_create: could not save material: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": record.Id})
	}
}

// HandleMaterialUpdate applies a partial update to a price-list entry.
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("materials", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Material not found")
		}

		var payload materialPayload
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
			return jsonError(e, http.StatusBadRequest, "name must not be empty")
		}
		if msg, ok := payload.validate(); !ok {
			return jsonError(e, http.StatusBadRequest, msg)
		}
		payload.apply(record)

		if err := app.Save(record); err != nil {
			log.Printf("material_update: could not save material: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}

// HandleMaterialDelete removes a price-list entry.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("materials", e.Request.PathValue("id"))
		if err == nil {
			if err := app.Delete(record); err != nil {
				log.Printf("material_delete: could not delete material: %v", err)
				return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}
		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}
