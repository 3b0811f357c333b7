package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// Material is one price-list entry, detached from its database record so the
// estimator and exports stay pure.
type Material struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	Cost        float64 `json:"cost"`
	Markup      float64 `json:"markup"`
	Supplier    string  `json:"supplier"`
	SupplierURL string  `json:"supplier_url"`
	LastUpdated string  `json:"last_updated"`
}

// MaterialFromRecord maps a materials record to a Material.
func MaterialFromRecord(r *core.Record) Material {
	return Material{
		ID:          r.Id,
		Category:    r.GetString("category"),
		Name:        r.GetString("name"),
		Unit:        r.GetString("unit"),
		Cost:        r.GetFloat("cost"),
		Markup:      r.GetFloat("markup"),
		Supplier:    r.GetString("supplier"),
		SupplierURL: r.GetString("supplier_url"),
		LastUpdated: r.GetString("last_updated"),
	}
}

// LoadCatalog reads the full price list ordered by category then name. The
// ordering makes estimator lookups deterministic.
func LoadCatalog(app core.App) ([]Material, error) {
	records, err := app.FindRecordsByFilter("materials", "id != ''", "category,name", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	catalog := make([]Material, 0, len(records))
	for _, r := range records {
		catalog = append(catalog, MaterialFromRecord(r))
	}
	return catalog, nil
}
