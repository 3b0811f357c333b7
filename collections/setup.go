package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the customers, materials, quotes,
// quote_items and settings collections exist.
func Setup(app *pocketbase.PocketBase) {
	customers := ensureCollection(app, "customers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.TextField{Name: "state", Required: false})
		c.Fields.Add(&core.TextField{Name: "zip_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "markup", Required: false})
		c.Fields.Add(&core.TextField{Name: "supplier", Required: false})
		c.Fields.Add(&core.URLField{Name: "supplier_url", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "last_updated", OnCreate: true, OnUpdate: true})
	})

	quotes := ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "customer",
			Required:     false,
			CollectionId: customers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "gate_type",
			Required:  true,
			Values:    []string{"swing", "sliding", "cantilever", "bi-fold", "pedestrian"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "gate_style",
			Required:  false,
			Values:    []string{"basic", "standard", "ornamental", "custom"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "width", Required: true})
		c.Fields.Add(&core.NumberField{Name: "height", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "material",
			Required:  false,
			Values:    []string{"steel", "aluminum", "wrought_iron", "wood", "chain_link"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "automation",
			Required:  false,
			Values:    []string{"none", "single_swing", "dual_swing", "slide"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "access_control",
			Required:  false,
			Values:    []string{"none", "keypad", "remote", "intercom", "full_system"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "ground_type",
			Required:  false,
			Values:    []string{"concrete", "asphalt", "gravel", "dirt"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "slope",
			Required:  false,
			Values:    []string{"flat", "slight", "moderate", "steep"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "power_distance", Required: false})
		c.Fields.Add(&core.BoolField{Name: "removal_needed", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_hours", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "materials_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "markup_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "subtotal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "sent", "accepted", "declined"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quote_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
	})

	ensureCollection(app, "settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "value", Required: false})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
