// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCustomer creates a customer record with the given name and returns it.
func CreateTestCustomer(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		t.Fatalf("failed to find customers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("email", "customer@example.com")
	record.Set("phone", "(303) 555-0100")
	record.Set("address", "123 Test Street")
	record.Set("city", "Denver")
	record.Set("state", "CO")
	record.Set("zip_code", "80216")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test customer: %v", err)
	}

	return record
}

// CreateTestMaterial creates a price-list entry and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, category, name string, cost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category", category)
	record.Set("name", name)
	record.Set("unit", "each")
	record.Set("cost", cost)
	record.Set("markup", 1.3)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestQuote creates a quote record with sensible defaults and returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, quoteNumber, customerID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote_number", quoteNumber)
	record.Set("customer", customerID)
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
	record.Set("labor_rate", 125.0)
	record.Set("markup_percent", 30.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestQuoteItem creates a line item on a quote and returns it.
func CreateTestQuoteItem(t *testing.T, app *pocketbase.PocketBase, quoteID string, sortOrder int, description string, quantity, unitCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		t.Fatalf("failed to find quote_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", sortOrder)
	record.Set("category", "hardware")
	record.Set("description", description)
	record.Set("quantity", quantity)
	record.Set("unit", "each")
	record.Set("unit_cost", unitCost)
	record.Set("total_cost", quantity*unitCost)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote item: %v", err)
	}

	return record
}

// CreateTestSetting upserts a settings key for tests.
func CreateTestSetting(t *testing.T, app *pocketbase.PocketBase, key, value string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		t.Fatalf("failed to find settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("key", key)
	record.Set("value", value)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test setting: %v", err)
	}

	return record
}
