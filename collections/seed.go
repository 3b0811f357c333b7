package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	category string
	name     string
	unit     string
	cost     float64
}

// defaultMarkup is applied to every seeded material (1.3 = 30% markup).
const defaultMarkup = 1.3

// defaultSettings are inserted once on first startup. Keys absent from the
// settings collection fall back to these same values at read time.
var defaultSettings = map[string]string{
	"company_name":    "Your Gate Company",
	"company_address": "",
	"company_phone":   "",
	"company_email":   "",
	"company_license": "",
	"labor_rate":      "125.00",
	"tax_rate":        "0.0",
	"markup_percent":  "30",
	"quote_terms":     "Quote valid for 30 days. 50% deposit required to begin work. Balance due upon completion.",
	"quote_prefix":    "GQ",
}

// defaultMaterials is the starter price list. The estimator matches these
// entries by name substring, so the names here line up with its lookups.
var defaultMaterials = []materialDef{
	// Gates
	{"gates", "Steel Swing Gate Panel", "ft", 85},
	{"gates", "Aluminum Swing Gate Panel", "ft", 95},
	{"gates", "Wrought Iron Gate Panel", "ft", 145},
	{"gates", "Wood Gate Panel", "ft", 65},
	{"gates", "Chain Link Gate", "ft", 35},
	{"gates", "V-Track Sliding Gate Kit", "each", 850},
	{"gates", "Cantilever Gate Track System", "each", 1250},

	// Hardware
	{"hardware", "Post 6x6 Galvanized Steel", "ft", 18},
	{"hardware", "Heavy Duty Hinges", "pair", 85},
	{"hardware", "Gate Latch - Heavy Duty", "each", 45},
	{"hardware", "Concrete Mix 80lb", "bag", 8.5},
	{"hardware", "Gate Wheel Kit", "each", 65},
	{"hardware", "Drop Rod Assembly", "each", 38},

	// Operators
	{"operators", "LiftMaster LA400 Single Swing Operator", "each", 1450},
	{"operators", "Mighty Mule MM560 Dual Swing Operator", "each", 850},
	{"operators", "LiftMaster RSL12U Slide Operator", "each", 2100},

	// Access control
	{"access_control", "Wireless Keypad", "each", 125},
	{"access_control", "Remote Control (Pack of 3)", "each", 95},
	{"access_control", "Intercom System - Basic", "each", 385},
	{"access_control", "Telephone Entry System", "each", 1250},
	{"access_control", "Safety Photoeye Kit", "pair", 85},

	// Electrical
	{"electrical", "Electrical Wire 12AWG Low Voltage", "ft", 1.25},
	{"electrical", "Conduit 3/4in PVC", "ft", 2.1},
	{"electrical", "Trenching", "ft", 6},

	// Misc
	{"misc", "Existing Gate Removal & Disposal", "each", 250},
	{"misc", "Site Grading - Minor", "each", 350},
}

// Seed populates the settings and materials collections with defaults.
// It is safe to call on every startup: settings are inserted key by key only
// when missing, and the price list is skipped entirely once any material
// record exists.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedSettings(app); err != nil {
		return err
	}
	return seedMaterials(app)
}

func seedSettings(app *pocketbase.PocketBase) error {
	settingsCol, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("seed: could not find settings collection: %w", err)
	}

	existing, err := app.FindAllRecords(settingsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query settings: %w", err)
	}

	present := make(map[string]bool, len(existing))
	for _, r := range existing {
		present[r.GetString("key")] = true
	}

	for key, value := range defaultSettings {
		if present[key] {
			continue
		}
		r := core.NewRecord(settingsCol)
		r.Set("key", key)
		r.Set("value", value)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save setting %q: %w", key, err)
		}
	}
	return nil
}

func seedMaterials(app *pocketbase.PocketBase) error {
	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}

	existing, err := app.FindAllRecords(materialsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query materials: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded, never overwrite a user's price list
	}

	log.Println("seed: materials collection is empty, inserting default price list")

	for _, d := range defaultMaterials {
		r := core.NewRecord(materialsCol)
		r.Set("category", d.category)
		r.Set("name", d.name)
		r.Set("unit", d.unit)
		r.Set("cost", d.cost)
		r.Set("markup", defaultMarkup)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save material %q: %w", d.name, err)
		}
	}

	log.Printf("seed: inserted %d default materials", len(defaultMaterials))
	return nil
}
