// Package services holds the business logic for gate quote estimation:
// labor-hour rules, material suggestions, pricing aggregation, quote
// numbering, exports and the supplier price lookup.
package services

import (
	"fmt"
	"math"
	"strings"
)

// GateParams describes one gate installation job. It is the full input to
// the estimator; all fields come validated from the request boundary.
type GateParams struct {
	GateType      string  `json:"gate_type"`      // swing, sliding, cantilever, bi-fold, pedestrian
	GateStyle     string  `json:"gate_style"`     // basic, standard, ornamental, custom
	Width         float64 `json:"width"`          // feet
	Height        float64 `json:"height"`         // feet
	Material      string  `json:"material"`       // steel, aluminum, wrought_iron, wood, chain_link
	Automation    string  `json:"automation"`     // none, single_swing, dual_swing, slide
	AccessControl string  `json:"access_control"` // none, keypad, remote, intercom, full_system
	GroundType    string  `json:"ground_type"`    // concrete, asphalt, gravel, dirt
	Slope         string  `json:"slope"`          // flat, slight, moderate, steep
	PowerDistance float64 `json:"power_distance"` // feet from power source
	RemovalNeeded bool    `json:"removal_needed"`
}

// CatalogMissError reports that a required price-list entry is missing for
// the requested material. It is never raised for optional add-ons; those are
// simply skipped when the catalog has no match.
type CatalogMissError struct {
	Category string
	Term     string
}

func (e *CatalogMissError) Error() string {
	return fmt.Sprintf("no %s entry in the price list matches %q", e.Category, e.Term)
}

// ── Labor-hour constants ─────────────────────────────────────────────────

// Base installation hours by gate type.
var gateTypeHours = map[string]float64{
	"swing":      4.0,
	"sliding":    6.0,
	"cantilever": 8.0,
	"bi-fold":    6.0,
	"pedestrian": 2.0,
}

// Additional hours per foot of width over the 10 ft base.
const widthFactor = 0.25

// Height multipliers by bracket (feet).
const (
	heightMultUnder5 = 0.8
	heightMult5To7   = 1.0
	heightMult7To10  = 1.3
	heightMultOver10 = 1.6
)

var materialFactor = map[string]float64{
	"chain_link":   0.7,
	"wood":         0.9,
	"steel":        1.0,
	"aluminum":     1.0,
	"wrought_iron": 1.4,
}

var styleFactor = map[string]float64{
	"basic":      0.8,
	"standard":   1.0,
	"ornamental": 1.5,
	"custom":     2.0,
}

var automationHours = map[string]float64{
	"none":         0.0,
	"single_swing": 3.0,
	"dual_swing":   5.0,
	"slide":        4.0,
}

var accessControlHours = map[string]float64{
	"none":        0.0,
	"keypad":      1.0,
	"remote":      0.5,
	"intercom":    2.0,
	"full_system": 4.0,
}

var groundFactor = map[string]float64{
	"concrete": 1.0,
	"asphalt":  1.1,
	"gravel":   1.2,
	"dirt":     1.3,
}

var slopeFactor = map[string]float64{
	"flat":     1.0,
	"slight":   1.1,
	"moderate": 1.3,
	"steep":    1.6,
}

// Hours per foot of electrical run from the power source.
const electricalHoursPerFoot = 0.1

// Flat hours for removing an existing gate.
const removalHours = 2.0

// factorOrDefault looks up a multiplier, falling back to 1.0 for values not
// in the table so an unexpected enum never zeroes out an estimate.
func factorOrDefault(table map[string]float64, key string) float64 {
	if f, ok := table[key]; ok {
		return f
	}
	return 1.0
}

// EstimateLaborHours computes the labor-hours estimate for a gate job. Gate
// installation hours are the base hours for the gate type (plus a width
// surcharge over 10 ft) scaled by height, material, style, ground and slope
// multipliers; automation, access control, electrical run and removal hours
// are added on top. The result is rounded to the nearest quarter hour.
func EstimateLaborHours(p GateParams) float64 {
	base, ok := gateTypeHours[p.GateType]
	if !ok {
		base = gateTypeHours["swing"]
	}
	if p.Width > 10 {
		base += (p.Width - 10) * widthFactor
	}

	var heightMult float64
	switch {
	case p.Height < 5:
		heightMult = heightMultUnder5
	case p.Height <= 7:
		heightMult = heightMult5To7
	case p.Height <= 10:
		heightMult = heightMult7To10
	default:
		heightMult = heightMultOver10
	}

	gateHours := base *
		heightMult *
		factorOrDefault(materialFactor, p.Material) *
		factorOrDefault(styleFactor, p.GateStyle) *
		factorOrDefault(groundFactor, p.GroundType) *
		factorOrDefault(slopeFactor, p.Slope)

	total := gateHours + automationHours[p.Automation] + accessControlHours[p.AccessControl]
	if p.Automation != "none" && p.Automation != "" {
		total += p.PowerDistance * electricalHoursPerFoot
	}
	if p.RemovalNeeded {
		total += removalHours
	}

	// Nearest quarter hour.
	return math.Round(total*4) / 4
}

// ── Material suggestions ─────────────────────────────────────────────────

// gatePanelTerms maps a gate material to the price-list entry that supplies
// its panel. The panel is the one required catalog entry: a missing match
// fails the whole estimate instead of producing a zero-cost gate.
var gatePanelTerms = map[string]string{
	"steel":        "steel swing gate panel",
	"aluminum":     "aluminum swing gate panel",
	"wrought_iron": "wrought iron gate panel",
	"wood":         "wood gate panel",
	"chain_link":   "chain link gate",
}

// operatorTerms maps an automation selection to its operator entry.
var operatorTerms = map[string]string{
	"single_swing": "liftmaster la400",
	"dual_swing":   "mighty mule mm560",
	"slide":        "liftmaster rsl12u",
}

// accessControlTerms maps an access-control selection to its device entry.
var accessControlTerms = map[string]string{
	"keypad":      "wireless keypad",
	"remote":      "remote control (pack of 3)",
	"intercom":    "intercom system - basic",
	"full_system": "telephone entry system",
}

// Concrete bags poured per post hole.
const bagsPerPost = 4

// Posts are buried 2 ft below grade, so a post runs height+2 ft.
const postBuriedDepth = 2.0

// postCount returns how many posts a gate type needs. Slide-style gates get
// a third post for the receiver/guide.
func postCount(gateType string) float64 {
	if gateType == "sliding" || gateType == "cantilever" {
		return 3
	}
	return 2
}

// findMaterial returns the first catalog entry whose name contains term,
// case-insensitively. The catalog ordering (category, name) makes the match
// deterministic.
func findMaterial(catalog []Material, term string) (Material, bool) {
	term = strings.ToLower(term)
	for _, m := range catalog {
		if strings.Contains(strings.ToLower(m.Name), term) {
			return m, true
		}
	}
	return Material{}, false
}

// SuggestMaterials derives the suggested line items for a gate job from the
// current price list. Pure: it reads only its arguments. The gate panel is
// required and a miss returns *CatalogMissError; every other add-on silently
// skips when the catalog has no matching entry.
func SuggestMaterials(p GateParams, catalog []Material) ([]LineItem, error) {
	var items []LineItem

	add := func(category, description string, quantity float64, unit string, unitCost float64) {
		items = append(items, LineItem{
			Category:    category,
			Description: description,
			Quantity:    quantity,
			Unit:        unit,
			UnitCost:    unitCost,
			TotalCost:   ItemTotal(quantity, unitCost),
		})
	}

	// Gate panel, priced per linear foot of width.
	panelTerm, ok := gatePanelTerms[p.Material]
	if !ok {
		return nil, &CatalogMissError{Category: "gates", Term: p.Material}
	}
	panel, ok := findMaterial(catalog, panelTerm)
	if !ok {
		return nil, &CatalogMissError{Category: "gates", Term: panelTerm}
	}
	add("gates", panel.Name, p.Width, panel.Unit, panel.Cost)

	// Posts: buried 2 ft, so each runs height+2 ft.
	posts := postCount(p.GateType)
	if post, ok := findMaterial(catalog, "post 6x6"); ok {
		postLength := p.Height + postBuriedDepth
		add("hardware", fmt.Sprintf("%s x %.0f posts", post.Name, posts), postLength*posts, "ft", post.Cost)
	}

	// Hinges for hinged gate types.
	if p.GateType == "swing" || p.GateType == "bi-fold" {
		if hinges, ok := findMaterial(catalog, "heavy duty hinges"); ok {
			pairs := 2.0
			if p.GateType == "bi-fold" {
				pairs = 4
			}
			add("hardware", hinges.Name, pairs, "pair", hinges.Cost)
		}
	}

	// Track system for slide-style gates.
	switch p.GateType {
	case "cantilever":
		if track, ok := findMaterial(catalog, "cantilever"); ok {
			add("gates", track.Name, 1, "each", track.Cost)
		}
	case "sliding":
		if track, ok := findMaterial(catalog, "v-track"); ok {
			add("gates", track.Name, 1, "each", track.Cost)
		}
	}

	if latch, ok := findMaterial(catalog, "gate latch - heavy duty"); ok {
		add("hardware", latch.Name, 1, "each", latch.Cost)
	}

	if p.Automation != "none" && p.Automation != "" {
		if op, ok := findMaterial(catalog, operatorTerms[p.Automation]); ok {
			add("operators", op.Name, 1, "each", op.Cost)
		}
		// Automated gates always get safety photoeyes.
		if eyes, ok := findMaterial(catalog, "safety photoeye"); ok {
			add("access_control", eyes.Name, 1, "pair", eyes.Cost)
		}
	}

	if p.AccessControl != "none" && p.AccessControl != "" {
		if dev, ok := findMaterial(catalog, accessControlTerms[p.AccessControl]); ok {
			add("access_control", dev.Name, 1, "each", dev.Cost)
		}
	}

	// Electrical run out to the operator.
	if p.Automation != "none" && p.Automation != "" && p.PowerDistance > 0 {
		if wire, ok := findMaterial(catalog, "electrical wire"); ok {
			add("electrical", wire.Name, p.PowerDistance, "ft", wire.Cost)
		}
		if conduit, ok := findMaterial(catalog, "conduit"); ok {
			add("electrical", conduit.Name, p.PowerDistance, "ft", conduit.Cost)
		}
	}

	// Concrete for the post holes.
	if mix, ok := findMaterial(catalog, "concrete"); ok && strings.Contains(strings.ToLower(mix.Unit), "bag") {
		add("hardware", mix.Name, bagsPerPost*posts, "bag", mix.Cost)
	}

	if p.RemovalNeeded {
		if removal, ok := findMaterial(catalog, "existing gate removal"); ok {
			add("misc", removal.Name, 1, "each", removal.Cost)
		}
	}

	return items, nil
}

// Estimate runs the full estimator: suggested materials plus labor hours.
func Estimate(p GateParams, catalog []Material) ([]LineItem, float64, error) {
	items, err := SuggestMaterials(p, catalog)
	if err != nil {
		return nil, 0, err
	}
	return items, EstimateLaborHours(p), nil
}
