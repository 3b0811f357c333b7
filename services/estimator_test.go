package services

import (
	"errors"
	"strings"
	"testing"
)

func TestEstimateLaborHours(t *testing.T) {
	tests := []struct {
		name   string
		params GateParams
		want   float64
	}{
		{
			name: "standard steel swing gate",
			params: GateParams{
				GateType: "swing", GateStyle: "standard",
				Width: 12, Height: 6, Material: "steel",
				Automation: "none", AccessControl: "none",
				GroundType: "concrete", Slope: "flat",
			},
			// base 4 + (12-10)*0.25 = 4.5, all multipliers 1.0
			want: 4.5,
		},
		{
			name: "narrow gate gets no width surcharge",
			params: GateParams{
				GateType: "swing", GateStyle: "standard",
				Width: 8, Height: 6, Material: "steel",
				Automation: "none", AccessControl: "none",
				GroundType: "concrete", Slope: "flat",
			},
			want: 4.0,
		},
		{
			name: "pedestrian gate",
			params: GateParams{
				GateType: "pedestrian", GateStyle: "standard",
				Width: 4, Height: 6, Material: "steel",
				Automation: "none", AccessControl: "none",
				GroundType: "concrete", Slope: "flat",
			},
			want: 2.0,
		},
		{
			name: "short chain link on dirt",
			params: GateParams{
				GateType: "swing", GateStyle: "basic",
				Width: 10, Height: 4, Material: "chain_link",
				Automation: "none", AccessControl: "none",
				GroundType: "dirt", Slope: "flat",
			},
			// 4 * 0.8 (height) * 0.7 (material) * 0.8 (style) * 1.3 (ground) = 2.3296 -> 2.25
			want: 2.25,
		},
		{
			name: "ornamental wrought iron cantilever on a steep slope",
			params: GateParams{
				GateType: "cantilever", GateStyle: "ornamental",
				Width: 20, Height: 8, Material: "wrought_iron",
				Automation: "none", AccessControl: "none",
				GroundType: "gravel", Slope: "steep",
			},
			// base 8 + 2.5 = 10.5; 10.5 * 1.3 * 1.4 * 1.5 * 1.2 * 1.6 = 55.0368 -> 55
			want: 55.0,
		},
		{
			name: "automation and access control add flat hours",
			params: GateParams{
				GateType: "swing", GateStyle: "standard",
				Width: 10, Height: 6, Material: "steel",
				Automation: "dual_swing", AccessControl: "keypad",
				GroundType: "concrete", Slope: "flat",
				PowerDistance: 50,
			},
			// 4 + 5 + 1 + 50*0.1 = 15
			want: 15.0,
		},
		{
			name: "power distance ignored without automation",
			params: GateParams{
				GateType: "swing", GateStyle: "standard",
				Width: 10, Height: 6, Material: "steel",
				Automation: "none", AccessControl: "none",
				GroundType: "concrete", Slope: "flat",
				PowerDistance: 100,
			},
			want: 4.0,
		},
		{
			name: "removal adds two hours",
			params: GateParams{
				GateType: "swing", GateStyle: "standard",
				Width: 10, Height: 6, Material: "steel",
				Automation: "none", AccessControl: "none",
				GroundType: "concrete", Slope: "flat",
				RemovalNeeded: true,
			},
			want: 6.0,
		},
		{
			name: "tall gate bracket",
			params: GateParams{
				GateType: "sliding", GateStyle: "standard",
				Width: 10, Height: 12, Material: "aluminum",
				Automation: "none", AccessControl: "none",
				GroundType: "concrete", Slope: "flat",
			},
			// 6 * 1.6 = 9.6 -> 9.5
			want: 9.5,
		},
		{
			name: "unknown gate type falls back to swing",
			params: GateParams{
				GateType: "moat-drawbridge", GateStyle: "standard",
				Width: 10, Height: 6, Material: "steel",
				Automation: "none", AccessControl: "none",
				GroundType: "concrete", Slope: "flat",
			},
			want: 4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateLaborHours(tt.params)
			if got != tt.want {
				t.Errorf("EstimateLaborHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateLaborHoursQuarterRounding(t *testing.T) {
	params := GateParams{
		GateType: "swing", GateStyle: "standard",
		Width: 11, Height: 6, Material: "steel",
		Automation: "none", AccessControl: "none",
		GroundType: "asphalt", Slope: "flat",
	}
	// (4 + 0.25) * 1.1 = 4.675 -> 4.75
	got := EstimateLaborHours(params)
	if got != 4.75 {
		t.Errorf("EstimateLaborHours() = %v, want 4.75", got)
	}
}

// testCatalog returns a small price list covering every estimator lookup.
func testCatalog() []Material {
	return []Material{
		{Category: "gates", Name: "Steel Swing Gate Panel", Unit: "linear ft", Cost: 85},
		{Category: "gates", Name: "Chain Link Gate", Unit: "linear ft", Cost: 25},
		{Category: "gates", Name: "V-Track Sliding Gate Kit", Unit: "each", Cost: 450},
		{Category: "gates", Name: "Cantilever Gate Track System", Unit: "each", Cost: 680},
		{Category: "hardware", Name: "Post 6x6 Galvanized Steel", Unit: "ft", Cost: 18.5},
		{Category: "hardware", Name: "Heavy Duty Hinges", Unit: "pair", Cost: 45},
		{Category: "hardware", Name: "Gate Latch - Heavy Duty", Unit: "each", Cost: 35},
		{Category: "hardware", Name: "Concrete Mix 80lb", Unit: "bag", Cost: 7.5},
		{Category: "operators", Name: "LiftMaster LA400 Swing Gate Operator", Unit: "each", Cost: 1250},
		{Category: "operators", Name: "Mighty Mule MM560 Dual Swing Kit", Unit: "each", Cost: 850},
		{Category: "access_control", Name: "Wireless Keypad", Unit: "each", Cost: 120},
		{Category: "access_control", Name: "Safety Photoeye Kit", Unit: "pair", Cost: 85},
		{Category: "electrical", Name: "Electrical Wire 12AWG Direct Burial", Unit: "ft", Cost: 1.25},
		{Category: "electrical", Name: "Conduit 3/4in PVC", Unit: "ft", Cost: 0.85},
		{Category: "misc", Name: "Existing Gate Removal & Disposal", Unit: "each", Cost: 150},
	}
}

func TestSuggestMaterials(t *testing.T) {
	params := GateParams{
		GateType: "swing", GateStyle: "standard",
		Width: 12, Height: 6, Material: "steel",
		Automation: "single_swing", AccessControl: "keypad",
		GroundType: "concrete", Slope: "flat",
		PowerDistance: 50, RemovalNeeded: true,
	}

	items, err := SuggestMaterials(params, testCatalog())
	if err != nil {
		t.Fatalf("SuggestMaterials() error = %v", err)
	}

	byDesc := map[string]LineItem{}
	for _, it := range items {
		byDesc[it.Description] = it
	}

	panel, ok := byDesc["Steel Swing Gate Panel"]
	if !ok {
		t.Fatal("missing gate panel line item")
	}
	if panel.Quantity != 12 {
		t.Errorf("panel quantity = %v, want width 12", panel.Quantity)
	}
	if panel.TotalCost != 1020 {
		t.Errorf("panel total = %v, want 1020", panel.TotalCost)
	}

	post, ok := byDesc["Post 6x6 Galvanized Steel x 2 posts"]
	if !ok {
		t.Fatal("missing post line item")
	}
	// 2 posts, each height+2 ft: 16 ft total
	if post.Quantity != 16 {
		t.Errorf("post quantity = %v, want 16", post.Quantity)
	}

	hinges, ok := byDesc["Heavy Duty Hinges"]
	if !ok {
		t.Fatal("missing hinges line item")
	}
	if hinges.Quantity != 2 {
		t.Errorf("hinge pairs = %v, want 2", hinges.Quantity)
	}

	if _, ok := byDesc["LiftMaster LA400 Swing Gate Operator"]; !ok {
		t.Error("missing operator line item")
	}
	if _, ok := byDesc["Safety Photoeye Kit"]; !ok {
		t.Error("missing safety photoeye line item")
	}
	if _, ok := byDesc["Wireless Keypad"]; !ok {
		t.Error("missing keypad line item")
	}

	wire, ok := byDesc["Electrical Wire 12AWG Direct Burial"]
	if !ok {
		t.Fatal("missing wire line item")
	}
	if wire.Quantity != 50 {
		t.Errorf("wire quantity = %v, want power distance 50", wire.Quantity)
	}

	concrete, ok := byDesc["Concrete Mix 80lb"]
	if !ok {
		t.Fatal("missing concrete line item")
	}
	if concrete.Quantity != 8 {
		t.Errorf("concrete bags = %v, want 4 per post", concrete.Quantity)
	}

	if _, ok := byDesc["Existing Gate Removal & Disposal"]; !ok {
		t.Error("missing removal line item")
	}
}

func TestSuggestMaterialsSlidingGate(t *testing.T) {
	params := GateParams{
		GateType: "sliding", GateStyle: "standard",
		Width: 16, Height: 6, Material: "chain_link",
		Automation: "none", AccessControl: "none",
		GroundType: "concrete", Slope: "flat",
	}

	items, err := SuggestMaterials(params, testCatalog())
	if err != nil {
		t.Fatalf("SuggestMaterials() error = %v", err)
	}

	var sawTrack, sawHinges bool
	for _, it := range items {
		if strings.Contains(it.Description, "V-Track") {
			sawTrack = true
		}
		if strings.Contains(it.Description, "Hinges") {
			sawHinges = true
		}
		if strings.Contains(it.Description, "posts") && it.Quantity != 24 {
			// 3 posts for sliding, each 8 ft
			t.Errorf("post quantity = %v, want 24", it.Quantity)
		}
	}
	if !sawTrack {
		t.Error("sliding gate should include the v-track kit")
	}
	if sawHinges {
		t.Error("sliding gate should not include hinges")
	}
}

func TestSuggestMaterialsMissingPanel(t *testing.T) {
	params := GateParams{
		GateType: "swing", GateStyle: "standard",
		Width: 10, Height: 6, Material: "wood",
		Automation: "none", AccessControl: "none",
		GroundType: "concrete", Slope: "flat",
	}

	// Catalog without any wood panel entry.
	_, err := SuggestMaterials(params, testCatalog())
	var miss *CatalogMissError
	if !errors.As(err, &miss) {
		t.Fatalf("SuggestMaterials() error = %v, want *CatalogMissError", err)
	}
	if miss.Category != "gates" {
		t.Errorf("miss category = %q, want gates", miss.Category)
	}
	if miss.Term != "wood gate panel" {
		t.Errorf("miss term = %q, want wood gate panel", miss.Term)
	}
}

func TestSuggestMaterialsSkipsMissingAddOns(t *testing.T) {
	params := GateParams{
		GateType: "swing", GateStyle: "standard",
		Width: 10, Height: 6, Material: "steel",
		Automation: "single_swing", AccessControl: "keypad",
		GroundType: "concrete", Slope: "flat",
		PowerDistance: 30, RemovalNeeded: true,
	}

	// Only the required panel is present.
	catalog := []Material{
		{Category: "gates", Name: "Steel Swing Gate Panel", Unit: "linear ft", Cost: 85},
	}

	items, err := SuggestMaterials(params, catalog)
	if err != nil {
		t.Fatalf("SuggestMaterials() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want just the panel", len(items))
	}
}
