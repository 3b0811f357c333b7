package services

import (
	"fmt"
)

// LineItem is one priced row on a quote.
type LineItem struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unit_cost"`
	TotalCost   float64 `json:"total_cost"`
}

// QuoteTotals is the aggregated pricing of a quote. Amounts stay unrounded
// here; cents rounding happens in FormatUSD when a value is displayed.
type QuoteTotals struct {
	MaterialsSubtotal   float64 `json:"materials_subtotal"`
	MaterialsWithMarkup float64 `json:"materials_with_markup"`
	LaborCost           float64 `json:"labor_cost"`
	Subtotal            float64 `json:"subtotal"`
	TaxAmount           float64 `json:"tax_amount"`
	Total               float64 `json:"total"`
}

// InvalidInputError reports a pricing input outside its valid range.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ItemTotal prices one line item.
func ItemTotal(quantity, unitCost float64) float64 {
	return quantity * unitCost
}

// CalcQuoteTotals aggregates a quote: line-item totals are recomputed from
// quantity and unit cost, materials get the markup percentage, labor is
// hours x rate, and tax applies to the combined subtotal. A markup below
// -100% would flip the sign of the materials cost, so that is the floor;
// discounts down to -100% are accepted.
func CalcQuoteTotals(items []LineItem, markupPercent, laborHours, laborRate, taxRate float64) ([]LineItem, QuoteTotals, error) {
	switch {
	case markupPercent < -100:
		return nil, QuoteTotals{}, &InvalidInputError{Field: "markup_percent", Reason: "must not be below -100"}
	case laborHours < 0:
		return nil, QuoteTotals{}, &InvalidInputError{Field: "labor_hours", Reason: "must not be negative"}
	case laborRate < 0:
		return nil, QuoteTotals{}, &InvalidInputError{Field: "labor_rate", Reason: "must not be negative"}
	case taxRate < 0:
		return nil, QuoteTotals{}, &InvalidInputError{Field: "tax_rate", Reason: "must not be negative"}
	}

	priced := make([]LineItem, len(items))
	var materials float64
	for i, it := range items {
		if it.Quantity < 0 {
			return nil, QuoteTotals{}, &InvalidInputError{Field: "quantity", Reason: fmt.Sprintf("must not be negative on %q", it.Description)}
		}
		if it.UnitCost < 0 {
			return nil, QuoteTotals{}, &InvalidInputError{Field: "unit_cost", Reason: fmt.Sprintf("must not be negative on %q", it.Description)}
		}
		it.TotalCost = ItemTotal(it.Quantity, it.UnitCost)
		priced[i] = it
		materials += it.TotalCost
	}

	t := QuoteTotals{MaterialsSubtotal: materials}
	t.MaterialsWithMarkup = materials * (1 + markupPercent/100)
	t.LaborCost = laborHours * laborRate
	t.Subtotal = t.MaterialsWithMarkup + t.LaborCost
	t.TaxAmount = t.Subtotal * taxRate / 100
	t.Total = t.Subtotal + t.TaxAmount
	return priced, t, nil
}
