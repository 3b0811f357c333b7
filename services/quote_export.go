package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// QuoteExportData holds all data needed to generate a quote PDF.
type QuoteExportData struct {
	// Company letterhead
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CompanyLicense string

	// Quote header
	QuoteNumber string
	Date        string
	Status      string

	// Customer
	Customer *QuoteExportCustomer

	// Project specifications
	GateType      string
	GateStyle     string
	Width         float64
	Height        float64
	Material      string
	Automation    string
	AccessControl string
	GroundType    string

	// Line items
	LineItems []LineItem

	// Labor
	LaborHours float64
	LaborRate  float64

	// Totals
	MaterialsWithMarkup float64
	LaborCost           float64
	Subtotal            float64
	TaxRate             float64
	TaxAmount           float64
	Total               float64

	Notes string
	Terms string
}

// QuoteExportCustomer holds customer details for PDF export.
type QuoteExportCustomer struct {
	Name      string
	Address   string
	CityState string
	Phone     string
	Email     string
}

// BuildQuoteExportData assembles all data needed for PDF generation from
// PocketBase records.
func BuildQuoteExportData(app *pocketbase.PocketBase, quoteId string) (*QuoteExportData, error) {
	quote, err := app.FindRecordById("quotes", quoteId)
	if err != nil {
		return nil, fmt.Errorf("quote not found: %w", err)
	}

	var customer *QuoteExportCustomer
	if customerID := quote.GetString("customer"); customerID != "" {
		if c, err := app.FindRecordById("customers", customerID); err == nil {
			customer = buildExportCustomer(c)
		} else {
			log.Printf("quote_export: could not find customer %s: %v", customerID, err)
		}
	}

	itemRecords, err := app.FindRecordsByFilter(
		"quote_items",
		"quote = {:quoteId}",
		"sort_order",
		0,
		0,
		map[string]any{"quoteId": quoteId},
	)
	if err != nil {
		log.Printf("quote_export: could not fetch items for quote %s: %v", quoteId, err)
		itemRecords = nil
	}

	items := make([]LineItem, 0, len(itemRecords))
	for _, r := range itemRecords {
		items = append(items, LineItem{
			Category:    r.GetString("category"),
			Description: r.GetString("description"),
			Quantity:    r.GetFloat("quantity"),
			Unit:        r.GetString("unit"),
			UnitCost:    r.GetFloat("unit_cost"),
			TotalCost:   r.GetFloat("total_cost"),
		})
	}

	markupPercent := quote.GetFloat("markup_percent")
	laborHours := quote.GetFloat("labor_hours")
	laborRate := quote.GetFloat("labor_rate")
	taxRate := quote.GetFloat("tax_rate")

	_, totals, err := CalcQuoteTotals(items, markupPercent, laborHours, laborRate, taxRate)
	if err != nil {
		return nil, fmt.Errorf("quote totals: %w", err)
	}

	created := quote.GetDateTime("created").Time()
	date := created.Format("January 2, 2006")

	return &QuoteExportData{
		CompanyName:    GetSetting(app, "company_name", "Your Gate Company"),
		CompanyAddress: GetSetting(app, "company_address", ""),
		CompanyPhone:   GetSetting(app, "company_phone", ""),
		CompanyEmail:   GetSetting(app, "company_email", ""),
		CompanyLicense: GetSetting(app, "company_license", ""),

		QuoteNumber: quote.GetString("quote_number"),
		Date:        date,
		Status:      strings.ToUpper(quote.GetString("status")),

		Customer: customer,

		GateType:      quote.GetString("gate_type"),
		GateStyle:     quote.GetString("gate_style"),
		Width:         quote.GetFloat("width"),
		Height:        quote.GetFloat("height"),
		Material:      quote.GetString("material"),
		Automation:    quote.GetString("automation"),
		AccessControl: quote.GetString("access_control"),
		GroundType:    quote.GetString("ground_type"),

		LineItems: items,

		LaborHours: laborHours,
		LaborRate:  laborRate,

		MaterialsWithMarkup: totals.MaterialsWithMarkup,
		LaborCost:           totals.LaborCost,
		Subtotal:            totals.Subtotal,
		TaxRate:             taxRate,
		TaxAmount:           totals.TaxAmount,
		Total:               totals.Total,

		Notes: quote.GetString("notes"),
		Terms: GetSetting(app, "quote_terms", "Quote valid for 30 days. 50% deposit required to begin work."),
	}, nil
}

// buildExportCustomer creates a QuoteExportCustomer from a customers record.
func buildExportCustomer(c *core.Record) *QuoteExportCustomer {
	cityStateParts := []string{}
	if city := c.GetString("city"); city != "" {
		cityStateParts = append(cityStateParts, city)
	}
	if state := c.GetString("state"); state != "" {
		cityStateParts = append(cityStateParts, state)
	}
	cityState := strings.Join(cityStateParts, ", ")
	if zip := c.GetString("zip_code"); zip != "" {
		cityState = strings.TrimSpace(cityState + " " + zip)
	}

	return &QuoteExportCustomer{
		Name:      c.GetString("name"),
		Address:   c.GetString("address"),
		CityState: cityState,
		Phone:     c.GetString("phone"),
		Email:     c.GetString("email"),
	}
}
