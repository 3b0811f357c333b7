package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF creates a PDF document for a quote using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateQuotePDF(data *QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.Letter).
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteCustomerBlock(m, data)
	addQuoteSpecsTable(m, data)
	addQuoteItemsTable(m, data)
	addQuoteLaborTable(m, data)
	addQuoteTotals(m, data)
	addQuoteNotes(m, data)
	addQuoteTerms(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// Dark blue used for headings throughout the quote.
var quoteHeadingColor = &props.Color{Red: 26, Green: 54, Blue: 93}

// addQuoteHeader adds the company letterhead, quote number, date and status.
func addQuoteHeader(m core.Maroto, data *QuoteExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.CompanyName, props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: quoteHeadingColor,
				}),
			),
		),
	)

	infoStyle := props.Text{
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 74, Green: 85, Blue: 104},
	}

	if data.CompanyAddress != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(data.CompanyAddress, infoStyle))))
	}
	contact := joinNonEmpty([]string{data.CompanyPhone, data.CompanyEmail}, " | ")
	if contact != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(contact, infoStyle))))
	}
	if data.CompanyLicense != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(fmt.Sprintf("License: %s", data.CompanyLicense), infoStyle))))
	}

	m.AddRows(row.New(4))
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("QUOTE #%s", data.QuoteNumber), props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: &props.Color{Red: 45, Green: 55, Blue: 72},
				}),
			),
		),
	)

	metaStyle := props.Text{Size: 8, Align: align.Left}
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New(fmt.Sprintf("Date: %s", data.Date), metaStyle))),
		row.New(5).Add(col.New(12).Add(text.New(fmt.Sprintf("Status: %s", data.Status), metaStyle))),
	)

	m.AddRows(row.New(3))
}

// addQuoteCustomerBlock adds the customer details section.
func addQuoteCustomerBlock(m core.Maroto, data *QuoteExportData) {
	if data.Customer == nil {
		return
	}
	c := data.Customer

	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("CUSTOMER", quoteSectionLabel()))),
	)
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New(c.Name, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}))),
	)

	valueStyle := props.Text{Size: 8, Align: align.Left}
	if c.Address != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(c.Address, valueStyle))))
	}
	if c.CityState != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(c.CityState, valueStyle))))
	}
	if c.Phone != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(fmtField("Phone", c.Phone), valueStyle))))
	}
	if c.Email != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(fmtField("Email", c.Email), valueStyle))))
	}

	m.AddRows(row.New(3))
}

// addQuoteSpecsTable adds the project specification grid.
func addQuoteSpecsTable(m core.Maroto, data *QuoteExportData) {
	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("PROJECT SPECIFICATIONS", quoteSectionLabel()))),
	)

	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	valueStyle := props.Text{Size: 8, Align: align.Left}

	specRows := []struct{ l1, v1, l2, v2 string }{
		{"Gate Type:", specLabel(data.GateType), "Material:", specLabel(data.Material)},
		{"Width:", fmt.Sprintf("%g ft", data.Width), "Height:", fmt.Sprintf("%g ft", data.Height)},
		{"Style:", specLabel(data.GateStyle), "Automation:", specLabel(data.Automation)},
		{"Access Control:", specLabel(data.AccessControl), "Ground Type:", specLabel(data.GroundType)},
	}

	for _, sr := range specRows {
		m.AddRows(
			row.New(6).Add(
				col.New(2).Add(text.New(sr.l1, labelStyle)),
				col.New(4).Add(text.New(sr.v1, valueStyle)),
				col.New(2).Add(text.New(sr.l2, labelStyle)),
				col.New(4).Add(text.New(sr.v2, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addQuoteItemsTable adds the materials table with header and body rows.
func addQuoteItemsTable(m core.Maroto, data *QuoteExportData) {
	if len(data.LineItems) == 0 {
		return
	}

	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("MATERIALS & EQUIPMENT", quoteSectionLabel()))),
	)

	headerBg := &props.Color{Red: 226, Green: 232, Blue: 240}
	headerCell := &props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: quoteHeadingColor,
	}
	headerTextRight := headerText
	headerTextRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("Description", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("Qty", headerTextRight)).WithStyle(headerCell),
			col.New(1).Add(text.New("Unit", headerTextRight)).WithStyle(headerCell),
			col.New(2).Add(text.New("Unit Price", headerTextRight)).WithStyle(headerCell),
			col.New(2).Add(text.New("Total", headerTextRight)).WithStyle(headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, item := range data.LineItems {
		bodyLeft := props.Text{Size: 7, Align: align.Left}
		bodyRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colDesc := col.New(6).Add(text.New(item.Description, bodyLeft))
		colQty := col.New(1).Add(text.New(fmt.Sprintf("%.1f", item.Quantity), bodyRight))
		colUnit := col.New(1).Add(text.New(item.Unit, bodyRight))
		colUnitCost := col.New(2).Add(text.New(FormatUSD(item.UnitCost), bodyRight))
		colTotal := col.New(2).Add(text.New(FormatUSD(item.TotalCost), bodyRight))

		if cellStyle != nil {
			colDesc = colDesc.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colUnit = colUnit.WithStyle(cellStyle)
			colUnitCost = colUnitCost.WithStyle(cellStyle)
			colTotal = colTotal.WithStyle(cellStyle)
		}

		m.AddRows(row.New(6).Add(colDesc, colQty, colUnit, colUnitCost, colTotal))
	}

	m.AddRows(row.New(3))
}

// addQuoteLaborTable adds the labor section.
func addQuoteLaborTable(m core.Maroto, data *QuoteExportData) {
	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("LABOR", quoteSectionLabel()))),
	)

	headerBg := &props.Color{Red: 226, Green: 232, Blue: 240}
	headerCell := &props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: quoteHeadingColor,
	}
	headerTextRight := headerText
	headerTextRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("Description", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Hours", headerTextRight)).WithStyle(headerCell),
			col.New(2).Add(text.New("Rate", headerTextRight)).WithStyle(headerCell),
			col.New(2).Add(text.New("Total", headerTextRight)).WithStyle(headerCell),
		),
	)

	bodyLeft := props.Text{Size: 7, Align: align.Left}
	bodyRight := props.Text{Size: 7, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("Professional Installation", bodyLeft)),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f", data.LaborHours), bodyRight)),
			col.New(2).Add(text.New(fmt.Sprintf("%s/hr", FormatUSD(data.LaborRate)), bodyRight)),
			col.New(2).Add(text.New(FormatUSD(data.LaborCost), bodyRight)),
		),
	)

	m.AddRows(row.New(3))
}

// addQuoteTotals adds right-aligned total rows.
func addQuoteTotals(m core.Maroto, data *QuoteExportData) {
	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}

	totalRows := []struct {
		label string
		value float64
	}{
		{"Materials (with markup)", data.MaterialsWithMarkup},
		{"Labor", data.LaborCost},
		{"Subtotal", data.Subtotal},
	}
	if data.TaxRate > 0 {
		totalRows = append(totalRows, struct {
			label string
			value float64
		}{fmt.Sprintf("Tax (%.1f%%)", data.TaxRate), data.TaxAmount})
	}

	for _, tr := range totalRows {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(tr.label, labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(FormatUSD(tr.value), valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	grandCell := &props.Cell{BackgroundColor: quoteHeadingColor}
	grandStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("TOTAL", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatUSD(data.Total), grandStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

// addQuoteNotes adds the notes section if non-empty.
func addQuoteNotes(m core.Maroto, data *QuoteExportData) {
	if data.Notes == "" {
		return
	}

	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("NOTES", quoteSectionLabel()))),
	)
	m.AddRows(
		row.New(7).Add(col.New(12).Add(text.New(data.Notes, props.Text{Size: 8, Align: align.Left}))),
	)

	m.AddRows(row.New(3))
}

// addQuoteTerms adds the terms and conditions footer.
func addQuoteTerms(m core.Maroto, data *QuoteExportData) {
	if data.Terms == "" {
		return
	}

	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("TERMS & CONDITIONS", quoteSectionLabel()))),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(data.Terms, props.Text{
				Size:  7,
				Align: align.Left,
				Color: &props.Color{Red: 113, Green: 128, Blue: 150},
			})),
		),
	)
}

// quoteSectionLabel returns the shared section heading style.
func quoteSectionLabel() props.Text {
	return props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: quoteHeadingColor,
	}
}

// specLabel formats an option value for display, "N/A" when empty.
func specLabel(value string) string {
	if value == "" {
		return "N/A"
	}
	return TitleLabel(value)
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	result := ""
	for i, p := range nonEmpty {
		if i > 0 {
			result += sep
		}
		result += p
	}
	return result
}

// fmtField returns "label: value" if value is non-empty, otherwise empty string.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}
