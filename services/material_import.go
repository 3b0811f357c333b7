package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	pbcore "github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded
// price-list file.
type ValidationResult struct {
	TotalRows  int               `json:"total_rows"`
	ValidRows  int               `json:"valid_rows"`
	ErrorRows  int               `json:"error_rows"`
	Errors     []ValidationError `json:"errors"`
	ParsedRows []Material        `json:"-"`
	FileName   string            `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapMaterialHeaders maps uploaded column headers to material field keys.
// Headers match case-insensitively and tolerate spaces in place of
// underscores, so both "supplier_url" and "Supplier URL" work.
func mapMaterialHeaders(headers []string) []string {
	known := map[string]string{}
	for _, key := range materialExportHeaders {
		known[key] = key
		known[strings.ReplaceAll(key, "_", " ")] = key
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		mapped[i] = known[norm]
	}
	return mapped
}

// ValidateMaterialsFile parses and validates an uploaded price-list file.
// Rows missing a name or carrying non-numeric costs are reported per row;
// valid rows are kept for ImportMaterials.
func ValidateMaterialsFile(file io.Reader, fileName string) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapMaterialHeaders(headers)

	result := &ValidationResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := map[string]string{}
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		var rowErrors []ValidationError

		if rowData["name"] == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row: rowNum, Field: "name", Message: "name is required",
			})
		}

		cost := 0.0
		if v := rowData["cost"]; v != "" {
			cost, err = strconv.ParseFloat(v, 64)
			if err != nil {
				rowErrors = append(rowErrors, ValidationError{
					Row: rowNum, Field: "cost", Message: fmt.Sprintf("cost %q is not a number", v),
				})
			} else if cost < 0 {
				rowErrors = append(rowErrors, ValidationError{
					Row: rowNum, Field: "cost", Message: "cost must not be negative",
				})
			}
		}

		markup := 1.3
		if v := rowData["markup"]; v != "" {
			markup, err = strconv.ParseFloat(v, 64)
			if err != nil {
				rowErrors = append(rowErrors, ValidationError{
					Row: rowNum, Field: "markup", Message: fmt.Sprintf("markup %q is not a number", v),
				})
			} else if markup < 1 {
				rowErrors = append(rowErrors, ValidationError{
					Row: rowNum, Field: "markup", Message: "markup must be at least 1",
				})
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		category := rowData["category"]
		if category == "" {
			category = "misc"
		}
		unit := rowData["unit"]
		if unit == "" {
			unit = "each"
		}

		result.ParsedRows = append(result.ParsedRows, Material{
			Category:    category,
			Name:        rowData["name"],
			Unit:        unit,
			Cost:        cost,
			Markup:      markup,
			Supplier:    rowData["supplier"],
			SupplierURL: rowData["supplier_url"],
		})
	}

	result.ValidRows = len(result.ParsedRows)
	result.ErrorRows = result.TotalRows - result.ValidRows

	return result, nil
}

// ImportMaterials inserts validated rows into the price list inside one
// transaction. Rows whose name already exists update that entry instead of
// inserting a duplicate. Returns the number of rows written.
func ImportMaterials(app *pocketbase.PocketBase, rows []Material) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	count := 0
	err := app.RunInTransaction(func(txApp pbcore.App) error {
		col, err := txApp.FindCollectionByNameOrId("materials")
		if err != nil {
			return fmt.Errorf("materials collection: %w", err)
		}

		for _, m := range rows {
			var record *pbcore.Record
			existing, err := txApp.FindRecordsByFilter(
				"materials",
				"name = {:name}",
				"",
				1,
				0,
				map[string]any{"name": m.Name},
			)
			if err == nil && len(existing) > 0 {
				record = existing[0]
			} else {
				record = pbcore.NewRecord(col)
			}

			record.Set("category", m.Category)
			record.Set("name", m.Name)
			record.Set("unit", m.Unit)
			record.Set("cost", m.Cost)
			record.Set("markup", m.Markup)
			record.Set("supplier", m.Supplier)
			record.Set("supplier_url", m.SupplierURL)

			if err := txApp.Save(record); err != nil {
				return fmt.Errorf("save material %q: %w", m.Name, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
