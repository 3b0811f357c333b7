package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// materialExportHeaders is the canonical column order for price-list
// exports. Imports accept the same columns.
var materialExportHeaders = []string{
	"category", "name", "unit", "cost", "markup", "supplier", "supplier_url",
}

// GenerateMaterialsCSV creates a CSV export of the price list and returns
// the file contents as a byte slice.
func GenerateMaterialsCSV(catalog []Material) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(materialExportHeaders); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, m := range catalog {
		record := []string{
			m.Category,
			m.Name,
			m.Unit,
			strconv.FormatFloat(m.Cost, 'f', -1, 64),
			strconv.FormatFloat(m.Markup, 'f', -1, 64),
			m.Supplier,
			m.SupplierURL,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateMaterialsExcel creates an Excel export of the price list grouped
// by category and returns the file contents as a byte slice.
func GenerateMaterialsExcel(catalog []Material) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Price List"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]

	widths := []float64{16, 42, 12, 12, 10, 20, 50}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#1A365D"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	categoryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 10,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E2E8F0"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create category style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	headers := []string{"Category", "Name", "Unit", "Cost", "Markup", "Supplier", "Supplier URL"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	row := 2
	lastCategory := ""
	for _, m := range catalog {
		rowStr := strconv.Itoa(row)

		// Category banner row on each category change.
		if m.Category != lastCategory {
			if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
				return nil, fmt.Errorf("merge category row: %w", err)
			}
			f.SetCellValue(sheetName, "A"+rowStr, TitleLabel(m.Category))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, categoryStyle)
			lastCategory = m.Category
			row++
			rowStr = strconv.Itoa(row)
		}

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(m.Category))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(m.Name))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(m.Unit))
		f.SetCellValue(sheetName, "D"+rowStr, m.Cost)
		f.SetCellValue(sheetName, "E"+rowStr, m.Markup)
		f.SetCellValue(sheetName, "F"+rowStr, sanitizeExcelCell(m.Supplier))
		f.SetCellValue(sheetName, "G"+rowStr, sanitizeExcelCell(m.SupplierURL))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, bodyStyle)

		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

// SanitizeFilename strips characters that are unsafe in download filenames.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
		" ", "_",
	)
	return replacer.Replace(name)
}
