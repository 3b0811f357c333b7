package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// HandleMaterialExportCSV streams the price list as a CSV download.
func HandleMaterialExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		catalog, err := services.LoadCatalog(app)
		if err != nil {
			log.Printf("material_export: could not load catalog: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		csvBytes, err := services.GenerateMaterialsCSV(catalog)
		if err != nil {
			log.Printf("material_export: could not generate CSV: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := services.SanitizeFilename(fmt.Sprintf("price_list_%s.csv", time.Now().Format("20060102")))
		e.Response.Header().Set("Content-Type", "text/csv")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(csvBytes)
		return nil
	}
}

// HandleMaterialExportExcel streams the price list as an xlsx download.
func HandleMaterialExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		catalog, err := services.LoadCatalog(app)
		if err != nil {
			log.Printf("material_export: could not load catalog: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		xlsxBytes, err := services.GenerateMaterialsExcel(catalog)
		if err != nil {
			log.Printf("material_export: could not generate Excel: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := services.SanitizeFilename(fmt.Sprintf("price_list_%s.xlsx", time.Now().Format("20060102")))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleMaterialImport accepts a multipart upload named "file" (.csv or
// .xlsx), validates it, and writes the valid rows into the price list. The
// response carries the per-row validation errors so the client can surface
// what was skipped.
func HandleMaterialImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "file upload is required")
		}
		defer file.Close()

		result, err := services.ValidateMaterialsFile(file, header.Filename)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		imported, err := services.ImportMaterials(app, result.ParsedRows)
		if err != nil {
			log.Printf("material_import: could not import materials: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"imported":   imported,
			"total_rows": result.TotalRows,
			"error_rows": result.ErrorRows,
			"errors":     result.Errors,
		})
	}
}
