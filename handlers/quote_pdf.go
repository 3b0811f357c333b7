package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// HandleQuotePDF streams a quote as a PDF download.
func HandleQuotePDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		data, err := services.BuildQuoteExportData(app, quoteID)
		if err != nil {
			log.Printf("quote_pdf: could not build export data for %s: %v", quoteID, err)
			return jsonError(e, http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GenerateQuotePDF(data)
		if err != nil {
			log.Printf("quote_pdf: could not generate PDF for %s: %v", quoteID, err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := services.SanitizeFilename(fmt.Sprintf("Quote_%s.pdf", data.QuoteNumber))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
