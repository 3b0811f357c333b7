package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/collections"
	"gatequote/handlers"
	"gatequote/services"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	// Shared supplier client so price lookups reuse one cache
	supplierClient := services.NewSupplierClient()

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Customers ───────────────────────────────────────────
		se.Router.GET("/api/customers", handlers.HandleCustomerList(app))
		se.Router.POST("/api/customers", handlers.HandleCustomerCreate(app))
		se.Router.PUT("/api/customers/{id}", handlers.HandleCustomerUpdate(app))
		se.Router.DELETE("/api/customers/{id}", handlers.HandleCustomerDelete(app))

		// ── Materials price list ────────────────────────────────
		se.Router.GET("/api/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/api/materials", handlers.HandleMaterialCreate(app))
		se.Router.GET("/api/materials/categories", handlers.HandleMaterialCategories(app))
		se.Router.GET("/api/materials/export/csv", handlers.HandleMaterialExportCSV(app))
		se.Router.GET("/api/materials/export/excel", handlers.HandleMaterialExportExcel(app))
		se.Router.POST("/api/materials/import", handlers.HandleMaterialImport(app))
		se.Router.PUT("/api/materials/{id}", handlers.HandleMaterialUpdate(app))
		se.Router.DELETE("/api/materials/{id}", handlers.HandleMaterialDelete(app))

		// ── Quotes ──────────────────────────────────────────────
		se.Router.GET("/api/quotes", handlers.HandleQuoteList(app))
		se.Router.POST("/api/quotes", handlers.HandleQuoteCreate(app))
		se.Router.GET("/api/quotes/{id}", handlers.HandleQuoteView(app))
		se.Router.PUT("/api/quotes/{id}", handlers.HandleQuoteUpdate(app))
		se.Router.DELETE("/api/quotes/{id}", handlers.HandleQuoteDelete(app))
		se.Router.PUT("/api/quotes/{id}/status", handlers.HandleQuoteStatus(app))
		se.Router.GET("/api/quotes/{id}/pdf", handlers.HandleQuotePDF(app))

		// ── Estimator ───────────────────────────────────────────
		se.Router.POST("/api/calculate", handlers.HandleCalculate(app))

		// ── Supplier price lookup ───────────────────────────────
		se.Router.POST("/api/price-check", handlers.HandlePriceCheck(app, supplierClient))
		se.Router.POST("/api/price-compare", handlers.HandlePriceCompare(app, supplierClient))
		se.Router.GET("/api/supplier-search", handlers.HandleSupplierSearch(app))

		// ── Settings and form options ───────────────────────────
		se.Router.GET("/api/settings", handlers.HandleSettingsGet(app))
		se.Router.PUT("/api/settings", handlers.HandleSettingsUpdate(app))
		se.Router.GET("/api/options", handlers.HandleOptions(app))

		// Redirect home to the static frontend
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/static/index.html")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
