package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// HandleOptions returns the dropdown option lists the quote form needs.
func HandleOptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"gate_types":      services.GateTypeOptions,
			"gate_styles":     services.GateStyleOptions,
			"materials":       services.MaterialOptions,
			"automation":      services.AutomationOptions,
			"access_control":  services.AccessControlOptions,
			"ground_types":    services.GroundTypeOptions,
			"slopes":          services.SlopeOptions,
			"statuses":        services.QuoteStatusOptions,
			"item_categories": services.MaterialCategoryOptions,
		})
	}
}
