package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// HandleSettingsGet returns every settings key/value pair.
func HandleSettingsGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings, err := services.AllSettings(app)
		if err != nil {
			log.Printf("settings_get: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, settings)
	}
}

// HandleSettingsUpdate upserts the submitted keys. Values arrive as
// arbitrary JSON and are stored as their string form.
func HandleSettingsUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload map[string]any
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		for key, value := range payload {
			if err := services.SetSetting(app, key, fmt.Sprintf("%v", value)); err != nil {
				log.Printf("settings_update: %v", err)
				return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}
		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}
