// Package handlers wires the JSON API surface onto PocketBase request
// events. Handlers stay thin: parse/validate input, call services, shape
// the response.
package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"gatequote/services"
)

// jsonError writes a JSON error body with the given status.
func jsonError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]any{"error": message})
}

// serviceError maps service-layer error types to HTTP responses. Bad
// inputs are 400, missing catalog entries 422, everything else 500.
func serviceError(e *core.RequestEvent, err error) error {
	var invalid *services.InvalidInputError
	if errors.As(err, &invalid) {
		return jsonError(e, http.StatusBadRequest, invalid.Error())
	}
	var miss *services.CatalogMissError
	if errors.As(err, &miss) {
		return jsonError(e, http.StatusUnprocessableEntity, miss.Error())
	}
	return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
