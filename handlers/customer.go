package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// customerResponse shapes a customers record for the JSON API.
func customerResponse(r *core.Record) map[string]any {
	return map[string]any{
		"id":       r.Id,
		"name":     r.GetString("name"),
		"email":    r.GetString("email"),
		"phone":    r.GetString("phone"),
		"address":  r.GetString("address"),
		"city":     r.GetString("city"),
		"state":    r.GetString("state"),
		"zip_code": r.GetString("zip_code"),
		"notes":    r.GetString("notes"),
	}
}

// HandleCustomerList returns all customers, optionally filtered by a search
// term matched against name, email and phone.
func HandleCustomerList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		search := strings.TrimSpace(e.Request.URL.Query().Get("search"))

		var records []*core.Record
		var err error
		if search != "" {
			records, err = app.FindRecordsByFilter(
				"customers",
				"name ~ {:term} || email ~ {:term} || phone ~ {:term}",
				"name",
				0,
				0,
				map[string]any{"term": "%" + search + "%"},
			)
		} else {
			records, err = app.FindRecordsByFilter("customers", "id != ''", "name", 0, 0)
		}
		if err != nil {
			log.Printf("customer_list: could not fetch customers: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, customerResponse(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// customerPayload is the JSON body for customer create/update.
type customerPayload struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zip_code"`
	Notes   *string `json:"notes"`
}

// apply copies the provided fields onto a record, leaving absent fields
// untouched so partial updates work.
func (p customerPayload) apply(r *core.Record) {
	set := func(field string, v *string) {
		if v != nil {
			r.Set(field, strings.TrimSpace(*v))
		}
	}
	set("name", p.Name)
	set("email", p.Email)
	set("phone", p.Phone)
	set("address", p.Address)
	set("city", p.City)
	set("state", p.State)
	set("zip_code", p.ZipCode)
	set("notes", p.Notes)
}

// HandleCustomerCreate creates a customer.
func HandleCustomerCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload customerPayload
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
			return jsonError(e, http.StatusBadRequest, "name is required")
		}

		col, err := app.FindCollectionByNameOrId("customers")
		if err != nil {
			log.Printf("customer_create: could not find customers collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		payload.apply(record)

		if err := app.Save(record); err != nil {
			log.Printf("customer_create: could not save customer: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":   record.Id,
			"name": record.GetString("name"),
		})
	}
}

// HandleCustomerUpdate applies a partial update to a customer.
func HandleCustomerUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Customer not found")
		}

		var payload customerPayload
		if err := e.BindBody(&payload); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
			return jsonError(e, http.StatusBadRequest, "name must not be empty")
		}
		payload.apply(record)

		if err := app.Save(record); err != nil {
			log.Printf("customer_update: could not save customer: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}

// HandleCustomerDelete removes a customer. Deleting an unknown id is not an
// error.
func HandleCustomerDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err == nil {
			if err := app.Delete(record); err != nil {
				log.Printf("customer_delete: could not delete customer: %v", err)
				return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}
		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}
