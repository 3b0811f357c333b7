package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gatequote/testhelpers"
)

func TestHandleSettingsGet(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSetting(t, app, "labor_rate", "125")
	testhelpers.CreateTestSetting(t, app, "company_name", "Front Range Gate Co")

	handler := HandleSettingsGet(app)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if resp["labor_rate"] != "125" {
		t.Errorf("expected labor_rate 125, got %q", resp["labor_rate"])
	}
	if resp["company_name"] != "Front Range Gate Co" {
		t.Errorf("expected company name, got %q", resp["company_name"])
	}
}

func TestHandleSettingsUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSetting(t, app, "labor_rate", "125")

	handler := HandleSettingsUpdate(app)

	req := httptest.NewRequest(http.MethodPut, "/api/settings",
		strings.NewReader(`{"labor_rate": 150, "quote_prefix": "ACME"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("settings", "key = {:key}", "", 0, 0,
		map[string]any{"key": "labor_rate"})
	if err != nil || len(records) != 1 {
		t.Fatalf("expected one labor_rate setting, got %d (err %v)", len(records), err)
	}
	if got := records[0].GetString("value"); got != "150" {
		t.Errorf("expected labor_rate updated to 150, got %q", got)
	}

	records, err = app.FindRecordsByFilter("settings", "key = {:key}", "", 0, 0,
		map[string]any{"key": "quote_prefix"})
	if err != nil || len(records) != 1 {
		t.Fatalf("expected quote_prefix setting created, got %d (err %v)", len(records), err)
	}
	if got := records[0].GetString("value"); got != "ACME" {
		t.Errorf("expected quote_prefix ACME, got %q", got)
	}
}
