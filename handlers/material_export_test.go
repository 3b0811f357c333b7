package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gatequote/testhelpers"
)

func TestHandleMaterialExportCSV(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "gates", "Steel Swing Gate Panel", 85)
	testhelpers.CreateTestMaterial(t, app, "hardware", "Gate Latch", 28)

	handler := HandleMaterialExportCSV(app)

	req := httptest.NewRequest(http.MethodGet, "/api/materials/export/csv", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv content type, got %q", ct)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "price_list_") {
		t.Errorf("unexpected Content-Disposition: %q", disposition)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "category,name,unit,cost,markup,supplier,supplier_url") {
		t.Errorf("expected CSV header row, got %q", strings.SplitN(body, "\n", 2)[0])
	}
	if !strings.Contains(body, "Steel Swing Gate Panel") || !strings.Contains(body, "Gate Latch") {
		t.Error("expected both materials in CSV body")
	}
}

func TestHandleMaterialExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "gates", "Steel Swing Gate Panel", 85)

	handler := HandleMaterialExportExcel(app)

	req := httptest.NewRequest(http.MethodGet, "/api/materials/export/excel", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("expected xlsx content type, got %q", ct)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("expected xlsx (zip) magic bytes in response body")
	}
}

func TestHandleMaterialImport_CSV(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialImport(app)

	csvData := "category,name,unit,cost,markup,supplier,supplier_url\n" +
		"hardware,Heavy Duty Hinge,pair,45,1.3,Home Depot,\n" +
		"hardware,,each,10,1.3,,\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.csv")
	if err != nil {
		t.Fatalf("could not create form file: %v", err)
	}
	if _, err := fw.Write([]byte(csvData)); err != nil {
		t.Fatalf("could not write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/materials/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if got := resp["imported"].(float64); got != 1 {
		t.Errorf("expected 1 imported row, got %v", got)
	}
	if got := resp["error_rows"].(float64); got != 1 {
		t.Errorf("expected 1 error row, got %v", got)
	}

	records, err := app.FindRecordsByFilter("materials", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Heavy Duty Hinge"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected imported material in database")
	}
	if got := records[0].GetFloat("cost"); got != 45 {
		t.Errorf("expected cost 45, got %v", got)
	}
}

func TestHandleMaterialImport_MissingFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialImport(app)

	req := httptest.NewRequest(http.MethodPost, "/api/materials/import", strings.NewReader(""))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
