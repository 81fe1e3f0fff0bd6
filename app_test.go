package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*App, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.MigrateSchema(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	app := NewApp(db, t.TempDir())
	return app, app.Router()
}

func strp(s string) *string { return &s }

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestStationListRollup(t *testing.T) {
	app, router := newTestApp(t)

	station := models.Station{Name: "Town Hall", State: "NSW"}
	if err := app.db.Create(&station).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}
	tenants := []models.Tenant{
		{StationId: station.ID, TenantName: "Cafe",
			LeaseStatus: strp("Current"), FscStatus: models.FscStatusReceived,
			Priority: models.PriorityCritical, OpenDefects: 3, MajorDefects: 1},
		{StationId: station.ID, TenantName: "Florist",
			LeaseStatus: strp("Current"), FscStatus: models.FscStatusPending},
	}
	for i := range tenants {
		if err := app.db.Create(&tenants[i]).Error; err != nil {
			t.Fatalf("seed tenant: %v", err)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/stations", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var items []map[string]any
	decodeBody(t, w, &items)
	if len(items) != 1 {
		t.Fatalf("got %d stations, want 1", len(items))
	}
	got := items[0]
	if got["name"] != "Town Hall" {
		t.Errorf("name = %v", got["name"])
	}
	if got["tenant_count"] != float64(2) {
		t.Errorf("tenant_count = %v, want 2", got["tenant_count"])
	}
	if got["critical_count"] != float64(1) {
		t.Errorf("critical_count = %v, want 1", got["critical_count"])
	}
	if got["open_defects"] != float64(3) {
		t.Errorf("open_defects = %v, want 3", got["open_defects"])
	}
	// 1 received of 2 active tenants.
	if got["compliance_rate"] != float64(50.0) {
		t.Errorf("compliance_rate = %v, want 50", got["compliance_rate"])
	}

	// The detail view carries the same rollup plus the nested collections.
	w = doJSON(t, router, http.MethodGet, "/api/stations/"+strconv.Itoa(station.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail status = %d, body %s", w.Code, w.Body.String())
	}
	var detail map[string]any
	decodeBody(t, w, &detail)
	if detail["compliance_rate"] != float64(50.0) {
		t.Errorf("detail compliance_rate = %v, want 50", detail["compliance_rate"])
	}
	if detail["fsc_received"] != float64(1) || detail["fsc_outstanding"] != float64(1) {
		t.Errorf("fsc rollup = %v/%v, want 1/1", detail["fsc_received"], detail["fsc_outstanding"])
	}
	if n := len(detail["tenants"].([]any)); n != 2 {
		t.Errorf("detail tenants = %d, want 2", n)
	}
}

func TestUpdateTenantLogsActivity(t *testing.T) {
	app, router := newTestApp(t)

	station := models.Station{Name: "Central", State: "NSW"}
	if err := app.db.Create(&station).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}
	tenant := models.Tenant{StationId: station.ID, TenantName: "Kiosk",
		Priority: models.PriorityMedium, FscStatus: models.FscStatusPending}
	if err := app.db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	w := doJSON(t, router, http.MethodPut, "/api/tenants/"+strconv.Itoa(tenant.ID),
		gin.H{"priority": "Critical", "fsc_status": "Requested"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var updated map[string]any
	decodeBody(t, w, &updated)
	if updated["priority"] != "Critical" {
		t.Errorf("priority = %v, want Critical", updated["priority"])
	}
	if updated["station_name"] != "Central" {
		t.Errorf("station_name = %v, want Central", updated["station_name"])
	}

	var activities []*models.Activity
	if err := app.db.Find(&activities).Error; err != nil {
		t.Fatalf("load activities: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("got %d activities, want 1", len(activities))
	}
	desc := *activities[0].Description
	if !strings.Contains(desc, "Kiosk") {
		t.Errorf("description %q missing tenant name", desc)
	}
	if !strings.Contains(desc, "priority: Medium -> Critical") {
		t.Errorf("description %q missing priority change", desc)
	}
}

func TestUpdateTenantRejectsInvalidPriority(t *testing.T) {
	app, router := newTestApp(t)

	station := models.Station{Name: "Central", State: "NSW"}
	if err := app.db.Create(&station).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}
	tenant := models.Tenant{StationId: station.ID, TenantName: "Kiosk"}
	if err := app.db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	w := doJSON(t, router, http.MethodPut, "/api/tenants/"+strconv.Itoa(tenant.ID),
		gin.H{"priority": "Urgent"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateDefectTenantStationMismatch(t *testing.T) {
	app, router := newTestApp(t)

	a := models.Station{Name: "Alpha", State: "NSW"}
	b := models.Station{Name: "Beta", State: "NSW"}
	if err := app.db.Create(&a).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}
	if err := app.db.Create(&b).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}
	tenant := models.Tenant{StationId: a.ID, TenantName: "Cafe"}
	if err := app.db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/api/defects",
		gin.H{"site_name": "Beta", "station_id": b.ID, "tenant_id": tenant.ID})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/defects",
		gin.H{"site_name": "Alpha", "station_id": a.ID, "tenant_id": tenant.ID, "risk": "Major"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var created map[string]any
	decodeBody(t, w, &created)
	if created["risk"] != "Major" {
		t.Errorf("risk = %v, want Major", created["risk"])
	}
	if created["station_name"] != "Alpha" {
		t.Errorf("station_name = %v, want Alpha", created["station_name"])
	}
}

func TestDocumentUploadAndDelete(t *testing.T) {
	app, router := newTestApp(t)

	station := models.Station{Name: "Town Hall", State: "NSW"}
	if err := app.db.Create(&station).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "certificate.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 test")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := form.WriteField("station_id", strconv.Itoa(station.ID)); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := form.WriteField("category", "Fire Safety Certificate (FSC)"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", w.Code, w.Body.String())
	}

	var doc map[string]any
	decodeBody(t, w, &doc)
	if doc["original_filename"] != "certificate.pdf" {
		t.Errorf("original_filename = %v", doc["original_filename"])
	}
	if doc["category"] != "Fire Safety Certificate (FSC)" {
		t.Errorf("category = %v", doc["category"])
	}

	entries, err := os.ReadDir(app.uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("upload dir has %d files, want 1", len(entries))
	}
	stored := filepath.Join(app.uploadDir, entries[0].Name())

	id := int(doc["id"].(float64))
	w = doJSON(t, router, http.MethodDelete, "/api/documents/"+strconv.Itoa(id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Errorf("stored file %s still exists after delete", stored)
	}

	var count int64
	if err := app.db.Model(&models.Document{}).Count(&count).Error; err != nil {
		t.Fatalf("count documents: %v", err)
	}
	if count != 0 {
		t.Errorf("document rows = %d, want 0", count)
	}
}

func TestDocumentUploadRejectsOversize(t *testing.T) {
	app, router := newTestApp(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "huge.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{'x'}, maxUploadBytes+1)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}

	var count int64
	if err := app.db.Model(&models.Document{}).Count(&count).Error; err != nil {
		t.Fatalf("count documents: %v", err)
	}
	if count != 0 {
		t.Errorf("document rows = %d, want 0", count)
	}
	entries, err := os.ReadDir(app.uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d files, want 0", len(entries))
	}
}

func TestGlobalSearchMinLength(t *testing.T) {
	app, router := newTestApp(t)

	station := models.Station{Name: "Wollongong", State: "NSW"}
	if err := app.db.Create(&station).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/search?q=w", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var results searchResults
	decodeBody(t, w, &results)
	if len(results.Stations) != 0 {
		t.Errorf("single-char query returned %d stations, want 0", len(results.Stations))
	}

	w = doJSON(t, router, http.MethodGet, "/api/search?q=wollon", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	decodeBody(t, w, &results)
	if len(results.Stations) != 1 {
		t.Fatalf("got %d stations, want 1", len(results.Stations))
	}
	if results.Stations[0].Name != "Wollongong" {
		t.Errorf("station = %q", results.Stations[0].Name)
	}
}

func TestCorrelationIdHeader(t *testing.T) {
	_, router := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/document-categories", nil)
	req.Header.Set("x-correlation-id", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("x-correlation-id"); got != "abc-123" {
		t.Errorf("correlation id = %q, want the caller's abc-123", got)
	}

	w = doJSON(t, router, http.MethodGet, "/api/document-categories", nil)
	if w.Header().Get("x-correlation-id") == "" {
		t.Error("no correlation id generated for a request without one")
	}
}

func TestRouteNotFound(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(t, router, http.MethodGet, "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]string
	decodeBody(t, w, &body)
	if body["error"] != "route not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestExportTenantsCsvHeaders(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(t, router, http.MethodGet, "/api/export/tenants", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "tenants_export.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	firstLine := strings.SplitN(w.Body.String(), "\n", 2)[0]
	if !strings.HasPrefix(firstLine, "Station,Tenant Name,") {
		t.Errorf("csv header = %q", firstLine)
	}
}
