package main

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestExportData(t *testing.T) {
	router, h := setupHandlerTest(t, nil)
	if _, err := seedSampleData(context.Background(), h.store, testNow, fixedRand()); err != nil {
		t.Fatal(err)
	}

	w := doRequest(router, http.MethodGet, "/api/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="nutriai-export-2026-10-18.json"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	doc := decode[exportDocument](t, w)
	if doc.Profile == nil || doc.Goals == nil || len(doc.DailyNutrition) != 1 || len(doc.MealPlans) != 1 {
		t.Errorf("incomplete export %+v", doc)
	}
}

func TestExportImport_ThroughAPI(t *testing.T) {
	src, h := setupHandlerTest(t, nil)
	seedSampleData(context.Background(), h.store, testNow, fixedRand())
	body := doRequest(src, http.MethodGet, "/api/export", "").Body.String()

	dst, _ := setupHandlerTest(t, nil)
	w := doRequest(dst, http.MethodPost, "/api/import", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	imported := decode[struct {
		Imported []string `json:"imported"`
	}](t, w).Imported
	if len(imported) != 5 {
		t.Errorf("imported = %v, want 5 keys (no stats)", imported)
	}

	d := decode[dashboard](t, doRequest(dst, http.MethodGet, "/api/dashboard", ""))
	if d.Profile.ID != sampleProfileID || d.Score != 87 {
		t.Errorf("dashboard after import = %s / %d", d.Profile.ID, d.Score)
	}
}

func TestImportData_Partial(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)
	saveTestProfile(t, router)

	w := doRequest(router, http.MethodPost, "/api/import", `{"goals": {"calories": 2100, "protein": 100, "carbs": 250, "fats": 70, "fiber": 30}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if p := decode[userProfile](t, doRequest(router, http.MethodGet, "/api/profile", "")); p.Name != "Asha" {
		t.Errorf("profile replaced by partial import: %+v", p)
	}
	if g := decode[nutritionGoals](t, doRequest(router, http.MethodGet, "/api/goals", "")); g.Calories != 2100 {
		t.Errorf("goals not imported: %+v", g)
	}
}

func TestImportData_Validation(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	if w := doRequest(router, http.MethodPost, "/api/import", `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("malformed: expected 400, got %d", w.Code)
	}

	w := doRequest(router, http.MethodPost, "/api/import", `{"profile": {"name": "", "age": 30}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid profile: expected 400, got %d", w.Code)
	}
	if got := decode[map[string]string](t, w)["error"]; !strings.HasPrefix(got, "invalid profile: ") {
		t.Errorf("error = %q", got)
	}
}
