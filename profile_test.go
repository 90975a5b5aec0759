package main

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestProfile_NotFoundBeforeSave(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	for path, want := range map[string]string{
		"/api/profile": "profile not found",
		"/api/goals":   "nutrition goals not found",
	} {
		w := doRequest(router, http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, w.Code)
			continue
		}
		if got := decode[map[string]string](t, w)["error"]; got != want {
			t.Errorf("GET %s: error = %q, want %q", path, got, want)
		}
	}
}

func TestPutProfile_DerivesGoals(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	goals := saveTestProfile(t, router)
	want := nutritionGoals{Calories: 1777, ProteinG: 89, CarbsG: 267, FatsG: 39, FiberG: 25, BMR: 1349, TDEE: 2091}
	if goals != want {
		t.Errorf("goals = %+v, want %+v", goals, want)
	}

	w := doRequest(router, http.MethodGet, "/api/goals", "")
	if w.Code != http.StatusOK || decode[nutritionGoals](t, w) != want {
		t.Errorf("GET /api/goals: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/api/profile", "")
	p := decode[userProfile](t, w)
	if p.ID == "" || p.Name != "Asha" || !p.CreatedAt.Equal(testNow) || p.HealthIssues == nil {
		t.Errorf("unexpected stored profile %+v", p)
	}
}

func TestPutProfile_UpdateKeepsIdentity(t *testing.T) {
	router, h := setupHandlerTest(t, nil)
	saveTestProfile(t, router)
	first := decode[userProfile](t, doRequest(router, http.MethodGet, "/api/profile", ""))

	later := testNow.Add(48 * time.Hour)
	h.now = func() time.Time { return later }
	body := strings.Replace(testProfileJSON, `"weight": 65`, `"weight": 60`, 1)
	w := doRequest(router, http.MethodPut, "/api/profile", body)
	if w.Code != http.StatusOK {
		t.Fatalf("second PUT: %d %s", w.Code, w.Body.String())
	}
	resp := decode[struct {
		Profile userProfile    `json:"profile"`
		Goals   nutritionGoals `json:"goals"`
	}](t, w)

	if resp.Profile.ID != first.ID || !resp.Profile.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("identity changed: %s/%v -> %s/%v", first.ID, first.CreatedAt, resp.Profile.ID, resp.Profile.CreatedAt)
	}
	if !resp.Profile.UpdatedAt.Equal(later) {
		t.Errorf("updatedAt = %v, want %v", resp.Profile.UpdatedAt, later)
	}
	// 5kg less lowers BMR by 50.
	if resp.Goals.BMR != 1299 {
		t.Errorf("recomputed BMR = %v, want 1299", resp.Goals.BMR)
	}
}

func TestPutProfile_Validation(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	for name, body := range map[string]string{
		"malformed":   `{"name":`,
		"bad gender":  strings.Replace(testProfileJSON, `"female"`, `"unknown"`, 1),
		"bad diet":    strings.Replace(testProfileJSON, `"vegetarian"`, `"keto"`, 1),
		"zero height": strings.Replace(testProfileJSON, `"height": 160`, `"height": 0`, 1),
	} {
		w := doRequest(router, http.MethodPut, "/api/profile", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
	}
	if w := doRequest(router, http.MethodGet, "/api/profile", ""); w.Code != http.StatusNotFound {
		t.Errorf("invalid PUT stored a profile: %d", w.Code)
	}
}

func TestDeleteProfile_ClearsEverything(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)
	saveTestProfile(t, router)
	doRequest(router, http.MethodPost, "/api/daily/meals", `{"type":"lunch","name":"Thali","nutrition":{"calories":600}}`)

	w := doRequest(router, http.MethodDelete, "/api/profile", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	for _, path := range []string{"/api/profile", "/api/goals", "/api/daily"} {
		if w := doRequest(router, http.MethodGet, path, ""); w.Code != http.StatusNotFound {
			t.Errorf("GET %s after reset: %d", path, w.Code)
		}
	}
}
