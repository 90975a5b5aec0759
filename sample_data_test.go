package main

import (
	"context"
	"net/http"
	"testing"
)

func TestSampleTrends(t *testing.T) {
	trends := sampleTrends(testNow, fixedRand())
	if len(trends) != 7 {
		t.Fatalf("got %d points, want 7", len(trends))
	}
	for date, pt := range trends {
		if pt.Date != date {
			t.Errorf("point keyed %s has date %s", date, pt.Date)
		}
		if pt.Calories < 1600 || pt.Calories > 2000 || pt.ProteinG < 70 || pt.ProteinG > 110 || pt.Score < 75 || pt.Score > 100 {
			t.Errorf("%s out of range: %+v", date, pt)
		}
	}
	if w := trends["2026-10-18"].WeightKG; w == nil || *w != 65 {
		t.Errorf("today's weight = %v, want 65", w)
	}
	if w := trends["2026-10-12"].WeightKG; w == nil || *w < 64.85 || *w > 64.95 {
		t.Errorf("six days ago weight = %v, want about 64.9", w)
	}
}

func TestSeedSampleData_TodayMatchesRecord(t *testing.T) {
	s := newMemStore()
	day, err := seedSampleData(context.Background(), s, testNow, fixedRand())
	if err != nil {
		t.Fatalf("seedSampleData: %v", err)
	}
	if day.Score != 87 || day.Consumed.Calories != 1430 {
		t.Errorf("sample day = %+v", day)
	}
	trends, _ := loadMap[trendPoint](context.Background(), s, keyNutritionTrends)
	today := trends[day.Date]
	if today.Calories != 1430 || today.ProteinG != 56 || today.Score != 87 {
		t.Errorf("today's trend point = %+v, want the record's values", today)
	}
}

func TestSampleData_LoadAndClear(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	w := doRequest(router, http.MethodPost, "/api/sample-data", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[struct {
		Profile userProfile    `json:"profile"`
		Goals   nutritionGoals `json:"goals"`
		Daily   dailyRecord    `json:"daily"`
	}](t, w)
	if resp.Profile.ID != sampleProfileID || resp.Goals.Calories != 1800 || len(resp.Daily.Meals) != 4 {
		t.Errorf("unexpected sample response %+v", resp)
	}

	plans := decode[[]mealPlan](t, doRequest(router, http.MethodGet, "/api/meal-plans", ""))
	if len(plans) != 1 || plans[0].ID != "plan_001" {
		t.Errorf("meal plans = %+v", plans)
	}

	if w := doRequest(router, http.MethodDelete, "/api/sample-data", ""); w.Code != http.StatusNoContent {
		t.Fatalf("clear: expected 204, got %d", w.Code)
	}
	if w := doRequest(router, http.MethodGet, "/api/profile", ""); w.Code != http.StatusNotFound {
		t.Errorf("profile still present after clear: %d", w.Code)
	}
}

func TestClearSampleData_KeepsRealProfile(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	if w := doRequest(router, http.MethodDelete, "/api/sample-data", ""); w.Code != http.StatusConflict {
		t.Errorf("no profile: expected 409, got %d", w.Code)
	}

	saveTestProfile(t, router)
	w := doRequest(router, http.MethodDelete, "/api/sample-data", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("real profile: expected 409, got %d", w.Code)
	}
	if got := decode[map[string]string](t, w)["error"]; got != "sample data is not active" {
		t.Errorf("error = %q", got)
	}
	if w := doRequest(router, http.MethodGet, "/api/profile", ""); w.Code != http.StatusOK {
		t.Errorf("real profile removed: %d", w.Code)
	}
}
