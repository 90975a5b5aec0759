package main

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// testNow is the fixed clock used by handler tests.
var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func fixedRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// fakeGenerator returns text or err for every call and records the last prompt.
type fakeGenerator struct {
	text       string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeGenerator) GenerateText(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystem, f.lastUser = systemPrompt, userPrompt
	return f.text, f.err
}

// setupHandlerTest builds a router over an in-memory store with a fixed clock.
func setupHandlerTest(t *testing.T, gen textGenerator) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if gen == nil {
		gen = &fakeGenerator{err: &serviceError{Err: io.EOF}}
	}
	h := newHandler(newMemStore(), gen, newDailyHub())
	h.now = func() time.Time { return testNow }
	router := gin.New()
	h.registerRoutes(router)
	return router, h
}

// doRequest sends a request with an optional JSON body and returns the recorder.
func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response body into T, failing the test on error.
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

// mustJSON encodes v for use as a request body.
func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	return string(b)
}

const testProfileJSON = `{
	"name": "Asha", "age": 28, "gender": "female", "height": 160, "weight": 65,
	"activityLevel": "moderate", "goal": "weight_loss", "dietPreference": "vegetarian",
	"region": "north_indian"
}`

// saveTestProfile stores testProfileJSON through the API and returns the derived goals.
func saveTestProfile(t *testing.T, router *gin.Engine) nutritionGoals {
	t.Helper()
	w := doRequest(router, http.MethodPut, "/api/profile", testProfileJSON)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT /api/profile: %d %s", w.Code, w.Body.String())
	}
	return decode[struct {
		Goals nutritionGoals `json:"goals"`
	}](t, w).Goals
}

/* ─── Helpers ────────────────────────────────────────────────────────── */

func TestDateParam(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)
	saveTestProfile(t, router)

	w := doRequest(router, http.MethodGet, "/api/daily?date=18-10-2026", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}
	if got := decode[map[string]string](t, w)["error"]; !strings.Contains(got, "YYYY-MM-DD") {
		t.Errorf("error = %q", got)
	}

	w = doRequest(router, http.MethodGet, "/api/daily", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/daily: %d %s", w.Code, w.Body.String())
	}
	if d := decode[dailyRecord](t, w); d.Date != "2026-10-18" {
		t.Errorf("default date = %q, want today", d.Date)
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(requestLogger())
	router.GET("/teapot", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := doRequest(router, http.MethodGet, "/teapot", "")
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", w.Code)
	}
}
