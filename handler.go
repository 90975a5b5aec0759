package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// errNoGoals is returned when a daily record is needed but no goals are saved yet.
var errNoGoals = errors.New("nutrition goals not set")

// Handler holds shared dependencies (store, AI client, websocket hub) for all route handlers.
type Handler struct {
	store kvStore
	ai    textGenerator
	hub   *dailyHub
	now   func() time.Time // overridable for tests
}

func newHandler(store kvStore, ai textGenerator, hub *dailyHub) *Handler {
	return &Handler{store: store, ai: ai, hub: hub, now: time.Now}
}

// today returns the current date in dateLayout.
func (h *Handler) today() string {
	return h.now().Format(dateLayout)
}

/* ─── Response helpers ───────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// apiFailure logs err and returns {"error": message, "details": err}.
// Used where the caller is shown the underlying cause of a 5xx.
func apiFailure(c *gin.Context, status int, message string, err error) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

// internalError logs err and returns a plain {"error": message}.
func internalError(c *gin.Context, message string, err error) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	apiError(c, http.StatusInternalServerError, message)
}

// dateParam reads a YYYY-MM-DD query parameter, defaulting to today.
// On a malformed value it writes a 400 and returns ok=false.
func (h *Handler) dateParam(c *gin.Context) (string, bool) {
	date := c.DefaultQuery("date", h.today())
	if _, err := time.Parse(dateLayout, date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return "", false
	}
	return date, true
}

/* ─── Server setup ───────────────────────────────────────────────────── */

// requestLogger writes one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		if status >= http.StatusInternalServerError {
			evt = log.Error()
		} else if status >= http.StatusBadRequest {
			evt = log.Warn()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// AI endpoints
	api.GET("/meal-plan", h.mealPlanUsage)
	api.POST("/meal-plan", h.postMealPlan)
	api.GET("/exercise", h.exerciseUsage)
	api.POST("/exercise", h.postExercise)
	api.GET("/nutrition", h.nutritionUsage)
	api.POST("/nutrition", h.postNutrition)

	// Profile & goals
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.DELETE("/profile", h.deleteProfile)
	api.GET("/goals", h.getGoals)

	// Daily log
	api.GET("/daily", h.getDaily)
	api.POST("/daily/meals", h.createMeal)
	api.DELETE("/daily/meals/:id", h.deleteMeal)
	api.GET("/dashboard", h.getDashboard)
	api.GET("/trends", h.getTrends)
	api.PUT("/trends/:date", h.putTrend)
	api.GET("/ws/daily", h.serveDailyUpdates)

	// Stats
	api.GET("/stats", h.getStats)
	api.PUT("/stats", h.putStats)
	api.POST("/stats/weight", h.logWeight)

	// Meal plans
	api.GET("/meal-plans", h.listMealPlans)
	api.POST("/meal-plans", h.saveMealPlan)
	api.GET("/meal-plans/:id", h.getMealPlan)
	api.DELETE("/meal-plans/:id", h.deleteMealPlan)

	// Data portability
	api.GET("/export", h.exportData)
	api.POST("/import", h.importData)
	api.POST("/sample-data", h.loadSampleData)
	api.DELETE("/sample-data", h.clearSampleData)
}
