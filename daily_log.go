package main

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// dashboardTrendDays is how many trend points the dashboard includes.
const dashboardTrendDays = 7

/* ─── Store access ───────────────────────────────────────────────────── */

// loadDay returns the record for date together with the full date-keyed map.
// A missing record is created with initDay from the saved goals and persisted;
// errNoGoals is returned when there are no goals to snapshot.
func (h *Handler) loadDay(ctx context.Context, date string) (dailyRecord, map[string]dailyRecord, error) {
	days, err := loadMap[dailyRecord](ctx, h.store, keyDailyNutrition)
	if err != nil {
		return dailyRecord{}, nil, err
	}
	if r, ok := days[date]; ok {
		if r.Meals == nil {
			r.Meals = []mealEntry{}
		}
		return r, days, nil
	}

	goals, ok, err := loadJSON[nutritionGoals](ctx, h.store, keyNutritionGoals)
	if err != nil {
		return dailyRecord{}, nil, err
	}
	if !ok {
		return dailyRecord{}, nil, errNoGoals
	}
	r := initDay(date, goals)
	days[date] = r
	if err := saveJSON(ctx, h.store, keyDailyNutrition, days); err != nil {
		return dailyRecord{}, nil, err
	}
	return r, days, nil
}

// saveDay stores r into days and records its trend point.
func (h *Handler) saveDay(ctx context.Context, days map[string]dailyRecord, r dailyRecord) error {
	days[r.Date] = r
	if err := saveJSON(ctx, h.store, keyDailyNutrition, days); err != nil {
		return err
	}
	return h.recordTrend(ctx, r)
}

// recordTrend upserts the trend point for a record's date. A weight already
// stored on that point is kept.
func (h *Handler) recordTrend(ctx context.Context, r dailyRecord) error {
	trends, err := loadMap[trendPoint](ctx, h.store, keyNutritionTrends)
	if err != nil {
		return err
	}
	pt := trends[r.Date]
	pt.Date = r.Date
	pt.Calories = r.Consumed.Calories
	pt.ProteinG = r.Consumed.ProteinG
	pt.Score = r.Score
	trends[r.Date] = pt
	return saveJSON(ctx, h.store, keyNutritionTrends, trends)
}

// lastTrends returns up to n trend points, ascending by date.
func lastTrends(trends map[string]trendPoint, n int) []trendPoint {
	out := make([]trendPoint, 0, len(trends))
	for _, pt := range trends {
		out = append(out, pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

/* ─── Daily record ───────────────────────────────────────────────────── */

// getDaily returns the record for a date, creating it from current goals on first access.
// GET /api/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDaily(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	r, _, err := h.loadDay(c, date)
	if errors.Is(err, errNoGoals) {
		apiError(c, http.StatusNotFound, "nutrition goals not set, save a profile first")
		return
	}
	if err != nil {
		internalError(c, "failed to fetch daily record", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// createMeal logs a meal on a date and recomputes that day's totals.
// POST /api/daily/meals. Defaults date to today and time to now.
// Returns 201 with { meal, daily }.
func (h *Handler) createMeal(c *gin.Context) {
	var body createMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		apiError(c, http.StatusBadRequest, "name is required")
		return
	}
	if !validMealTypes[body.Type] {
		apiError(c, http.StatusBadRequest, "type must be one of: breakfast, lunch, dinner, snack")
		return
	}
	if body.Nutrition.negative() {
		apiError(c, http.StatusBadRequest, "nutrition values must not be negative")
		return
	}
	now := h.now()
	if body.Date == "" {
		body.Date = now.Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.Time == "" {
		body.Time = now.Format("15:04")
	} else if _, err := time.Parse("15:04", body.Time); err != nil {
		apiError(c, http.StatusBadRequest, "invalid time, expected HH:MM")
		return
	}

	r, days, err := h.loadDay(c, body.Date)
	if errors.Is(err, errNoGoals) {
		apiError(c, http.StatusNotFound, "nutrition goals not set, save a profile first")
		return
	}
	if err != nil {
		internalError(c, "failed to fetch daily record", err)
		return
	}

	meal := mealEntry{
		ID:          uuid.New().String(),
		Type:        body.Type,
		Name:        body.Name,
		Description: body.Description,
		Time:        body.Time,
		Nutrition:   body.Nutrition,
		ImageURL:    body.ImageURL,
		CreatedAt:   now.UTC(),
	}
	updated, err := addMeal(r, meal)
	if err != nil {
		internalError(c, "failed to score daily record", err)
		return
	}
	if err := h.saveDay(c, days, updated); err != nil {
		internalError(c, "failed to save daily record", err)
		return
	}
	h.hub.publish(updated)

	c.JSON(http.StatusCreated, gin.H{"meal": meal, "daily": updated})
}

// deleteMeal removes a meal from a date and recomputes that day's totals.
// DELETE /api/daily/meals/:id?date=YYYY-MM-DD (defaults to today).
func (h *Handler) deleteMeal(c *gin.Context) {
	id := c.Param("id")
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	days, err := loadMap[dailyRecord](c, h.store, keyDailyNutrition)
	if err != nil {
		internalError(c, "failed to fetch daily record", err)
		return
	}
	r, ok := days[date]
	if !ok {
		apiError(c, http.StatusNotFound, "meal not found")
		return
	}
	updated, found, err := removeMeal(r, id)
	if err != nil {
		internalError(c, "failed to score daily record", err)
		return
	}
	if !found {
		apiError(c, http.StatusNotFound, "meal not found")
		return
	}
	if err := h.saveDay(c, days, updated); err != nil {
		internalError(c, "failed to save daily record", err)
		return
	}
	h.hub.publish(updated)

	c.JSON(http.StatusOK, updated)
}

/* ─── Dashboard ──────────────────────────────────────────────────────── */

// getDashboard returns everything the home screen shows for one date.
// GET /api/dashboard?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDashboard(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	profile, ok, err := loadJSON[userProfile](c, h.store, keyUserProfile)
	if err != nil {
		internalError(c, "failed to fetch profile", err)
		return
	}
	if !ok {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	goals, ok, err := loadJSON[nutritionGoals](c, h.store, keyNutritionGoals)
	if err != nil {
		internalError(c, "failed to fetch goals", err)
		return
	}
	if !ok {
		apiError(c, http.StatusNotFound, "nutrition goals not found")
		return
	}

	r, _, err := h.loadDay(c, date)
	if err != nil {
		internalError(c, "failed to fetch daily record", err)
		return
	}
	score, err := nutritionScore(r.Target, r.Consumed)
	if err != nil {
		internalError(c, "failed to score daily record", err)
		return
	}
	trends, err := loadMap[trendPoint](c, h.store, keyNutritionTrends)
	if err != nil {
		internalError(c, "failed to fetch trends", err)
		return
	}

	c.JSON(http.StatusOK, dashboard{
		Profile:           profile,
		Goals:             goals,
		Daily:             r,
		Score:             score,
		ScoreBand:         scoreBand(score),
		Recommendations:   recommendations(r.Target, r.Consumed, profile.DietPreference),
		MacroDistribution: macroSplit(r.Consumed),
		MealTimeline:      mealTimeline(r.Meals),
		Trends:            lastTrends(trends, dashboardTrendDays),
	})
}

/* ─── Trends ─────────────────────────────────────────────────────────── */

// getTrends returns the most recent trend points, ascending by date.
// GET /api/trends?days=N (default 7, max 365).
func (h *Handler) getTrends(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > 365 {
		apiError(c, http.StatusBadRequest, "days must be an integer between 1 and 365")
		return
	}
	trends, err := loadMap[trendPoint](c, h.store, keyNutritionTrends)
	if err != nil {
		internalError(c, "failed to fetch trends", err)
		return
	}
	c.JSON(http.StatusOK, lastTrends(trends, days))
}

// putTrend creates or replaces the trend point for a date.
// PUT /api/trends/:date. The date in the path wins over any date in the body.
func (h *Handler) putTrend(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	var body trendPoint
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Calories < 0 || body.ProteinG < 0 || body.Score < 0 || body.Score > maxWeightedScore {
		apiError(c, http.StatusBadRequest, "calories and protein must not be negative, score must be 0-104")
		return
	}
	body.Date = date

	trends, err := loadMap[trendPoint](c, h.store, keyNutritionTrends)
	if err != nil {
		internalError(c, "failed to fetch trends", err)
		return
	}
	trends[date] = body
	if err := saveJSON(c, h.store, keyNutritionTrends, trends); err != nil {
		internalError(c, "failed to save trend", err)
		return
	}
	c.JSON(http.StatusOK, body)
}
