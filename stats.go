package main

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// loadStats returns the saved stats, or empty stats seeded with the profile's
// weight when none are saved yet.
func (h *Handler) loadStats(c *gin.Context) (userStats, error) {
	s, ok, err := loadJSON[userStats](c, h.store, keyUserStats)
	if err != nil {
		return userStats{}, err
	}
	if !ok {
		p, hasProfile, err := loadJSON[userProfile](c, h.store, keyUserProfile)
		if err != nil {
			return userStats{}, err
		}
		if hasProfile {
			s.CurrentWeight = p.WeightKG
		}
	}
	if s.WeightHistory == nil {
		s.WeightHistory = []weightEntry{}
	}
	return s, nil
}

// getStats returns weight tracking and streak counters.
// GET /api/stats.
func (h *Handler) getStats(c *gin.Context) {
	s, err := h.loadStats(c)
	if err != nil {
		internalError(c, "failed to fetch stats", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// putStats replaces the stored stats.
// PUT /api/stats.
func (h *Handler) putStats(c *gin.Context) {
	var body userStats
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.CurrentWeight < 0 || body.NutritionStreak < 0 || body.GoalsAchieved < 0 ||
		(body.TargetWeight != nil && *body.TargetWeight <= 0) {
		apiError(c, http.StatusBadRequest, "stats values must not be negative")
		return
	}
	for _, e := range body.WeightHistory {
		if _, err := time.Parse(dateLayout, e.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid weight history date, expected YYYY-MM-DD")
			return
		}
	}
	if body.WeightHistory == nil {
		body.WeightHistory = []weightEntry{}
	}
	sort.SliceStable(body.WeightHistory, func(i, j int) bool {
		return body.WeightHistory[i].Date < body.WeightHistory[j].Date
	})

	if err := saveJSON(c, h.store, keyUserStats, body); err != nil {
		internalError(c, "failed to save stats", err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// logWeight creates or updates the weight entry for a date.
// POST /api/stats/weight. Body: { "date"?: "YYYY-MM-DD", "weight": 64.2, "notes"? }.
// Posting the same date replaces that entry. currentWeight follows the latest
// dated entry, and the weight is copied onto that date's trend point.
func (h *Handler) logWeight(c *gin.Context) {
	var body weightLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = h.today()
	}
	if _, err := time.Parse(dateLayout, body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.WeightKG < minWeightKG || body.WeightKG > maxWeightKG {
		apiError(c, http.StatusBadRequest, "weight must be between 10 and 400 kg")
		return
	}

	s, err := h.loadStats(c)
	if err != nil {
		internalError(c, "failed to fetch stats", err)
		return
	}
	s.WeightHistory = upsertWeight(s.WeightHistory, weightEntry{
		Date:     body.Date,
		WeightKG: body.WeightKG,
		Notes:    body.Notes,
	})
	s.CurrentWeight = s.WeightHistory[len(s.WeightHistory)-1].WeightKG

	if err := saveJSON(c, h.store, keyUserStats, s); err != nil {
		internalError(c, "failed to save stats", err)
		return
	}

	trends, err := loadMap[trendPoint](c, h.store, keyNutritionTrends)
	if err != nil {
		internalError(c, "failed to fetch trends", err)
		return
	}
	pt := trends[body.Date]
	pt.Date = body.Date
	pt.WeightKG = floatPtr(body.WeightKG)
	trends[body.Date] = pt
	if err := saveJSON(c, h.store, keyNutritionTrends, trends); err != nil {
		internalError(c, "failed to save trend", err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

// upsertWeight replaces the entry with the same date or inserts e, keeping the
// history sorted by date.
func upsertWeight(history []weightEntry, e weightEntry) []weightEntry {
	out := make([]weightEntry, 0, len(history)+1)
	for _, h := range history {
		if h.Date != e.Date {
			out = append(out, h)
		}
	}
	out = append(out, e)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
