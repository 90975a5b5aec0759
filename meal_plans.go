package main

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// listMealPlans returns saved meal plans, newest first.
// GET /api/meal-plans. Returns an empty array (not null) when none are saved.
func (h *Handler) listMealPlans(c *gin.Context) {
	plans, err := loadMap[mealPlan](c, h.store, keyMealPlans)
	if err != nil {
		internalError(c, "failed to fetch meal plans", err)
		return
	}
	out := make([]mealPlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	c.JSON(http.StatusOK, out)
}

// saveMealPlan stores a plan, typically one returned by POST /api/meal-plan.
// POST /api/meal-plans. Assigns an id and createdAt when missing, and computes
// totalNutrition from the dishes when the plan carries none.
func (h *Handler) saveMealPlan(c *gin.Context) {
	var body mealPlan
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		apiError(c, http.StatusBadRequest, "title is required")
		return
	}
	if body.ID == "" {
		body.ID = uuid.New().String()
	}
	if body.CreatedAt.IsZero() {
		body.CreatedAt = h.now().UTC()
	}
	body.Meals = normalizeMeals(body.Meals)
	if body.TotalNutrition == (nutritionAmounts{}) {
		body.TotalNutrition = planTotals(body.Meals)
	}

	plans, err := loadMap[mealPlan](c, h.store, keyMealPlans)
	if err != nil {
		internalError(c, "failed to fetch meal plans", err)
		return
	}
	plans[body.ID] = body
	if err := saveJSON(c, h.store, keyMealPlans, plans); err != nil {
		internalError(c, "failed to save meal plan", err)
		return
	}
	c.JSON(http.StatusCreated, body)
}

// getMealPlan returns one saved plan.
// GET /api/meal-plans/:id.
func (h *Handler) getMealPlan(c *gin.Context) {
	plans, err := loadMap[mealPlan](c, h.store, keyMealPlans)
	if err != nil {
		internalError(c, "failed to fetch meal plans", err)
		return
	}
	p, ok := plans[c.Param("id")]
	if !ok {
		apiError(c, http.StatusNotFound, "meal plan not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// deleteMealPlan removes a saved plan. Returns 204 on success.
// DELETE /api/meal-plans/:id.
func (h *Handler) deleteMealPlan(c *gin.Context) {
	id := c.Param("id")
	plans, err := loadMap[mealPlan](c, h.store, keyMealPlans)
	if err != nil {
		internalError(c, "failed to fetch meal plans", err)
		return
	}
	if _, ok := plans[id]; !ok {
		apiError(c, http.StatusNotFound, "meal plan not found")
		return
	}
	delete(plans, id)
	if err := saveJSON(c, h.store, keyMealPlans, plans); err != nil {
		internalError(c, "failed to delete meal plan", err)
		return
	}
	c.Status(http.StatusNoContent)
}
