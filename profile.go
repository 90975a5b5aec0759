package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getProfile returns the saved user profile.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	p, ok, err := loadJSON[userProfile](c, h.store, keyUserProfile)
	if err != nil {
		internalError(c, "failed to fetch profile", err)
		return
	}
	if !ok {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// putProfile validates and saves the profile, then derives and saves goals.
// PUT /api/profile. The id and createdAt of an existing profile are kept;
// everything else is replaced. Returns { profile, goals }.
func (h *Handler) putProfile(c *gin.Context) {
	var body userProfile
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProfile(body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	existing, ok, err := loadJSON[userProfile](c, h.store, keyUserProfile)
	if err != nil {
		internalError(c, "failed to fetch profile", err)
		return
	}
	now := h.now().UTC()
	if ok {
		body.ID = existing.ID
		body.CreatedAt = existing.CreatedAt
	} else {
		body.ID = uuid.New().String()
		body.CreatedAt = now
	}
	body.UpdatedAt = now
	if body.HealthIssues == nil {
		body.HealthIssues = []string{}
	}

	goals := computeGoals(body)
	if err := saveJSON(c, h.store, keyUserProfile, body); err != nil {
		internalError(c, "failed to save profile", err)
		return
	}
	if err := saveJSON(c, h.store, keyNutritionGoals, goals); err != nil {
		internalError(c, "failed to save goals", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": body, "goals": goals})
}

// deleteProfile resets the app: every stored key is removed. Returns 204.
// DELETE /api/profile.
func (h *Handler) deleteProfile(c *gin.Context) {
	if err := clearAll(c, h.store); err != nil {
		internalError(c, "failed to clear data", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getGoals returns the goals derived from the last saved profile.
// GET /api/goals.
func (h *Handler) getGoals(c *gin.Context) {
	g, ok, err := loadJSON[nutritionGoals](c, h.store, keyNutritionGoals)
	if err != nil {
		internalError(c, "failed to fetch goals", err)
		return
	}
	if !ok {
		apiError(c, http.StatusNotFound, "nutrition goals not found")
		return
	}
	c.JSON(http.StatusOK, g)
}
