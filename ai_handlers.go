package main

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

/* ─── Usage documents (GET) ──────────────────────────────────────────── */

func (h *Handler) mealPlanUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AI Meal Plan generation API endpoint",
		"usage":   "POST with { userProfile: UserProfile, nutritionGoals: NutritionGoals }",
		"example": gin.H{
			"userProfile": gin.H{
				"name":           "John Doe",
				"age":            30,
				"gender":         "male",
				"dietPreference": "vegetarian",
				"region":         "north_indian",
				"goal":           "weight_loss",
				"healthIssues":   []string{},
			},
			"nutritionGoals": gin.H{"calories": 2000, "protein": 80, "carbs": 250, "fats": 67},
		},
	})
}

func (h *Handler) exerciseUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Exercise recommendations API endpoint",
		"usage":   "POST with { userProfile: UserProfile }",
		"example": gin.H{
			"userProfile": gin.H{
				"name":          "John Doe",
				"age":           30,
				"gender":        "male",
				"goal":          "weight_loss",
				"activityLevel": "moderate",
				"healthIssues":  []string{"back_pain"},
			},
		},
	})
}

func (h *Handler) nutritionUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Nutrition analysis API endpoint",
		"usage":   "POST with { mealDescription: string }",
		"example": gin.H{"mealDescription": "2 roti with dal tadka and mixed vegetables"},
	})
}

/* ─── Generation (POST) ──────────────────────────────────────────────── */

// postMealPlan generates a full-day meal plan for the given profile and goals.
// POST /api/meal-plan. Body: { userProfile, nutritionGoals }.
// A failed AI call returns the default plan; an unparseable completion is a 500.
func (h *Handler) postMealPlan(c *gin.Context) {
	var body struct {
		UserProfile    *userProfile    `json:"userProfile"`
		NutritionGoals *nutritionGoals `json:"nutritionGoals"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserProfile == nil || body.NutritionGoals == nil {
		apiError(c, http.StatusBadRequest, "User profile and nutrition goals are required")
		return
	}
	p, g := *body.UserProfile, *body.NutritionGoals
	if p.Name == "" || p.Age == 0 || p.DietPreference == "" {
		apiError(c, http.StatusBadRequest, "Missing required user profile fields (name, age, dietPreference)")
		return
	}
	if g.Calories == 0 || g.ProteinG == 0 {
		apiError(c, http.StatusBadRequest, "Missing required nutrition goals (calories, protein)")
		return
	}

	plan, err := generateMealPlan(c.Request.Context(), h.ai, p, g, h.now())
	if err != nil {
		apiFailure(c, http.StatusInternalServerError, "Failed to generate meal plan. Please try again.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "mealPlan": plan})
}

// postExercise returns five exercise suggestions for the profile.
// POST /api/exercise. Body: { userProfile }.
func (h *Handler) postExercise(c *gin.Context) {
	var body struct {
		UserProfile *userProfile `json:"userProfile"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserProfile == nil {
		apiError(c, http.StatusBadRequest, "User profile is required")
		return
	}
	p := *body.UserProfile
	if p.Age == 0 || p.Gender == "" || p.Goal == "" {
		apiError(c, http.StatusBadRequest, "Missing required user profile fields (age, gender, goal)")
		return
	}

	exercises := suggestExercises(c.Request.Context(), h.ai, p)
	c.JSON(http.StatusOK, gin.H{"success": true, "exercises": exercises})
}

// postNutrition estimates the nutrition of a free-text meal description.
// POST /api/nutrition. Body: { mealDescription: string }.
func (h *Handler) postNutrition(c *gin.Context) {
	var body struct {
		MealDescription json.RawMessage `json:"mealDescription"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	// Must be a non-empty JSON string; numbers, objects and null are rejected.
	var description string
	if err := json.Unmarshal(body.MealDescription, &description); err != nil || description == "" {
		apiError(c, http.StatusBadRequest, "Meal description is required and must be a string")
		return
	}

	nutrition := analyzeMealNutrition(c.Request.Context(), h.ai, description)
	c.JSON(http.StatusOK, gin.H{"success": true, "nutrition": nutrition})
}
