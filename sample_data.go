package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// sampleProfileID marks the demo profile; clearing sample data checks for it.
const sampleProfileID = "sample_user_001"

func sampleProfile(now time.Time) userProfile {
	return userProfile{
		ID:             sampleProfileID,
		Name:           "Priya Sharma",
		Age:            28,
		Gender:         "female",
		HeightCM:       160,
		WeightKG:       65,
		ActivityLevel:  "moderate",
		Goal:           "weight_loss",
		DietPreference: "vegetarian",
		Region:         "north_indian",
		HealthIssues:   []string{"PCOS"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// sampleGoals are fixed round numbers rather than computeGoals output.
func sampleGoals() nutritionGoals {
	return nutritionGoals{Calories: 1800, ProteinG: 90, CarbsG: 200, FatsG: 60, FiberG: 25, BMR: 1350, TDEE: 2100}
}

func sampleMeals(now time.Time) []mealEntry {
	meal := func(id, typ, name, desc, at string, cal, protein, carbs, fats, fiber float64) mealEntry {
		return mealEntry{
			ID:          id,
			Type:        typ,
			Name:        name,
			Description: desc,
			Time:        at,
			Nutrition:   nutritionAmounts{Calories: cal, ProteinG: protein, CarbsG: carbs, FatsG: fats, FiberG: fiber},
			CreatedAt:   now,
		}
	}
	return []mealEntry{
		meal("meal_001", "breakfast", "Poha with Vegetables",
			"Flattened rice with onions, peas, and curry leaves", "08:00", 280, 6, 52, 5, 4),
		meal("meal_002", "lunch", "Dal Rice with Mixed Vegetables",
			"Toor dal, basmati rice, and seasonal vegetable curry", "13:00", 520, 22, 85, 8, 12),
		meal("meal_003", "snack", "Masala Chai with Biscuits",
			"Traditional Indian tea with 2 digestive biscuits", "16:30", 150, 3, 25, 4, 1),
		meal("meal_004", "dinner", "Roti with Paneer Curry",
			"2 whole wheat rotis with paneer makhani and salad", "20:00", 480, 25, 45, 22, 8),
	}
}

// sampleTrends returns seven points ending today: calories 1600-2000,
// protein 70-110 g, score 75-100 and a slight downward weight trend.
func sampleTrends(today time.Time, rng *rand.Rand) map[string]trendPoint {
	trends := make(map[string]trendPoint, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		weight := 65.0
		if i > 0 {
			weight = 65.5 - float64(i)*0.1
		}
		trends[date] = trendPoint{
			Date:     date,
			Calories: float64(1600 + rng.IntN(401)),
			ProteinG: float64(70 + rng.IntN(41)),
			Score:    75 + rng.IntN(26),
			WeightKG: floatPtr(weight),
		}
	}
	return trends
}

func sampleMealPlan(now time.Time) mealPlan {
	return mealPlan{
		ID:             "plan_001",
		Title:          "Balanced North Indian Vegetarian Plan",
		Description:    "A well-balanced meal plan featuring traditional North Indian vegetarian dishes",
		TotalNutrition: nutritionAmounts{Calories: 1800, ProteinG: 85, CarbsG: 220, FatsG: 65, FiberG: 30},
		Meals: mealPlanMeals{
			Breakfast: []mealSuggestion{{
				Name: "Vegetable Upma", Description: "Semolina cooked with mixed vegetables and spices",
				Calories: 320, ProteinG: 8, CarbsG: 55, FatsG: 8, FiberG: 5,
				Ingredients:  []string{"Semolina", "Mixed vegetables", "Mustard seeds", "Curry leaves"},
				Instructions: []string{"Heat oil", "Add mustard seeds", "Add vegetables", "Add semolina and water"},
				PrepTime:     20, Region: "south_indian",
			}},
			Lunch: []mealSuggestion{{
				Name: "Rajma Chawal", Description: "Kidney beans curry with basmati rice",
				Calories: 580, ProteinG: 25, CarbsG: 95, FatsG: 12, FiberG: 15,
				Ingredients:  []string{"Kidney beans", "Basmati rice", "Onions", "Tomatoes", "Spices"},
				Instructions: []string{"Soak and cook rajma", "Prepare masala", "Combine and simmer", "Serve with rice"},
				PrepTime:     45, Region: "north_indian",
			}},
			Dinner: []mealSuggestion{{
				Name: "Palak Paneer with Roti", Description: "Spinach curry with cottage cheese and whole wheat bread",
				Calories: 450, ProteinG: 22, CarbsG: 35, FatsG: 25, FiberG: 8,
				Ingredients:  []string{"Fresh spinach", "Paneer", "Whole wheat flour", "Spices"},
				Instructions: []string{"Blanch spinach", "Make paneer curry", "Prepare rotis", "Serve hot"},
				PrepTime:     35, Region: "north_indian",
			}},
			Snacks: []mealSuggestion{{
				Name: "Mixed Nuts and Fruits", Description: "Seasonal fruits with almonds and walnuts",
				Calories: 200, ProteinG: 8, CarbsG: 20, FatsG: 12, FiberG: 4,
				Ingredients:  []string{"Almonds", "Walnuts", "Seasonal fruits", "Honey"},
				Instructions: []string{"Chop fruits", "Mix with nuts", "Drizzle honey if desired"},
				PrepTime:     5, Region: "general",
			}},
		},
		CreatedAt: now,
	}
}

// seedSampleData replaces profile, goals, today's record, trends and meal plans
// with the demo data set. Today's record is built through addMeal so its
// derived fields are consistent.
func seedSampleData(ctx context.Context, s kvStore, now time.Time, rng *rand.Rand) (dailyRecord, error) {
	utc := now.UTC()
	goals := sampleGoals()

	day := initDay(now.Format(dateLayout), goals)
	for _, m := range sampleMeals(utc) {
		var err error
		if day, err = addMeal(day, m); err != nil {
			return dailyRecord{}, fmt.Errorf("sample day: %w", err)
		}
	}

	trends := sampleTrends(now, rng)
	pt := trends[day.Date]
	pt.Calories, pt.ProteinG, pt.Score = day.Consumed.Calories, day.Consumed.ProteinG, day.Score
	trends[day.Date] = pt

	plan := sampleMealPlan(utc)
	writes := []struct {
		key   string
		value any
	}{
		{keyUserProfile, sampleProfile(utc)},
		{keyNutritionGoals, goals},
		{keyDailyNutrition, map[string]dailyRecord{day.Date: day}},
		{keyNutritionTrends, trends},
		{keyMealPlans, map[string]mealPlan{plan.ID: plan}},
	}
	for _, w := range writes {
		if err := saveJSON(ctx, s, w.key, w.value); err != nil {
			return dailyRecord{}, err
		}
	}
	return day, nil
}

// loadSampleData installs the demo data set, replacing existing data.
// POST /api/sample-data. Returns 201 with { profile, goals, daily }.
func (h *Handler) loadSampleData(c *gin.Context) {
	now := h.now()
	day, err := seedSampleData(c, h.store, now, rand.New(rand.NewPCG(uint64(now.UnixNano()), 0)))
	if err != nil {
		internalError(c, "failed to load sample data", err)
		return
	}
	log.Info().Str("date", day.Date).Msg("sample data loaded")
	h.hub.publish(day)
	c.JSON(http.StatusCreated, gin.H{
		"profile": sampleProfile(now.UTC()),
		"goals":   sampleGoals(),
		"daily":   day,
	})
}

// clearSampleData removes all data, but only while the demo profile is active.
// DELETE /api/sample-data. Returns 409 when a real profile is saved.
func (h *Handler) clearSampleData(c *gin.Context) {
	p, ok, err := loadJSON[userProfile](c, h.store, keyUserProfile)
	if err != nil {
		internalError(c, "failed to fetch profile", err)
		return
	}
	if !ok || p.ID != sampleProfileID {
		apiError(c, http.StatusConflict, "sample data is not active")
		return
	}
	if err := clearAll(c, h.store); err != nil {
		internalError(c, "failed to clear data", err)
		return
	}
	c.Status(http.StatusNoContent)
}
