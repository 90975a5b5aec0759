package main

import (
	"time"
)

// dateLayout is the key format for daily records, trend points and weight entries.
const dateLayout = "2006-01-02"

/* ─── Profile & goals ────────────────────────────────────────────────── */

// userProfile is the single user's body profile and dietary preferences.
// Goals are derived from it once on save; editing the profile recomputes them.
type userProfile struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	HeightCM       float64   `json:"height"`
	WeightKG       float64   `json:"weight"`
	ActivityLevel  string    `json:"activityLevel"`
	Goal           string    `json:"goal"`
	DietPreference string    `json:"dietPreference"`
	Region         string    `json:"region"`
	HealthIssues   []string  `json:"healthIssues"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// nutritionGoals is the daily target derived from a profile, plus the BMR and
// TDEE it was computed from.
type nutritionGoals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatsG    float64 `json:"fats"`
	FiberG   float64 `json:"fiber"`
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
}

// amounts returns the goals as a plain nutrition vector (no sugar/sodium).
func (g nutritionGoals) amounts() nutritionAmounts {
	return nutritionAmounts{
		Calories: g.Calories,
		ProteinG: g.ProteinG,
		CarbsG:   g.CarbsG,
		FatsG:    g.FatsG,
		FiberG:   g.FiberG,
	}
}

/* ─── Nutrition vector ───────────────────────────────────────────────── */

// nutritionAmounts is a component-wise numeric vector. Sugar and sodium are
// optional; a nil pointer means "not tracked" and counts as zero in sums.
type nutritionAmounts struct {
	Calories float64  `json:"calories"`
	ProteinG float64  `json:"protein"`
	CarbsG   float64  `json:"carbs"`
	FatsG    float64  `json:"fats"`
	FiberG   float64  `json:"fiber"`
	SugarG   *float64 `json:"sugar,omitempty"`
	SodiumMg *float64 `json:"sodium,omitempty"`
}

/* ─── Daily log ──────────────────────────────────────────────────────── */

// mealEntry is one logged meal. Immutable after creation except deletion by id.
type mealEntry struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Time        string           `json:"time"`
	Nutrition   nutritionAmounts `json:"nutrition"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// dailyRecord is the per-date aggregate. Consumed, Remaining and Score are
// always a pure function of (Target, Meals); see recomputeRecord.
type dailyRecord struct {
	Date      string           `json:"date"`
	Target    nutritionAmounts `json:"target"`
	Consumed  nutritionAmounts `json:"consumed"`
	Remaining nutritionAmounts `json:"remaining"`
	Meals     []mealEntry      `json:"meals"`
	Score     int              `json:"score"`
}

// trendPoint is one date in the nutrition time series.
type trendPoint struct {
	Date     string   `json:"date"`
	Calories float64  `json:"calories"`
	ProteinG float64  `json:"protein"`
	Score    int      `json:"score"`
	WeightKG *float64 `json:"weight,omitempty"`
}

/* ─── Stats ──────────────────────────────────────────────────────────── */

type weightEntry struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight"`
	Notes    string  `json:"notes,omitempty"`
}

// userStats holds weight tracking and streak counters.
type userStats struct {
	CurrentWeight   float64       `json:"currentWeight"`
	TargetWeight    *float64      `json:"targetWeight,omitempty"`
	WeightHistory   []weightEntry `json:"weightHistory"`
	NutritionStreak int           `json:"nutritionStreak"`
	GoalsAchieved   int           `json:"goalsAchieved"`
}

/* ─── Meal plans ─────────────────────────────────────────────────────── */

// mealSuggestion is one dish in a meal plan. Numeric fields missing from an
// AI response decode as zero.
type mealSuggestion struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Calories     float64  `json:"calories"`
	ProteinG     float64  `json:"protein"`
	CarbsG       float64  `json:"carbs"`
	FatsG        float64  `json:"fats"`
	FiberG       float64  `json:"fiber"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	PrepTime     int      `json:"prepTime,omitempty"`
	Region       string   `json:"region,omitempty"`
}

// mealPlanMeals groups suggestions by slot. Note the plural "snacks".
type mealPlanMeals struct {
	Breakfast []mealSuggestion `json:"breakfast"`
	Lunch     []mealSuggestion `json:"lunch"`
	Dinner    []mealSuggestion `json:"dinner"`
	Snacks    []mealSuggestion `json:"snacks"`
}

type mealPlan struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	TotalNutrition nutritionAmounts `json:"totalNutrition"`
	Meals          mealPlanMeals    `json:"meals"`
	CreatedAt      time.Time        `json:"createdAt"`
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// createMealRequest is the request body for POST /api/daily/meals.
type createMealRequest struct {
	Date        string           `json:"date"`
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Time        string           `json:"time"`
	Nutrition   nutritionAmounts `json:"nutrition"`
	ImageURL    string           `json:"imageUrl"`
}

// weightLogRequest is the request body for POST /api/stats/weight.
type weightLogRequest struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight"`
	Notes    string  `json:"notes"`
}

// macroDistribution is the share of consumed macro calories per macronutrient, in percent.
type macroDistribution struct {
	ProteinPct float64 `json:"protein"`
	CarbsPct   float64 `json:"carbs"`
	FatsPct    float64 `json:"fats"`
}

// dashboard is the response shape for GET /api/dashboard.
type dashboard struct {
	Profile           userProfile       `json:"profile"`
	Goals             nutritionGoals    `json:"goals"`
	Daily             dailyRecord       `json:"daily"`
	Score             int               `json:"score"`
	ScoreBand         string            `json:"scoreBand"`
	Recommendations   []string          `json:"recommendations"`
	MacroDistribution macroDistribution `json:"macroDistribution"`
	MealTimeline      []mealEntry       `json:"mealTimeline"`
	Trends            []trendPoint      `json:"trends"`
}
