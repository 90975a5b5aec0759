package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// errInvalidMealPlan is returned when a meal-plan completion cannot be parsed.
// Unlike the other AI paths this is not replaced by a default.
var errInvalidMealPlan = errors.New("invalid meal plan response from AI")

/* ─── Prompts ────────────────────────────────────────────────────────── */

const mealPlanSystemPrompt = `You are NutriAI, an expert Indian dietician. Create detailed, culturally appropriate meal plans with accurate nutrition estimates for Indian foods. Always respond in valid JSON format.`

const nutritionSystemPrompt = `You are a nutrition expert specializing in Indian foods. Provide accurate nutritional analysis in JSON format only.`

const exerciseSystemPrompt = `You are a fitness expert specializing in Indian exercise traditions and home workouts. Provide practical recommendations.`

// humanize turns the first underscore of an enum value into a space
// ("weight_loss" -> "weight loss").
func humanize(v string) string {
	return strings.Replace(v, "_", " ", 1)
}

func buildMealPlanPrompt(p userProfile, g nutritionGoals) string {
	healthContext := ""
	if len(p.HealthIssues) > 0 {
		healthContext = "Health considerations: " + strings.Join(p.HealthIssues, ", ")
	}
	ageContext := ""
	if p.Age > 50 {
		ageContext = "Focus on easy-to-digest foods."
	}

	return fmt.Sprintf(`Create a personalized full-day Indian meal plan for:

USER PROFILE:
- Name: %s, Age: %d, Gender: %s
- Goal: %s
- Diet: %s
- Region: %s
- %s
- %s

NUTRITION TARGETS:
- Calories: %.0f kcal
- Protein: %.0fg
- Carbs: %.0fg
- Fats: %.0fg

Provide response in this JSON format:
{
  "title": "Personalized meal plan title",
  "description": "Brief description",
  "meals": {
    "breakfast": [{"name": "Dish name", "description": "Description", "calories": 300, "protein": 15}],
    "lunch": [{"name": "Dish name", "description": "Description", "calories": 400, "protein": 20}],
    "dinner": [{"name": "Dish name", "description": "Description", "calories": 350, "protein": 18}],
    "snacks": [{"name": "Snack name", "description": "Description", "calories": 150, "protein": 8}]
  }
}

Focus on traditional Indian foods that match the user's dietary preferences and regional cuisine.`,
		p.Name, p.Age, p.Gender, humanize(p.Goal), p.DietPreference, p.Region,
		healthContext, ageContext,
		g.Calories, g.ProteinG, g.CarbsG, g.FatsG)
}

func buildNutritionPrompt(mealDescription string) string {
	return fmt.Sprintf(`Analyze the nutritional content of this Indian meal: %q.

Provide accurate estimates in JSON format:
{
  "calories": number,
  "protein": number (grams),
  "carbs": number (grams),
  "fats": number (grams),
  "fiber": number (grams)
}

Consider typical Indian cooking methods and portion sizes. Be realistic with estimates.`, mealDescription)
}

func buildExercisePrompt(p userProfile) string {
	issues := strings.Join(p.HealthIssues, ", ")
	if issues == "" {
		issues = "None"
	}
	return fmt.Sprintf(`Suggest 5 suitable exercises/yoga practices for:
- Age: %d, Gender: %s
- Goal: %s
- Activity Level: %s
- Health Issues: %s

Focus on exercises suitable for Indian home environment, including yoga. Provide as simple bullet points.`,
		p.Age, p.Gender, humanize(p.Goal), p.ActivityLevel, issues)
}

/* ─── Parsing ────────────────────────────────────────────────────────── */

var codeFenceRe = regexp.MustCompile("```json\\n?|\\n?```")

// stripCodeFence removes Markdown code fences around a JSON payload.
func stripCodeFence(s string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(s, ""))
}

// parseNutritionResponse decodes {calories, protein, carbs, fats, fiber}.
// Missing fields are zero.
func parseNutritionResponse(text string) (nutritionAmounts, error) {
	var parsed struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fats     float64 `json:"fats"`
		Fiber    float64 `json:"fiber"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return nutritionAmounts{}, fmt.Errorf("parse nutrition: %w", err)
	}
	return nutritionAmounts{
		Calories: parsed.Calories,
		ProteinG: parsed.Protein,
		CarbsG:   parsed.Carbs,
		FatsG:    parsed.Fats,
		FiberG:   parsed.Fiber,
	}, nil
}

// parseMealPlanResponse decodes a meal plan and computes its total nutrition.
// A response without a "meals" object is invalid.
func parseMealPlanResponse(text string, now time.Time) (mealPlan, error) {
	var parsed struct {
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Meals       *mealPlanMeals `json:"meals"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return mealPlan{}, fmt.Errorf("%w: %v", errInvalidMealPlan, err)
	}
	if parsed.Meals == nil {
		return mealPlan{}, fmt.Errorf("%w: missing meals", errInvalidMealPlan)
	}

	plan := mealPlan{
		ID:          uuid.New().String(),
		Title:       parsed.Title,
		Description: parsed.Description,
		Meals:       normalizeMeals(*parsed.Meals),
		CreatedAt:   now,
	}
	if plan.Title == "" {
		plan.Title = "Personalized Meal Plan"
	}
	if plan.Description == "" {
		plan.Description = "AI-generated meal plan"
	}
	plan.TotalNutrition = planTotals(plan.Meals)
	return plan, nil
}

// normalizeMeals replaces nil slot slices with empty ones so they encode as [].
func normalizeMeals(m mealPlanMeals) mealPlanMeals {
	for _, slot := range []*[]mealSuggestion{&m.Breakfast, &m.Lunch, &m.Dinner, &m.Snacks} {
		if *slot == nil {
			*slot = []mealSuggestion{}
		}
	}
	return m
}

// planTotals sums nutrition over every suggestion in all four slots.
func planTotals(m mealPlanMeals) nutritionAmounts {
	var total nutritionAmounts
	for _, slot := range [][]mealSuggestion{m.Breakfast, m.Lunch, m.Dinner, m.Snacks} {
		for _, s := range slot {
			total.Calories += s.Calories
			total.ProteinG += s.ProteinG
			total.CarbsG += s.CarbsG
			total.FatsG += s.FatsG
			total.FiberG += s.FiberG
		}
	}
	return total
}

// listItemRe matches a bullet ("-", "•") or numbered ("3.") list prefix.
var listItemRe = regexp.MustCompile(`^(?:[-•]|\d+\.)\s*`)

// parseExerciseResponse extracts list items from prose. Lines without a list
// prefix are ignored. Returns an error when no items are found.
func parseExerciseResponse(text string) ([]string, error) {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !listItemRe.MatchString(line) {
			continue
		}
		item := strings.TrimSpace(listItemRe.ReplaceAllString(line, ""))
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no list items in exercise response")
	}
	return items, nil
}

/* ─── Fallbacks ──────────────────────────────────────────────────────── */

// defaultNutrition is the estimate returned when analysis fails.
func defaultNutrition() nutritionAmounts {
	return nutritionAmounts{Calories: 250, ProteinG: 10, CarbsG: 35, FatsG: 8, FiberG: 5}
}

// defaultExercises is the list returned when suggestions fail.
func defaultExercises() []string {
	return []string{
		"Surya Namaskara (Sun Salutation) - 10 rounds",
		"Brisk walking - 30 minutes",
		"Pranayama breathing exercises - 10 minutes",
		"Basic strength training - 20 minutes",
		"Yoga asanas for flexibility - 15 minutes",
	}
}

// defaultMealPlan is the four-meal plan returned when the AI call fails. Its
// total nutrition is the supplied goals, not the sum of its dishes.
func defaultMealPlan(p userProfile, g nutritionGoals, now time.Time) mealPlan {
	return mealPlan{
		ID:             uuid.New().String(),
		Title:          "Balanced Indian Meal Plan",
		Description:    "Traditional Indian meal plan focusing on balanced nutrition",
		TotalNutrition: g.amounts(),
		Meals: mealPlanMeals{
			Breakfast: []mealSuggestion{{
				Name:         "Poha with Vegetables",
				Description:  "Traditional flattened rice with vegetables and spices",
				Calories:     300, ProteinG: 8, CarbsG: 55, FatsG: 6, FiberG: 4,
				Ingredients:  []string{"Poha", "Onions", "Peas", "Turmeric", "Lemon"},
				Instructions: []string{"Rinse poha", "Sauté vegetables", "Mix with spices"},
				PrepTime:     15,
				Region:       p.Region,
			}},
			Lunch: []mealSuggestion{{
				Name:         "Dal Rice with Vegetables",
				Description:  "Complete protein combination with seasonal vegetables",
				Calories:     450, ProteinG: 18, CarbsG: 75, FatsG: 8, FiberG: 12,
				Ingredients:  []string{"Toor dal", "Rice", "Mixed vegetables", "Spices"},
				Instructions: []string{"Cook dal and rice", "Prepare vegetable curry"},
				PrepTime:     30,
				Region:       p.Region,
			}},
			Dinner: []mealSuggestion{{
				Name:         "Roti with Sabzi",
				Description:  "Whole wheat bread with seasonal vegetable curry",
				Calories:     350, ProteinG: 12, CarbsG: 60, FatsG: 8, FiberG: 10,
				Ingredients:  []string{"Whole wheat flour", "Seasonal vegetables", "Oil", "Spices"},
				Instructions: []string{"Make roti dough", "Prepare vegetable curry"},
				PrepTime:     25,
				Region:       p.Region,
			}},
			Snacks: []mealSuggestion{{
				Name:         "Roasted Chana",
				Description:  "Protein-rich roasted chickpeas with spices",
				Calories:     150, ProteinG: 8, CarbsG: 20, FatsG: 3, FiberG: 6,
				Ingredients:  []string{"Roasted chickpeas", "Chaat masala", "Lemon"},
				Instructions: []string{"Season roasted chana with spices"},
				PrepTime:     5,
				Region:       p.Region,
			}},
		},
		CreatedAt: now,
	}
}

/* ─── Operations ─────────────────────────────────────────────────────── */

// generateMealPlan asks the AI for a plan. A failed call yields the default
// plan; a completion that does not parse is returned as errInvalidMealPlan.
func generateMealPlan(ctx context.Context, gen textGenerator, p userProfile, g nutritionGoals, now time.Time) (mealPlan, error) {
	text, err := gen.GenerateText(ctx, mealPlanSystemPrompt, buildMealPlanPrompt(p, g))
	if err != nil {
		log.Warn().Err(err).Msg("meal plan generation failed, using default plan")
		return defaultMealPlan(p, g, now), nil
	}
	plan, err := parseMealPlanResponse(text, now)
	if err != nil {
		log.Error().Err(err).Str("response", truncate(text, 200)).Msg("could not parse meal plan")
		return mealPlan{}, err
	}
	return plan, nil
}

// analyzeMealNutrition estimates nutrition for a free-text meal description.
// Any failure yields defaultNutrition.
func analyzeMealNutrition(ctx context.Context, gen textGenerator, mealDescription string) nutritionAmounts {
	text, err := gen.GenerateText(ctx, nutritionSystemPrompt, buildNutritionPrompt(mealDescription))
	if err != nil {
		log.Warn().Err(err).Msg("nutrition analysis failed, using default estimate")
		return defaultNutrition()
	}
	n, err := parseNutritionResponse(text)
	if err != nil {
		log.Error().Err(err).Str("response", truncate(text, 200)).Msg("could not parse nutrition analysis")
		return defaultNutrition()
	}
	return n
}

// suggestExercises returns exercise suggestions for a profile. Any failure,
// including a response with no list items, yields defaultExercises.
func suggestExercises(ctx context.Context, gen textGenerator, p userProfile) []string {
	text, err := gen.GenerateText(ctx, exerciseSystemPrompt, buildExercisePrompt(p))
	if err != nil {
		log.Warn().Err(err).Msg("exercise suggestions failed, using defaults")
		return defaultExercises()
	}
	items, err := parseExerciseResponse(text)
	if err != nil {
		log.Warn().Err(err).Msg("exercise response had no items, using defaults")
		return defaultExercises()
	}
	return items
}
