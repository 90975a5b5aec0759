package main

import (
	"math"
	"strings"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// Also the source of truth for valid activity levels in profile validation.
var activityMultipliers = map[string]float64{
	"low":      1.2,
	"moderate": 1.55,
	"high":     1.725,
}

// Valid values for the remaining profile enums.
var (
	validGenders         = map[string]bool{"male": true, "female": true, "other": true}
	validGoals           = map[string]bool{"weight_loss": true, "weight_gain": true, "balanced_diet": true}
	validDietPreferences = map[string]bool{"vegetarian": true, "non_vegetarian": true, "vegan": true}
)

// goalCalorieFactors adjusts TDEE for the user's goal. balanced_diet and
// unknown goals keep TDEE unchanged.
var goalCalorieFactors = map[string]float64{
	"weight_loss": 0.85,
	"weight_gain": 1.15,
}

// Body weight bounds for profiles and weight log entries.
const (
	minWeightKG = 10
	maxWeightKG = 400
)

// kcal per gram
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// computeBMR estimates basal metabolic rate with Mifflin-St Jeor, rounded.
// Only "male" gets the +5 offset; "female" and "other" both use -161.
func computeBMR(p userProfile) float64 {
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return math.Round(bmr)
}

// computeTDEE scales a BMR by the activity multiplier. Unknown levels are
// treated as "low".
func computeTDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers["low"]
	}
	return math.Round(bmr * mult)
}

// macroRatios returns the protein and carb share of calories for a diet
// preference; fat takes the rest. Only "non_vegetarian" gets the higher protein
// share and only "vegetarian" gets the higher carb share, so vegan lands on
// 0.20/0.50/0.30.
func macroRatios(dietPreference string) (protein, carbs, fat float64) {
	protein = 0.20
	if dietPreference == "non_vegetarian" {
		protein = 0.25
	}
	carbs = 0.50
	if dietPreference == "vegetarian" {
		carbs = 0.60
	}
	return protein, carbs, 1 - protein - carbs
}

// fiberTarget returns the daily fiber reference intake in grams.
func fiberTarget(age int, gender string) float64 {
	male := gender == "male"
	if age < 50 {
		if male {
			return 38
		}
		return 25
	}
	if male {
		return 30
	}
	return 21
}

// computeGoals derives calorie and macro targets from a profile. It is total:
// garbage numeric input propagates into the result, so validate the profile
// first (validateProfile).
func computeGoals(p userProfile) nutritionGoals {
	bmr := computeBMR(p)
	tdee := computeTDEE(bmr, p.ActivityLevel)

	calories := tdee
	if f, ok := goalCalorieFactors[p.Goal]; ok {
		calories = math.Round(tdee * f)
	}

	proteinRatio, carbRatio, fatRatio := macroRatios(p.DietPreference)

	return nutritionGoals{
		Calories: calories,
		ProteinG: math.Round(calories * proteinRatio / kcalPerGramProtein),
		CarbsG:   math.Round(calories * carbRatio / kcalPerGramCarbs),
		FatsG:    math.Round(calories * fatRatio / kcalPerGramFat),
		FiberG:   fiberTarget(p.Age, p.Gender),
		BMR:      bmr,
		TDEE:     tdee,
	}
}

// validateProfile checks the fields computeGoals depends on and returns a
// human-readable message for the first problem, or "" when the profile is usable.
func validateProfile(p userProfile) string {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return "name is required"
	case p.Age <= 0 || p.Age > 130:
		return "age must be between 1 and 130"
	case !validGenders[p.Gender]:
		return "gender must be one of: male, female, other"
	case p.HeightCM < 50 || p.HeightCM > 250:
		return "height must be between 50 and 250 cm"
	case p.WeightKG < minWeightKG || p.WeightKG > maxWeightKG:
		return "weight must be between 10 and 400 kg"
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return "activityLevel must be one of: low, moderate, high"
	}
	if !validGoals[p.Goal] {
		return "goal must be one of: weight_loss, weight_gain, balanced_diet"
	}
	if !validDietPreferences[p.DietPreference] {
		return "dietPreference must be one of: vegetarian, non_vegetarian, vegan"
	}
	// Extreme combinations inside the ranges above (tiny, very old) can still
	// drive Mifflin-St Jeor to zero or below; every score divides by these targets.
	g := computeGoals(p)
	if g.Calories <= 0 || g.ProteinG <= 0 || g.CarbsG <= 0 || g.FatsG <= 0 {
		return "height, weight and age produce non-positive nutrition targets"
	}
	return ""
}
