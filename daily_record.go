package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// validMealTypes is the set of allowed meal slots.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

/* ─── Vector arithmetic ──────────────────────────────────────────────── */

func floatPtr(v float64) *float64 { return &v }

func valueOr0(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// plus adds two vectors component-wise. Sugar/sodium stay nil only when both
// sides leave them untracked.
func (a nutritionAmounts) plus(b nutritionAmounts) nutritionAmounts {
	out := nutritionAmounts{
		Calories: a.Calories + b.Calories,
		ProteinG: a.ProteinG + b.ProteinG,
		CarbsG:   a.CarbsG + b.CarbsG,
		FatsG:    a.FatsG + b.FatsG,
		FiberG:   a.FiberG + b.FiberG,
	}
	if a.SugarG != nil || b.SugarG != nil {
		out.SugarG = floatPtr(valueOr0(a.SugarG) + valueOr0(b.SugarG))
	}
	if a.SodiumMg != nil || b.SodiumMg != nil {
		out.SodiumMg = floatPtr(valueOr0(a.SodiumMg) + valueOr0(b.SodiumMg))
	}
	return out
}

// remainingAfter returns max(a-b, 0) component-wise.
func (a nutritionAmounts) remainingAfter(b nutritionAmounts) nutritionAmounts {
	out := nutritionAmounts{
		Calories: math.Max(0, a.Calories-b.Calories),
		ProteinG: math.Max(0, a.ProteinG-b.ProteinG),
		CarbsG:   math.Max(0, a.CarbsG-b.CarbsG),
		FatsG:    math.Max(0, a.FatsG-b.FatsG),
		FiberG:   math.Max(0, a.FiberG-b.FiberG),
	}
	if a.SugarG != nil || b.SugarG != nil {
		out.SugarG = floatPtr(math.Max(0, valueOr0(a.SugarG)-valueOr0(b.SugarG)))
	}
	if a.SodiumMg != nil || b.SodiumMg != nil {
		out.SodiumMg = floatPtr(math.Max(0, valueOr0(a.SodiumMg)-valueOr0(b.SodiumMg)))
	}
	return out
}

// negative reports whether any component is below zero.
func (a nutritionAmounts) negative() bool {
	return a.Calories < 0 || a.ProteinG < 0 || a.CarbsG < 0 || a.FatsG < 0 || a.FiberG < 0 ||
		valueOr0(a.SugarG) < 0 || valueOr0(a.SodiumMg) < 0
}

/* ─── Aggregation ────────────────────────────────────────────────────── */

// initDay creates an empty record whose target is a snapshot of goals.
func initDay(date string, goals nutritionGoals) dailyRecord {
	target := goals.amounts()
	return dailyRecord{
		Date:      date,
		Target:    target,
		Consumed:  nutritionAmounts{},
		Remaining: target,
		Meals:     []mealEntry{},
		Score:     0,
	}
}

// sumMeals folds the nutrition of every meal into one vector.
func sumMeals(meals []mealEntry) nutritionAmounts {
	var total nutritionAmounts
	for _, m := range meals {
		total = total.plus(m.Nutrition)
	}
	return total
}

// recomputeRecord rebuilds Consumed, Remaining and Score from Target and Meals.
// A day with no meals uses quickScore (0 for zero consumption) so that it
// matches initDay exactly; otherwise the five-factor score applies.
func recomputeRecord(r dailyRecord) (dailyRecord, error) {
	consumed := sumMeals(r.Meals)
	score := quickScore
	if len(r.Meals) > 0 {
		score = nutritionScore
	}
	s, err := score(r.Target, consumed)
	if err != nil {
		return r, fmt.Errorf("score %s: %w", r.Date, err)
	}
	r.Consumed = consumed
	r.Remaining = r.Target.remainingAfter(consumed)
	r.Score = s
	return r, nil
}

// addMeal returns a new record with meal appended and every derived field
// recomputed. The input record is not modified.
func addMeal(r dailyRecord, meal mealEntry) (dailyRecord, error) {
	meals := make([]mealEntry, 0, len(r.Meals)+1)
	meals = append(meals, r.Meals...)
	meals = append(meals, meal)
	r.Meals = meals
	return recomputeRecord(r)
}

// removeMeal returns a new record without the meal with the given id, with
// derived fields recomputed. found is false (and the record unchanged) when
// the id is not present.
func removeMeal(r dailyRecord, mealID string) (out dailyRecord, found bool, err error) {
	meals := make([]mealEntry, 0, len(r.Meals))
	for _, m := range r.Meals {
		if m.ID == mealID {
			found = true
			continue
		}
		meals = append(meals, m)
	}
	if !found {
		return r, false, nil
	}
	r.Meals = meals
	out, err = recomputeRecord(r)
	return out, true, err
}

/* ─── Dashboard helpers ──────────────────────────────────────────────── */

// recommendations turns the gap between target and consumed into advice.
// The gap is signed so over-consumption can be reported.
func recommendations(target, consumed nutritionAmounts, dietPreference string) []string {
	recs := []string{}

	proteinGap := target.ProteinG - consumed.ProteinG
	if proteinGap > 15 {
		var foods []string
		switch dietPreference {
		case "vegetarian":
			foods = []string{"dal", "paneer", "yogurt", "nuts"}
		case "vegan":
			foods = []string{"dal", "tofu", "chickpeas", "nuts"}
		default:
			foods = []string{"chicken", "fish", "eggs", "dal"}
		}
		recs = append(recs, fmt.Sprintf("Add %.0fg protein: Try %s", proteinGap, strings.Join(foods, ", ")))
	}

	calorieGap := target.Calories - consumed.Calories
	if calorieGap > 200 {
		recs = append(recs, fmt.Sprintf("%.0f calories remaining - consider a healthy snack", calorieGap))
	}

	if target.FiberG-consumed.FiberG > 10 {
		recs = append(recs, "Increase fiber intake: Add vegetables, fruits, or whole grains")
	}

	if calorieGap < -200 {
		recs = append(recs, fmt.Sprintf("You've exceeded daily calories by %.0f - consider lighter meals tomorrow", -calorieGap))
	}
	return recs
}

// macroSplit returns the percentage of macro calories contributed by protein,
// carbs and fats. All zero when nothing has been consumed.
func macroSplit(consumed nutritionAmounts) macroDistribution {
	protein := consumed.ProteinG * kcalPerGramProtein
	carbs := consumed.CarbsG * kcalPerGramCarbs
	fats := consumed.FatsG * kcalPerGramFat
	total := protein + carbs + fats
	if total <= 0 {
		return macroDistribution{}
	}
	pct := func(v float64) float64 { return math.Round(v/total*1000) / 10 }
	return macroDistribution{ProteinPct: pct(protein), CarbsPct: pct(carbs), FatsPct: pct(fats)}
}

// mealTimeline returns the meals ordered by time of day ("HH:MM"), falling back
// to creation time for equal or missing times.
func mealTimeline(meals []mealEntry) []mealEntry {
	out := make([]mealEntry, len(meals))
	copy(out, meals)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
