package main

import (
	"errors"
	"testing"
)

var scoreTarget = nutritionAmounts{Calories: 2000, ProteinG: 100, CarbsG: 250, FatsG: 60, FiberG: 30}

// TestNutritionScore_PerfectAdherence: every sub-score is 100 and protein is
// weighted x1.2, so (100*4 + 120) / 5 = 104.
func TestNutritionScore_PerfectAdherence(t *testing.T) {
	got, err := nutritionScore(scoreTarget, scoreTarget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != maxWeightedScore {
		t.Errorf("nutritionScore(target, target) = %d, want %d", got, maxWeightedScore)
	}
}

func TestQuickScore_PerfectAdherence(t *testing.T) {
	got, err := quickScore(scoreTarget, scoreTarget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Errorf("quickScore(target, target) = %d, want 100", got)
	}
}

func TestNutritionScore_Cases(t *testing.T) {
	cases := []struct {
		name     string
		consumed nutritionAmounts
		want     int
	}{
		// calories 0, protein 0, carbs 100-50, fats 100-60, fiber 0 -> 90/5
		{"nothing eaten", nutritionAmounts{}, 18},
		// calories within band, protein capped at 100 -> still 104
		{"double protein", nutritionAmounts{Calories: 2000, ProteinG: 200, CarbsG: 250, FatsG: 60, FiberG: 30}, 104},
		// calories ratio 1.5 -> 100 - 50 = 50; (50 + 120 + 300) / 5 = 94
		{"calorie overshoot", nutritionAmounts{Calories: 3000, ProteinG: 100, CarbsG: 250, FatsG: 60, FiberG: 30}, 94},
		// fats ratio 2.0 -> 100 - 60 = 40; (400 - 60 + 120) / 5 = 92
		{"fat overshoot", nutritionAmounts{Calories: 2000, ProteinG: 100, CarbsG: 250, FatsG: 120, FiberG: 30}, 92},
		// edges of the calorie band count as in-band
		{"calorie band edge", nutritionAmounts{Calories: 1700, ProteinG: 100, CarbsG: 250, FatsG: 60, FiberG: 30}, 104},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nutritionScore(scoreTarget, tc.consumed)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("nutritionScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestQuickScore_Cases(t *testing.T) {
	cases := []struct {
		name     string
		consumed nutritionAmounts
		want     int
	}{
		{"nothing eaten", nutritionAmounts{}, 0},
		// calories ratio 0.8 is in band; protein 50% -> (100 + 50) / 2
		{"half protein", nutritionAmounts{Calories: 1600, ProteinG: 50}, 75},
		// calories ratio 0.5 -> 100 - 50; protein 0 -> 25
		{"half calories", nutritionAmounts{Calories: 1000}, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := quickScore(scoreTarget, tc.consumed)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("quickScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScores_NonPositiveTarget(t *testing.T) {
	zeroFiber := scoreTarget
	zeroFiber.FiberG = 0
	if _, err := nutritionScore(zeroFiber, scoreTarget); !errors.Is(err, errNonPositiveTarget) {
		t.Errorf("nutritionScore with zero fiber target: err = %v, want errNonPositiveTarget", err)
	}

	// quickScore only divides by calories and protein.
	if _, err := quickScore(zeroFiber, scoreTarget); err != nil {
		t.Errorf("quickScore with zero fiber target: unexpected error %v", err)
	}

	negCalories := scoreTarget
	negCalories.Calories = -1
	if _, err := quickScore(negCalories, scoreTarget); !errors.Is(err, errNonPositiveTarget) {
		t.Errorf("quickScore with negative calorie target: err = %v, want errNonPositiveTarget", err)
	}
}

func TestScoreBand(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{104, "excellent"},
		{80, "excellent"},
		{79, "good"},
		{60, "good"},
		{40, "improving"},
		{39, "getting_started"},
		{0, "getting_started"},
	}
	for _, tc := range cases {
		if got := scoreBand(tc.score); got != tc.want {
			t.Errorf("scoreBand(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
