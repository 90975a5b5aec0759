package main

import (
	"errors"
	"math"
)

// errNonPositiveTarget is returned by the score functions when a target
// component they divide by is zero or negative.
var errNonPositiveTarget = errors.New("nutrition target components must be positive")

// proteinWeight multiplies the protein sub-score in the five-factor score. The
// weighted sum is still divided by 5, so perfect adherence scores 104, not 100.
const proteinWeight = 1.2

// maxWeightedScore is nutritionScore for consumption exactly on target.
const maxWeightedScore = 104

// bandScore returns 100 when ratio is within [lo, hi], otherwise
// 100 - |ratio-1|*penalty floored at 0.
func bandScore(ratio, lo, hi, penalty float64) float64 {
	if ratio >= lo && ratio <= hi {
		return 100
	}
	return math.Max(0, 100-math.Abs(ratio-1)*penalty)
}

// cappedScore returns ratio*100 capped at 100. Used for nutrients where more
// is never penalized (protein, fiber).
func cappedScore(ratio float64) float64 {
	return math.Min(100, ratio*100)
}

// nutritionScore is the five-factor weighted score used by the daily record
// and the dashboard. Sub-scores: calories band [0.85,1.15], protein capped and
// weighted x1.2, carbs band [0.8,1.2], fats band [0.7,1.3], fiber capped.
// The result is not re-clamped after weighting; the maximum is 104.
func nutritionScore(target, consumed nutritionAmounts) (int, error) {
	if target.Calories <= 0 || target.ProteinG <= 0 || target.CarbsG <= 0 ||
		target.FatsG <= 0 || target.FiberG <= 0 {
		return 0, errNonPositiveTarget
	}

	sum := bandScore(consumed.Calories/target.Calories, 0.85, 1.15, 100) +
		cappedScore(consumed.ProteinG/target.ProteinG)*proteinWeight +
		bandScore(consumed.CarbsG/target.CarbsG, 0.8, 1.2, 50) +
		bandScore(consumed.FatsG/target.FatsG, 0.7, 1.3, 60) +
		cappedScore(consumed.FiberG/target.FiberG)

	return int(math.Round(sum / 5)), nil
}

// quickScore is the two-factor score (calories band [0.8,1.2] and capped
// protein, unweighted) for a day before any meal has been logged. It yields 0
// for zero consumption, matching a freshly initialized record.
func quickScore(target, consumed nutritionAmounts) (int, error) {
	if target.Calories <= 0 || target.ProteinG <= 0 {
		return 0, errNonPositiveTarget
	}
	calories := bandScore(consumed.Calories/target.Calories, 0.8, 1.2, 100)
	protein := cappedScore(consumed.ProteinG / target.ProteinG)
	return int(math.Round((calories + protein) / 2)), nil
}

// scoreBand labels a score for the dashboard header.
func scoreBand(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "improving"
	default:
		return "getting_started"
	}
}
