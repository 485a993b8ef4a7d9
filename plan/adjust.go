package plan

import (
	"strings"
	"time"
)

// Thresholds and step sizes of the next-day rule table.
const (
	CalorieUnderThreshold = 80.0  // percent
	CalorieOverThreshold  = 110.0 // percent
	ProteinShortThreshold = 85.0  // percent

	CalorieUnderStep = 100
	CalorieOverStep  = 150
	ProteinBoostG    = 15

	CalorieFloor = 1200
	ProteinFloor = 50

	adjustedCarbShare = 0.45
	adjustedFatShare  = 0.25
)

// Rule names one entry of the adjustment table.
type Rule string

const (
	RuleUnderAte      Rule = "calories_under_target"
	RuleOverAte       Rule = "calories_over_target"
	RuleProteinShort  Rule = "protein_short"
	RuleWorkoutMissed Rule = "workout_missed"
	RuleCalorieFloor  Rule = "calorie_floor"
	RuleProteinFloor  Rule = "protein_floor"
)

var ruleAdvice = map[Rule]string{
	RuleUnderAte:      "You ate well under target, so tomorrow's calories are pulled back slightly rather than raised.",
	RuleOverAte:       "You went over target, so tomorrow's calories are scaled back to balance it out.",
	RuleProteinShort:  "Protein came up short, so tomorrow's protein target is raised to protect lean mass.",
	RuleWorkoutMissed: "You missed today's workout, so tomorrow is a low-intensity session to get moving again.",
	RuleCalorieFloor:  "Calories are held at the safe minimum.",
	RuleProteinFloor:  "Protein is held at the safe minimum.",
}

// Adjustment is tomorrow's target together with the rules that produced it.
type Adjustment struct {
	Tomorrow DailyTarget `json:"tomorrow"`
	Rules    []Rule      `json:"rules"`
	Advice   string      `json:"advice"`
}

// AdjustPlan derives tomorrow's target from today's target and adherence.
// Calorie, protein and workout rules apply independently; the floors are then
// enforced and carbs/fat are recomputed from the final calories with a fixed
// 45/25 split regardless of goal.
func AdjustPlan(today DailyTarget, a AdherenceSnapshot) Adjustment {
	next := today
	next.Date = NextDay(today.Date)
	rules := []Rule{}

	switch {
	case a.CalorieAdherence < CalorieUnderThreshold:
		next.Calories -= CalorieUnderStep
		rules = append(rules, RuleUnderAte)
	case a.CalorieAdherence > CalorieOverThreshold:
		next.Calories -= CalorieOverStep
		rules = append(rules, RuleOverAte)
	}

	if a.ProteinAdherence < ProteinShortThreshold {
		next.ProteinG += ProteinBoostG
		rules = append(rules, RuleProteinShort)
	}

	if !a.WorkoutCompleted {
		next.WorkoutIntensity = Low
		rules = append(rules, RuleWorkoutMissed)
	}

	if next.Calories < CalorieFloor {
		next.Calories = CalorieFloor
		rules = append(rules, RuleCalorieFloor)
	}
	if next.ProteinG < ProteinFloor {
		next.ProteinG = ProteinFloor
		rules = append(rules, RuleProteinFloor)
	}

	next.CarbsG = round(float64(next.Calories) * adjustedCarbShare / kcalPerGramCarb)
	next.FatG = round(float64(next.Calories) * adjustedFatShare / kcalPerGramFat)

	return Adjustment{Tomorrow: next, Rules: rules, Advice: Advice(rules)}
}

// Advice renders the fired rules as one sentence per rule.
func Advice(rules []Rule) string {
	if len(rules) == 0 {
		return "Right on plan. Tomorrow keeps the same targets."
	}
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		parts = append(parts, ruleAdvice[r])
	}
	return strings.Join(parts, " ")
}

// NextDay returns the calendar day after a YYYY-MM-DD date, or "" when the
// date does not parse.
func NextDay(date string) string {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, 1).Format(time.DateOnly)
}
