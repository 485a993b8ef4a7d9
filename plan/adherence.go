package plan

// AdherenceSnapshot compares one day's actuals against its target. Ratios are
// percentages and are not clamped.
type AdherenceSnapshot struct {
	CalorieAdherence float64 `json:"calorie_adherence"`
	ProteinAdherence float64 `json:"protein_adherence"`
	WorkoutCompleted bool    `json:"workout_completed"`
}

// percentOf returns consumed/target as a percentage, or 100 when there is no
// positive target to compare against.
func percentOf(consumed, target int) float64 {
	if target <= 0 {
		return 100
	}
	return float64(consumed) / float64(target) * 100
}

// EvaluateAdherence computes calorie and protein adherence for a day.
func EvaluateAdherence(target DailyTarget, log DailyLog) AdherenceSnapshot {
	return AdherenceSnapshot{
		CalorieAdherence: percentOf(log.CaloriesConsumed, target.Calories),
		ProteinAdherence: percentOf(log.ProteinConsumedG, target.ProteinG),
		WorkoutCompleted: log.WorkoutCompleted,
	}
}

// DailyScore is the per-macro breakdown for a daily summary, in whole
// percentages.
type DailyScore struct {
	Date           string `json:"date"`
	AdherenceScore int    `json:"adherence_score"`
	Calories       int    `json:"calories"`
	Protein        int    `json:"protein"`
	Carbs          int    `json:"carbs"`
	Fat            int    `json:"fat"`
}

// Scorecard scores all four figures and averages them into one adherence
// score.
func Scorecard(target DailyTarget, log DailyLog) DailyScore {
	cal := percentOf(log.CaloriesConsumed, target.Calories)
	protein := percentOf(log.ProteinConsumedG, target.ProteinG)
	carbs := percentOf(log.CarbsConsumedG, target.CarbsG)
	fat := percentOf(log.FatConsumedG, target.FatG)
	return DailyScore{
		Date:           target.Date,
		AdherenceScore: round((cal + protein + carbs + fat) / 4),
		Calories:       round(cal),
		Protein:        round(protein),
		Carbs:          round(carbs),
		Fat:            round(fat),
	}
}
