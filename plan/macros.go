package plan

import "go.uber.org/zap"

const (
	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
	kcalPerGramFat     = 9
)

// Macros is a calorie total split into protein, carb and fat grams.
type Macros struct {
	ProteinG      int `json:"protein_g"`
	FatG          int `json:"fat_g"`
	CarbsG        int `json:"carbs_g"`
	TotalCalories int `json:"total_calories"`
}

type macroRatio struct {
	proteinPerKg float64
	fatPercent   float64
}

var defaultMacroRatio = macroRatio{proteinPerKg: 1.8, fatPercent: 25}

var goalMacroRatios = map[FitnessGoal]macroRatio{
	LoseWeight:       {proteinPerKg: 2.0, fatPercent: 25},
	GainMuscle:       {proteinPerKg: 2.2, fatPercent: 25},
	MaintainWeight:   {proteinPerKg: 1.8, fatPercent: 25},
	ImproveEndurance: {proteinPerKg: 1.6, fatPercent: 20},
	GeneralFitness:   {proteinPerKg: 1.8, fatPercent: 25},
}

// AllocateMacros splits totalCalories by goal: protein from body weight, fat
// as a share of calories, carbs from whatever is left. Carbs bottom out at 0
// when protein and fat already exceed the total. An unknown goal falls back
// to the default ratios with a warning; macro ratios are advisory.
func AllocateMacros(weightKg float64, totalCalories int, goal FitnessGoal) Macros {
	ratio, ok := goalMacroRatios[goal]
	if !ok {
		zap.L().Warn("unknown fitness goal, using default macro ratios",
			zap.String("goal", string(goal)))
		ratio = defaultMacroRatio
	}

	protein := max(round(weightKg*ratio.proteinPerKg), 0)
	fat := max(round(ratio.fatPercent/100*float64(totalCalories)/kcalPerGramFat), 0)

	remaining := float64(totalCalories - (protein*kcalPerGramProtein + fat*kcalPerGramFat))
	carbs := round(max(0, remaining/kcalPerGramCarb))

	return Macros{
		ProteinG:      protein,
		FatG:          fat,
		CarbsG:        carbs,
		TotalCalories: totalCalories,
	}
}
