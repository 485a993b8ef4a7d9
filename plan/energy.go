package plan

// genderOffsets is the Mifflin-St Jeor constant per gender. Supporting another
// gender is a table change.
var genderOffsets = map[Gender]float64{
	Male:   5,
	Female: -161,
}

// activityMultipliers maps each activity level to its TDEE multiplier. It is
// also the validation set for activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtremelyActive:  1.9,
}

// goalCalorieOffsets is the flat kcal adjustment applied after the activity
// multiplier.
var goalCalorieOffsets = map[FitnessGoal]float64{
	LoseWeight:       -500,
	GainMuscle:       300,
	MaintainWeight:   0,
	ImproveEndurance: 200,
	GeneralFitness:   0,
}

// BMR returns the Mifflin-St Jeor basal metabolic rate. The profile must
// already be valid.
func BMR(p BiometricProfile) float64 {
	return 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age) + genderOffsets[p.Gender]
}

// TDEE returns BMR scaled by the activity multiplier, before the goal offset.
func TDEE(p BiometricProfile) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return BMR(p) * activityMultipliers[p.ActivityLevel], nil
}

// EstimateDailyCalories computes the goal-adjusted daily calorie figure.
// Pathological inputs can yield a result <= 0; it is returned as-is and the
// floor is left to AdjustPlan.
func EstimateDailyCalories(p BiometricProfile) (int, error) {
	tdee, err := TDEE(p)
	if err != nil {
		return 0, err
	}
	return round(tdee + goalCalorieOffsets[p.FitnessGoal]), nil
}

// BaselineTarget runs the estimator and allocator to produce a fresh,
// profile-derived target for date. A non-positive estimate becomes 0 here so
// the record never carries a negative figure.
func BaselineTarget(p BiometricProfile, date string) (DailyTarget, error) {
	calories, err := EstimateDailyCalories(p)
	if err != nil {
		return DailyTarget{}, err
	}
	m := AllocateMacros(p.WeightKg, max(calories, 0), p.FitnessGoal)
	return DailyTarget{
		Date:             date,
		Calories:         m.TotalCalories,
		ProteinG:         m.ProteinG,
		CarbsG:           m.CarbsG,
		FatG:             m.FatG,
		WorkoutIntensity: Moderate,
	}, nil
}
