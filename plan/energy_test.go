package plan

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceProfile is the 28-year-old, 70kg/175cm moderately active male used
// across the worked examples.
func referenceProfile(goal FitnessGoal) BiometricProfile {
	return BiometricProfile{
		WeightKg:      70,
		HeightCm:      175,
		Age:           28,
		Gender:        Male,
		ActivityLevel: ModeratelyActive,
		FitnessGoal:   goal,
	}
}

/* ─── BMR / calorie accuracy ─────────────────────────────────────────── */

// TestBMR_Male: 10*70 + 6.25*175 - 5*28 + 5 = 1658.75.
func TestBMR_Male(t *testing.T) {
	assert.InDelta(t, 1658.75, BMR(referenceProfile(MaintainWeight)), 1e-9)
}

// TestBMR_Female: 10*60 + 6.25*165 - 5*30 - 161 = 1320.25.
func TestBMR_Female(t *testing.T) {
	p := BiometricProfile{WeightKg: 60, HeightCm: 165, Age: 30, Gender: Female,
		ActivityLevel: Sedentary, FitnessGoal: GeneralFitness}
	assert.InDelta(t, 1320.25, BMR(p), 1e-9)
}

func TestEstimateDailyCalories_Maintain(t *testing.T) {
	got, err := EstimateDailyCalories(referenceProfile(MaintainWeight))
	require.NoError(t, err)
	assert.Equal(t, 2571, got) // 1658.75 * 1.55 = 2571.06
}

func TestEstimateDailyCalories_GoalOffsets(t *testing.T) {
	cases := []struct {
		goal FitnessGoal
		want int
	}{
		{LoseWeight, 2071},
		{GainMuscle, 2871},
		{MaintainWeight, 2571},
		{ImproveEndurance, 2771},
		{GeneralFitness, 2571},
	}
	for _, tc := range cases {
		t.Run(string(tc.goal), func(t *testing.T) {
			got, err := EstimateDailyCalories(referenceProfile(tc.goal))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestEstimateDailyCalories_MonotonicInActivity holds everything but the
// activity level fixed and checks calories strictly increase.
func TestEstimateDailyCalories_MonotonicInActivity(t *testing.T) {
	profiles := []BiometricProfile{
		referenceProfile(LoseWeight),
		{WeightKg: 52.5, HeightCm: 158, Age: 61, Gender: Female, FitnessGoal: GainMuscle},
		{WeightKg: 120, HeightCm: 199, Age: 19, Gender: Male, FitnessGoal: ImproveEndurance},
	}
	for _, p := range profiles {
		prev := math.MinInt
		for _, level := range ActivityLevels {
			p.ActivityLevel = level
			got, err := EstimateDailyCalories(p)
			require.NoError(t, err)
			assert.Greater(t, got, prev, "level %s", level)
			prev = got
		}
	}
}

// TestEstimateDailyCalories_NonPositiveReturned confirms no clamping happens in
// the estimator for pathological (but valid) inputs.
func TestEstimateDailyCalories_NonPositiveReturned(t *testing.T) {
	p := BiometricProfile{WeightKg: 1, HeightCm: 1, Age: 120, Gender: Female,
		ActivityLevel: Sedentary, FitnessGoal: LoseWeight}
	got, err := EstimateDailyCalories(p)
	require.NoError(t, err)
	assert.LessOrEqual(t, got, 0)

	target, err := BaselineTarget(p, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, target.Calories)
	assert.GreaterOrEqual(t, target.CarbsG, 0)
	assert.GreaterOrEqual(t, target.FatG, 0)
}

/* ─── Validation ─────────────────────────────────────────────────────── */

func TestEstimateDailyCalories_RejectsInvalidProfiles(t *testing.T) {
	cases := []struct {
		name  string
		field string
		mutFn func(p *BiometricProfile)
	}{
		{"zero weight", "weight_kg", func(p *BiometricProfile) { p.WeightKg = 0 }},
		{"NaN weight", "weight_kg", func(p *BiometricProfile) { p.WeightKg = math.NaN() }},
		{"infinite height", "height_cm", func(p *BiometricProfile) { p.HeightCm = math.Inf(1) }},
		{"negative height", "height_cm", func(p *BiometricProfile) { p.HeightCm = -170 }},
		{"zero age", "age", func(p *BiometricProfile) { p.Age = 0 }},
		{"unknown gender", "gender", func(p *BiometricProfile) { p.Gender = "Other" }},
		{"unknown activity", "activity_level", func(p *BiometricProfile) { p.ActivityLevel = "Couch" }},
		{"unknown goal", "fitness_goal", func(p *BiometricProfile) { p.FitnessGoal = "Get Famous" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := referenceProfile(MaintainWeight)
			tc.mutFn(&p)
			_, err := EstimateDailyCalories(p)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestParseActivityLevel(t *testing.T) {
	for in, want := range map[string]ActivityLevel{
		"Lightly Active":   LightlyActive,
		"lightly_active":   LightlyActive,
		" VERY ACTIVE ":    VeryActive,
		"extremely active": ExtremelyActive,
	} {
		got, err := ParseActivityLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseActivityLevel("hyperactive")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "activity_level", verr.Field)
}

func TestBiometricProfile_UnmarshalRejectsUnknownEnum(t *testing.T) {
	var p BiometricProfile
	err := json.Unmarshal([]byte(`{"weight_kg":70,"height_cm":175,"age":28,"gender":"Male",
		"activity_level":"Sedentary","fitness_goal":"Win The Lottery"}`), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fitness_goal")

	err = json.Unmarshal([]byte(`{"weight_kg":70,"height_cm":175,"age":28,"gender":"male",
		"activity_level":"moderately_active","fitness_goal":"lose weight"}`), &p)
	require.NoError(t, err)
	assert.Equal(t, BiometricProfile{WeightKg: 70, HeightCm: 175, Age: 28, Gender: Male,
		ActivityLevel: ModeratelyActive, FitnessGoal: LoseWeight}, p)
}

func TestBaselineTarget(t *testing.T) {
	got, err := BaselineTarget(referenceProfile(LoseWeight), "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, DailyTarget{
		Date:             "2026-03-01",
		Calories:         2071,
		ProteinG:         140,
		CarbsG:           247,
		FatG:             58,
		WorkoutIntensity: Moderate,
	}, got)
}
