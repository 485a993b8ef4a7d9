// Package plan is the adaptive daily-plan engine: energy estimation, macro
// allocation, meal decomposition, adherence evaluation and the next-day
// adjustment rules. Everything here is a pure function of its inputs.
package plan

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

/* ─── Enums ──────────────────────────────────────────────────────────── */

// Gender selects the Mifflin-St Jeor offset.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "Sedentary"
	LightlyActive    ActivityLevel = "Lightly Active"
	ModeratelyActive ActivityLevel = "Moderately Active"
	VeryActive       ActivityLevel = "Very Active"
	ExtremelyActive  ActivityLevel = "Extremely Active"
)

// ActivityLevels lists the levels from least to most active.
var ActivityLevels = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtremelyActive}

// FitnessGoal selects the calorie offset and macro ratios.
type FitnessGoal string

const (
	LoseWeight       FitnessGoal = "Lose Weight"
	GainMuscle       FitnessGoal = "Gain Muscle"
	MaintainWeight   FitnessGoal = "Maintain Weight"
	ImproveEndurance FitnessGoal = "Improve Endurance"
	GeneralFitness   FitnessGoal = "General Fitness"
)

// FitnessGoals lists every supported goal.
var FitnessGoals = []FitnessGoal{LoseWeight, GainMuscle, MaintainWeight, ImproveEndurance, GeneralFitness}

// WorkoutIntensity is the prescribed (or performed) training load for a day.
type WorkoutIntensity string

const (
	Rest     WorkoutIntensity = "Rest"
	Low      WorkoutIntensity = "Low"
	Moderate WorkoutIntensity = "Moderate"
	High     WorkoutIntensity = "High"
)

var workoutIntensities = []WorkoutIntensity{Rest, Low, Moderate, High}

// parseEnum matches s against the allowed values, ignoring case, surrounding
// whitespace and the space/underscore difference ("lightly_active").
func parseEnum[T ~string](field, s string, allowed []T) (T, error) {
	norm := func(v string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(v), "_", " "))
	}
	for _, a := range allowed {
		if norm(string(a)) == norm(s) {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	var zero T
	return zero, invalid(field, "%q is not one of: %s", s, strings.Join(names, ", "))
}

// ParseGender parses a gender name such as "Male" or "female".
func ParseGender(s string) (Gender, error) {
	return parseEnum("gender", s, []Gender{Male, Female})
}

// ParseActivityLevel parses an activity level such as "Lightly Active" or "lightly_active".
func ParseActivityLevel(s string) (ActivityLevel, error) {
	return parseEnum("activity_level", s, ActivityLevels)
}

// ParseFitnessGoal parses a fitness goal such as "Lose Weight".
func ParseFitnessGoal(s string) (FitnessGoal, error) {
	return parseEnum("fitness_goal", s, FitnessGoals)
}

// ParseWorkoutIntensity parses one of Rest, Low, Moderate or High.
func ParseWorkoutIntensity(s string) (WorkoutIntensity, error) {
	return parseEnum("workout_intensity", s, workoutIntensities)
}

// UnmarshalText decodes a Gender through ParseGender. Unknown values fail at
// decode time so handlers never see an out-of-range enum.
func (g *Gender) UnmarshalText(b []byte) error {
	v, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// UnmarshalText decodes an ActivityLevel through ParseActivityLevel.
func (a *ActivityLevel) UnmarshalText(b []byte) error {
	v, err := ParseActivityLevel(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// UnmarshalText decodes a FitnessGoal through ParseFitnessGoal.
func (f *FitnessGoal) UnmarshalText(b []byte) error {
	v, err := ParseFitnessGoal(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// UnmarshalText decodes a WorkoutIntensity through ParseWorkoutIntensity.
func (w *WorkoutIntensity) UnmarshalText(b []byte) error {
	v, err := ParseWorkoutIntensity(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

/* ─── Records ────────────────────────────────────────────────────────── */

// BiometricProfile is the subset of a user profile the engine reads.
type BiometricProfile struct {
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	FitnessGoal   FitnessGoal   `json:"fitness_goal"`
}

// Validate checks that every numeric field is positive and finite and that
// every enum is a known value.
func (p BiometricProfile) Validate() error {
	if !positiveFinite(p.WeightKg) {
		return invalid("weight_kg", "must be a positive number, got %v", p.WeightKg)
	}
	if !positiveFinite(p.HeightCm) {
		return invalid("height_cm", "must be a positive number, got %v", p.HeightCm)
	}
	if p.Age <= 0 {
		return invalid("age", "must be positive, got %d", p.Age)
	}
	if _, ok := genderOffsets[p.Gender]; !ok {
		return invalid("gender", "unsupported value %q", p.Gender)
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return invalid("activity_level", "unsupported value %q", p.ActivityLevel)
	}
	if _, ok := goalCalorieOffsets[p.FitnessGoal]; !ok {
		return invalid("fitness_goal", "unsupported value %q", p.FitnessGoal)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// DailyTarget is the prescriptive half of a day: what the user should eat and
// how hard they should train.
type DailyTarget struct {
	Date             string           `json:"date"`
	Calories         int              `json:"calories"`
	ProteinG         int              `json:"protein_g"`
	CarbsG           int              `json:"carbs_g"`
	FatG             int              `json:"fat_g"`
	WorkoutIntensity WorkoutIntensity `json:"workout_intensity"`
}

// DailyLog is the descriptive half of a day: what the user actually did.
type DailyLog struct {
	Date                   string            `json:"date"`
	CaloriesConsumed       int               `json:"calories_consumed"`
	ProteinConsumedG       int               `json:"protein_consumed_g"`
	CarbsConsumedG         int               `json:"carbs_consumed_g"`
	FatConsumedG           int               `json:"fat_consumed_g"`
	WorkoutCompleted       bool              `json:"workout_completed"`
	WorkoutIntensityActual *WorkoutIntensity `json:"workout_intensity_actual,omitempty"`
	WorkoutDurationMinutes *int              `json:"workout_duration_minutes,omitempty"`
}

// Validate rejects negative consumption or duration figures.
func (l DailyLog) Validate() error {
	switch {
	case l.CaloriesConsumed < 0:
		return invalid("calories_consumed", "must not be negative")
	case l.ProteinConsumedG < 0:
		return invalid("protein_consumed_g", "must not be negative")
	case l.CarbsConsumedG < 0:
		return invalid("carbs_consumed_g", "must not be negative")
	case l.FatConsumedG < 0:
		return invalid("fat_consumed_g", "must not be negative")
	case l.WorkoutDurationMinutes != nil && *l.WorkoutDurationMinutes < 0:
		return invalid("workout_duration_minutes", "must not be negative")
	}
	return nil
}

// round converts to the nearest integer, halves away from zero.
func round(v float64) int {
	return int(math.Round(v))
}
