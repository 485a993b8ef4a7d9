package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lg/adaptive-plan-api/plan"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(time.DateOnly) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+time.DateOnly+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

func (d DateOnly) String() string { return d.Time.Format(time.DateOnly) }

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// profile maps to the profiles table, one row per user. Enum columns are
// plain text in the database and are parsed into plan types on the way out.
type profile struct {
	UserID        int        `json:"user_id"        db:"user_id"`
	WeightKg      float64    `json:"weight_kg"      db:"weight_kg"`
	HeightCm      float64    `json:"height_cm"      db:"height_cm"`
	Age           int        `json:"age"            db:"age"`
	Gender        string     `json:"gender"         db:"gender"`
	ActivityLevel string     `json:"activity_level" db:"activity_level"`
	FitnessGoal   string     `json:"fitness_goal"   db:"fitness_goal"`
	CreatedAt     *time.Time `json:"created_at"     db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"     db:"updated_at"`
}

// biometrics converts the stored profile into a validated BiometricProfile.
// Rows written before validation existed may still be rejected here.
func (p profile) biometrics() (plan.BiometricProfile, error) {
	gender, err := plan.ParseGender(p.Gender)
	if err != nil {
		return plan.BiometricProfile{}, err
	}
	activity, err := plan.ParseActivityLevel(p.ActivityLevel)
	if err != nil {
		return plan.BiometricProfile{}, err
	}
	goal, err := plan.ParseFitnessGoal(p.FitnessGoal)
	if err != nil {
		return plan.BiometricProfile{}, err
	}
	b := plan.BiometricProfile{
		WeightKg:      p.WeightKg,
		HeightCm:      p.HeightCm,
		Age:           p.Age,
		Gender:        gender,
		ActivityLevel: activity,
		FitnessGoal:   goal,
	}
	return b, b.Validate()
}

// dailyLog maps to daily_logs: the prescribed target and the logged actuals
// for one (user, date). Target columns are nullable until a target has been
// written for the day; TrackedAt is nil until actuals have been.
type dailyLog struct {
	ID               int       `json:"id"                db:"id"`
	UserID           int       `json:"user_id"           db:"user_id"`
	Date             DateOnly  `json:"date"              db:"date"`
	CaloriesTarget   *int      `json:"calories_target"   db:"calories_target"`
	ProteinTargetG   *int      `json:"protein_target_g"  db:"protein_target_g"`
	CarbsTargetG     *int      `json:"carbs_target_g"    db:"carbs_target_g"`
	FatTargetG       *int      `json:"fat_target_g"      db:"fat_target_g"`
	WorkoutIntensity *string   `json:"workout_intensity" db:"workout_intensity"`

	CaloriesConsumed       int     `json:"calories_consumed"        db:"calories_consumed"`
	ProteinConsumedG       int     `json:"protein_consumed_g"       db:"protein_consumed_g"`
	CarbsConsumedG         int     `json:"carbs_consumed_g"         db:"carbs_consumed_g"`
	FatConsumedG           int     `json:"fat_consumed_g"           db:"fat_consumed_g"`
	WorkoutCompleted       bool    `json:"workout_completed"        db:"workout_completed"`
	WorkoutIntensityActual *string `json:"workout_intensity_actual" db:"workout_intensity_actual"`
	WorkoutDurationMinutes *int    `json:"workout_duration_minutes" db:"workout_duration_minutes"`

	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
	TrackedAt *time.Time `json:"tracked_at" db:"tracked_at"`
}

// tracked reports whether actuals or a workout have been logged for the day.
func (l dailyLog) tracked() bool { return l.TrackedAt != nil }

// target returns the stored target, or ok=false when no calorie target has
// been written for the day. A missing or unknown intensity reads as Moderate.
func (l dailyLog) target() (t plan.DailyTarget, ok bool) {
	if l.CaloriesTarget == nil {
		return plan.DailyTarget{}, false
	}
	t = plan.DailyTarget{
		Date:             l.Date.String(),
		Calories:         *l.CaloriesTarget,
		ProteinG:         derefInt(l.ProteinTargetG),
		CarbsG:           derefInt(l.CarbsTargetG),
		FatG:             derefInt(l.FatTargetG),
		WorkoutIntensity: plan.Moderate,
	}
	if l.WorkoutIntensity != nil {
		if w, err := plan.ParseWorkoutIntensity(*l.WorkoutIntensity); err == nil {
			t.WorkoutIntensity = w
		}
	}
	return t, true
}

func (l dailyLog) actuals() plan.DailyLog {
	a := plan.DailyLog{
		Date:                   l.Date.String(),
		CaloriesConsumed:       l.CaloriesConsumed,
		ProteinConsumedG:       l.ProteinConsumedG,
		CarbsConsumedG:         l.CarbsConsumedG,
		FatConsumedG:           l.FatConsumedG,
		WorkoutCompleted:       l.WorkoutCompleted,
		WorkoutDurationMinutes: l.WorkoutDurationMinutes,
	}
	if l.WorkoutIntensityActual != nil {
		if w, err := plan.ParseWorkoutIntensity(*l.WorkoutIntensityActual); err == nil {
			a.WorkoutIntensityActual = &w
		}
	}
	return a
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// profileRequest is the body for PUT /api/profile. Enum fields reject unknown
// values during binding.
type profileRequest struct {
	WeightKg      float64            `json:"weight_kg"`
	HeightCm      float64            `json:"height_cm"`
	Age           int                `json:"age"`
	Gender        plan.Gender        `json:"gender"`
	ActivityLevel plan.ActivityLevel `json:"activity_level"`
	FitnessGoal   plan.FitnessGoal   `json:"fitness_goal"`
}

// profileResponse adds the computed energy figures to the stored profile.
// Computed fields are omitted when the stored profile does not validate.
type profileResponse struct {
	profile
	ComputedBMR      *int `json:"computed_bmr,omitempty"`
	ComputedTDEE     *int `json:"computed_tdee,omitempty"`
	ComputedCalories *int `json:"computed_calories,omitempty"`
}

// trackTodayRequest is the body for POST /api/track-today. Date defaults to
// the current regional day.
type trackTodayRequest struct {
	Date string `json:"date"`
	plan.DailyLog
}

// workoutRequest is the body for POST /api/tracking/workout.
type workoutRequest struct {
	Date             string                 `json:"date"`
	WorkoutCompleted bool                   `json:"workout_completed"`
	Intensity        *plan.WorkoutIntensity `json:"intensity"`
	DurationMinutes  *int                   `json:"duration_minutes"`
}

// tomorrowPlan is the response for GET /api/tomorrow. Persisted is false when
// today has no tracked intake yet and the baseline is shown instead.
type tomorrowPlan struct {
	plan.Adjustment
	Persisted bool `json:"persisted"`
}

// dailySummary is the response for GET /api/tracking/daily-summary.
type dailySummary struct {
	plan.DailyScore
	Target plan.DailyTarget `json:"target"`
	Raw    dailyLog         `json:"raw"`
}

// progressDay is one entry of GET /api/progress.
type progressDay struct {
	Date             DateOnly `json:"date"`
	CaloriesConsumed int      `json:"calories_consumed"`
	CaloriesTarget   *int     `json:"calories_target"`
	ProteinConsumedG int      `json:"protein_consumed_g"`
	ProteinTargetG   *int     `json:"protein_target_g"`
	WorkoutCompleted bool     `json:"workout_completed"`
}
