package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lg/adaptive-plan-api/plan"
)

// store is the persistence boundary. Missing rows surface as pgx.ErrNoRows.
// Upserts are keyed by (user_id, date) and are last-write-wins per column
// group: writing actuals never replaces a stored target and writing a target
// never replaces actuals.
type store interface {
	userByUsername(ctx context.Context, username string) (user, error)
	userIDForToken(ctx context.Context, token string) (int, error)
	deleteUser(ctx context.Context, userID int) error

	getProfile(ctx context.Context, userID int) (profile, error)
	upsertProfile(ctx context.Context, p profile) (profile, error)

	getDailyLog(ctx context.Context, userID int, date string) (dailyLog, error)
	upsertActuals(ctx context.Context, userID int, target plan.DailyTarget, actuals plan.DailyLog) (dailyLog, error)
	upsertWorkout(ctx context.Context, userID int, date string, req workoutRequest) (dailyLog, error)
	upsertTarget(ctx context.Context, userID int, t plan.DailyTarget) (dailyLog, error)
	recentLogs(ctx context.Context, userID int, today string, limit int) ([]dailyLog, error)
	usersLoggedOn(ctx context.Context, date string) ([]int, error)
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Scan errors are logged because they usually mean a struct/column mismatch.
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		zap.L().Warn("query failed", zap.String("op", "queryOne"), zap.Error(err))
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		zap.L().Warn("scan failed", zap.String("op", "queryOne"), zap.Error(err))
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		zap.L().Warn("query failed", zap.String("op", "queryMany"), zap.Error(err))
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		zap.L().Warn("scan failed", zap.String("op", "queryMany"), zap.Error(err))
	}
	return results, err
}

// newDBPool creates a connection pool. We use a pool (not a single conn) because
// Neon closes idle connections after ~5 minutes.
func newDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Simple protocol avoids "cached plan must not change result type" after
	// schema changes behind a pooled proxy.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

/* ─── pgStore ────────────────────────────────────────────────────────── */

type pgStore struct {
	db *pgxpool.Pool
}

var _ store = (*pgStore)(nil)

func (s *pgStore) userByUsername(ctx context.Context, username string) (user, error) {
	return queryOne[user](ctx, s.db,
		"SELECT * FROM users WHERE username = @username",
		pgx.NamedArgs{"username": username})
}

func (s *pgStore) userIDForToken(ctx context.Context, token string) (int, error) {
	var userID int
	err := s.db.QueryRow(ctx, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&userID)
	return userID, err
}

// deleteUser removes the account; profiles and daily_logs cascade.
func (s *pgStore) deleteUser(ctx context.Context, userID int) error {
	result, err := s.db.Exec(ctx, "DELETE FROM users WHERE id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *pgStore) getProfile(ctx context.Context, userID int) (profile, error) {
	return queryOne[profile](ctx, s.db,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
}

func (s *pgStore) upsertProfile(ctx context.Context, p profile) (profile, error) {
	return queryOne[profile](ctx, s.db,
		`INSERT INTO profiles (user_id, weight_kg, height_cm, age, gender, activity_level, fitness_goal)
		 VALUES (@userID, @weightKg, @heightCm, @age, @gender, @activityLevel, @fitnessGoal)
		 ON CONFLICT (user_id) DO UPDATE SET
			weight_kg      = EXCLUDED.weight_kg,
			height_cm      = EXCLUDED.height_cm,
			age            = EXCLUDED.age,
			gender         = EXCLUDED.gender,
			activity_level = EXCLUDED.activity_level,
			fitness_goal   = EXCLUDED.fitness_goal,
			updated_at     = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": p.UserID, "weightKg": p.WeightKg, "heightCm": p.HeightCm,
			"age": p.Age, "gender": p.Gender, "activityLevel": p.ActivityLevel,
			"fitnessGoal": p.FitnessGoal,
		})
}

func (s *pgStore) getDailyLog(ctx context.Context, userID int, date string) (dailyLog, error) {
	return queryOne[dailyLog](ctx, s.db,
		"SELECT * FROM daily_logs WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": date})
}

// upsertActuals writes the day's consumption and workout. The target is only
// filled in when the row has none yet, so a rolled-over adjusted target wins
// over the baseline the caller computed.
func (s *pgStore) upsertActuals(ctx context.Context, userID int, t plan.DailyTarget, a plan.DailyLog) (dailyLog, error) {
	var intensity *string
	if a.WorkoutIntensityActual != nil {
		v := string(*a.WorkoutIntensityActual)
		intensity = &v
	}
	return queryOne[dailyLog](ctx, s.db,
		`INSERT INTO daily_logs (user_id, date,
			calories_target, protein_target_g, carbs_target_g, fat_target_g, workout_intensity,
			calories_consumed, protein_consumed_g, carbs_consumed_g, fat_consumed_g,
			workout_completed, workout_intensity_actual, workout_duration_minutes, tracked_at)
		 VALUES (@userID, @date,
			@caloriesTarget, @proteinTarget, @carbsTarget, @fatTarget, @intensityTarget,
			@calories, @protein, @carbs, @fat,
			@completed, @intensity, @duration, now())
		 ON CONFLICT (user_id, date) DO UPDATE SET
			calories_target          = COALESCE(daily_logs.calories_target,   EXCLUDED.calories_target),
			protein_target_g         = COALESCE(daily_logs.protein_target_g,  EXCLUDED.protein_target_g),
			carbs_target_g           = COALESCE(daily_logs.carbs_target_g,    EXCLUDED.carbs_target_g),
			fat_target_g             = COALESCE(daily_logs.fat_target_g,      EXCLUDED.fat_target_g),
			workout_intensity        = COALESCE(daily_logs.workout_intensity, EXCLUDED.workout_intensity),
			calories_consumed        = EXCLUDED.calories_consumed,
			protein_consumed_g       = EXCLUDED.protein_consumed_g,
			carbs_consumed_g         = EXCLUDED.carbs_consumed_g,
			fat_consumed_g           = EXCLUDED.fat_consumed_g,
			workout_completed        = EXCLUDED.workout_completed,
			workout_intensity_actual = EXCLUDED.workout_intensity_actual,
			workout_duration_minutes = EXCLUDED.workout_duration_minutes,
			tracked_at               = now(),
			updated_at               = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": a.Date,
			"caloriesTarget": t.Calories, "proteinTarget": t.ProteinG,
			"carbsTarget": t.CarbsG, "fatTarget": t.FatG,
			"intensityTarget": string(t.WorkoutIntensity),
			"calories": a.CaloriesConsumed, "protein": a.ProteinConsumedG,
			"carbs": a.CarbsConsumedG, "fat": a.FatConsumedG,
			"completed": a.WorkoutCompleted, "intensity": intensity,
			"duration": a.WorkoutDurationMinutes,
		})
}

func (s *pgStore) upsertWorkout(ctx context.Context, userID int, date string, req workoutRequest) (dailyLog, error) {
	var intensity *string
	if req.Intensity != nil {
		v := string(*req.Intensity)
		intensity = &v
	}
	return queryOne[dailyLog](ctx, s.db,
		`INSERT INTO daily_logs (user_id, date, workout_completed, workout_intensity_actual, workout_duration_minutes, tracked_at)
		 VALUES (@userID, @date, @completed, @intensity, @duration, now())
		 ON CONFLICT (user_id, date) DO UPDATE SET
			workout_completed        = EXCLUDED.workout_completed,
			workout_intensity_actual = EXCLUDED.workout_intensity_actual,
			workout_duration_minutes = EXCLUDED.workout_duration_minutes,
			tracked_at               = now(),
			updated_at               = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": date, "completed": req.WorkoutCompleted,
			"intensity": intensity, "duration": req.DurationMinutes,
		})
}

// upsertTarget overwrites the target columns for t.Date and leaves any
// actuals already logged for that day untouched.
func (s *pgStore) upsertTarget(ctx context.Context, userID int, t plan.DailyTarget) (dailyLog, error) {
	return queryOne[dailyLog](ctx, s.db,
		`INSERT INTO daily_logs (user_id, date, calories_target, protein_target_g, carbs_target_g, fat_target_g, workout_intensity)
		 VALUES (@userID, @date, @calories, @protein, @carbs, @fat, @intensity)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			calories_target   = EXCLUDED.calories_target,
			protein_target_g  = EXCLUDED.protein_target_g,
			carbs_target_g    = EXCLUDED.carbs_target_g,
			fat_target_g      = EXCLUDED.fat_target_g,
			workout_intensity = EXCLUDED.workout_intensity,
			updated_at        = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": t.Date, "calories": t.Calories,
			"protein": t.ProteinG, "carbs": t.CarbsG, "fat": t.FatG,
			"intensity": string(t.WorkoutIntensity),
		})
}

// recentLogs returns the latest limit tracked days up to and including today,
// oldest first. Target-only rows (tomorrow's plan) are skipped.
func (s *pgStore) recentLogs(ctx context.Context, userID int, today string, limit int) ([]dailyLog, error) {
	return queryMany[dailyLog](ctx, s.db,
		`SELECT * FROM (
			SELECT * FROM daily_logs
			WHERE user_id = @userID AND date <= @today AND tracked_at IS NOT NULL
			ORDER BY date DESC LIMIT @limit
		 ) recent ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "today": today, "limit": limit})
}

// usersLoggedOn lists users with tracked intake on date.
func (s *pgStore) usersLoggedOn(ctx context.Context, date string) ([]int, error) {
	rows, err := s.db.Query(ctx,
		"SELECT user_id FROM daily_logs WHERE date = @date AND calories_consumed > 0 ORDER BY user_id",
		pgx.NamedArgs{"date": date})
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}
