package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lg/adaptive-plan-api/plan"
)

// errProfileNotFound means the user has not saved a profile yet.
var errProfileNotFound = errors.New("profile not found")

// errNoLog means nothing has been tracked for the requested day.
var errNoLog = errors.New("no log for date")

const waitingAdvice = "Waiting for today's tracking to personalize your adjustment. Showing standard plan for now."

// planner ties the pure plan engine to the store. It is the only place that
// decides which target applies to a day.
type planner struct {
	store store
	log   *zap.Logger
	now   func() time.Time
}

func newPlanner(s store, log *zap.Logger) *planner {
	return &planner{store: s, log: log, now: time.Now}
}

// today returns the regional calendar day, shifted by offsetDays.
func (p *planner) today(offsetDays int) string {
	return regionalDate(p.now(), offsetDays)
}

func (p *planner) biometrics(ctx context.Context, userID int) (plan.BiometricProfile, error) {
	row, err := p.store.getProfile(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return plan.BiometricProfile{}, errProfileNotFound
	}
	if err != nil {
		return plan.BiometricProfile{}, fmt.Errorf("load profile: %w", err)
	}
	return row.biometrics()
}

// targetFor returns the target that applies to date: the stored one when a
// previous adjustment rolled over onto this day, otherwise the profile
// baseline. The day's row is returned too (zero value when absent).
func (p *planner) targetFor(ctx context.Context, userID int, date string) (plan.DailyTarget, dailyLog, error) {
	row, err := p.store.getDailyLog(ctx, userID, date)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return plan.DailyTarget{}, dailyLog{}, fmt.Errorf("load daily log: %w", err)
	}
	if t, ok := row.target(); ok {
		return t, row, nil
	}
	bio, err := p.biometrics(ctx, userID)
	if err != nil {
		return plan.DailyTarget{}, row, err
	}
	t, err := plan.BaselineTarget(bio, date)
	return t, row, err
}

// mealPlan decomposes the target for date into meals.
func (p *planner) mealPlan(ctx context.Context, userID int, date string) (plan.MealPlan, error) {
	t, _, err := p.targetFor(ctx, userID, date)
	if err != nil {
		return plan.MealPlan{}, err
	}
	return plan.DecomposeMeals(t.Calories, plan.Macros{
		ProteinG:      t.ProteinG,
		FatG:          t.FatG,
		CarbsG:        t.CarbsG,
		TotalCalories: t.Calories,
	}), nil
}

// trackToday persists the day's actuals alongside the target they will be
// judged against.
func (p *planner) trackToday(ctx context.Context, userID int, actuals plan.DailyLog) (dailyLog, error) {
	if err := actuals.Validate(); err != nil {
		return dailyLog{}, err
	}
	t, _, err := p.targetFor(ctx, userID, actuals.Date)
	if err != nil {
		return dailyLog{}, err
	}
	row, err := p.store.upsertActuals(ctx, userID, t, actuals)
	if err != nil {
		return dailyLog{}, fmt.Errorf("save daily log: %w", err)
	}
	return row, nil
}

// dailySummary scores a tracked day against its target. A row that only
// holds a planned target has nothing to score.
func (p *planner) dailySummary(ctx context.Context, userID int, date string) (dailySummary, error) {
	t, row, err := p.targetFor(ctx, userID, date)
	if err != nil {
		return dailySummary{}, err
	}
	if !row.tracked() {
		return dailySummary{}, errNoLog
	}
	return dailySummary{
		DailyScore: plan.Scorecard(t, row.actuals()),
		Target:     t,
		Raw:        row,
	}, nil
}

// planTomorrow runs today's adherence through the adjustment rules and stores
// the result as tomorrow's target. Until something has been eaten today the
// baseline is returned and nothing is written.
func (p *planner) planTomorrow(ctx context.Context, userID int) (tomorrowPlan, error) {
	todayStr, tomorrowStr := p.today(0), p.today(1)

	t, row, err := p.targetFor(ctx, userID, todayStr)
	if err != nil {
		return tomorrowPlan{}, err
	}

	if row.CaloriesConsumed <= 0 {
		bio, err := p.biometrics(ctx, userID)
		if err != nil {
			return tomorrowPlan{}, err
		}
		baseline, err := plan.BaselineTarget(bio, tomorrowStr)
		if err != nil {
			return tomorrowPlan{}, err
		}
		return tomorrowPlan{Adjustment: plan.Adjustment{
			Tomorrow: baseline,
			Rules:    []plan.Rule{},
			Advice:   waitingAdvice,
		}}, nil
	}

	adj := plan.AdjustPlan(t, plan.EvaluateAdherence(t, row.actuals()))
	adj.Tomorrow.Date = tomorrowStr
	if _, err := p.store.upsertTarget(ctx, userID, adj.Tomorrow); err != nil {
		return tomorrowPlan{}, fmt.Errorf("save tomorrow's target: %w", err)
	}
	p.log.Info("tomorrow planned",
		zap.Int("user_id", userID),
		zap.String("date", tomorrowStr),
		zap.Int("calories", adj.Tomorrow.Calories),
		zap.Any("rules", adj.Rules))
	return tomorrowPlan{Adjustment: adj, Persisted: true}, nil
}
