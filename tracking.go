package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/adaptive-plan-api/plan"
)

// progressDays is how many recent days GET /api/progress returns.
const progressDays = 7

// trackToday records the day's intake and workout against that day's target.
// POST /api/track-today. Date defaults to today in the plan zone. Posting the
// same date again overwrites the actuals.
func (h *Handler) trackToday(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body trackTodayRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var verr *plan.ValidationError
		if errors.As(err, &verr) {
			h.planError(c, "trackToday", verr)
			return
		}
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = h.planner.today(0)
	}
	if !validDate(body.Date) {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	body.DailyLog.Date = body.Date

	row, err := h.planner.trackToday(c, userID, body.DailyLog)
	if err != nil {
		h.planError(c, "trackToday", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "log": row})
}

// trackWorkout records only the workout half of a day.
// POST /api/tracking/workout. Body: { "date", "workout_completed", "intensity"?, "duration_minutes"? }.
func (h *Handler) trackWorkout(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body workoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}
	if !validDate(body.Date) {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.DurationMinutes != nil && *body.DurationMinutes < 0 {
		apiError(c, http.StatusBadRequest, "duration_minutes must not be negative")
		return
	}

	row, err := h.store.upsertWorkout(c, userID, body.Date, body)
	if err != nil {
		h.planError(c, "trackWorkout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Workout logged successfully", "log": row})
}

// getDailySummary scores one tracked day.
// GET /api/tracking/daily-summary?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}

	summary, err := h.planner.dailySummary(c, userID, date)
	if err != nil {
		h.planError(c, "getDailySummary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getProgress returns the most recent tracked days up to today, oldest first,
// for trend charts. Tomorrow's planned-only row is not a tracked day.
// GET /api/progress. Returns an empty array (not null) when nothing is tracked.
func (h *Handler) getProgress(c *gin.Context) {
	userID := c.GetInt("user_id")

	rows, err := h.store.recentLogs(c, userID, h.planner.today(0), progressDays)
	if err != nil {
		h.planError(c, "getProgress", err)
		return
	}

	history := make([]progressDay, 0, len(rows))
	for _, r := range rows {
		history = append(history, progressDay{
			Date:             r.Date,
			CaloriesConsumed: r.CaloriesConsumed,
			CaloriesTarget:   r.CaloriesTarget,
			ProteinConsumedG: r.ProteinConsumedG,
			ProteinTargetG:   r.ProteinTargetG,
			WorkoutCompleted: r.WorkoutCompleted,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
