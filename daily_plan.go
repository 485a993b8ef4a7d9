package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/adaptive-plan-api/plan"
)

// getMealPlan returns the meal breakdown for a day's target (today's by
// default). An adjusted target rolled over from yesterday takes precedence
// over the profile baseline.
// GET /api/meal-plan?date=YYYY-MM-DD.
func (h *Handler) getMealPlan(c *gin.Context) {
	userID := c.GetInt("user_id")
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}

	mp, err := h.planner.mealPlan(c, userID, date)
	if err != nil {
		h.planError(c, "getMealPlan", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "meal_plan": mp})
}

// getTomorrow computes (and stores) tomorrow's target from today's adherence.
// GET /api/tomorrow. Calling it repeatedly on the same day is idempotent.
func (h *Handler) getTomorrow(c *gin.Context) {
	userID := c.GetInt("user_id")

	tp, err := h.planner.planTomorrow(c, userID)
	if err != nil {
		h.planError(c, "getTomorrow", err)
		return
	}

	c.JSON(http.StatusOK, tp)
}

// getWorkoutPlan returns the routine for the user's fitness goal.
// GET /api/workout-plan.
func (h *Handler) getWorkoutPlan(c *gin.Context) {
	userID := c.GetInt("user_id")

	bio, err := h.planner.biometrics(c, userID)
	if err != nil {
		h.planError(c, "getWorkoutPlan", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fitness_goal": bio.FitnessGoal,
		"workout_plan": plan.WorkoutsFor(bio.FitnessGoal),
	})
}
