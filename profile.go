package main

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/adaptive-plan-api/plan"
)

// withComputed attaches BMR, TDEE and goal-adjusted calories when the stored
// profile validates.
func withComputed(p profile) profileResponse {
	resp := profileResponse{profile: p}
	bio, err := p.biometrics()
	if err != nil {
		return resp
	}
	tdee, err := plan.TDEE(bio)
	if err != nil {
		return resp
	}
	calories, _ := plan.EstimateDailyCalories(bio)
	bmr := int(math.Round(plan.BMR(bio)))
	tdeeInt := int(math.Round(tdee))
	resp.ComputedBMR = &bmr
	resp.ComputedTDEE = &tdeeInt
	resp.ComputedCalories = &calories
	return resp
}

// getProfile returns the authenticated user's profile with computed energy figures.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := h.store.getProfile(c, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		h.planError(c, "getProfile", err)
		return
	}

	c.JSON(http.StatusOK, withComputed(p))
}

// putProfile creates or replaces the profile. Every field is required and
// validated before anything is written.
// PUT /api/profile.
func (h *Handler) putProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		// Unknown enum values surface from binding as ValidationErrors.
		var verr *plan.ValidationError
		if errors.As(err, &verr) {
			h.planError(c, "putProfile", verr)
			return
		}
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	bio := plan.BiometricProfile(body)
	if err := bio.Validate(); err != nil {
		h.planError(c, "putProfile", err)
		return
	}

	saved, err := h.store.upsertProfile(c, profile{
		UserID:        userID,
		WeightKg:      bio.WeightKg,
		HeightCm:      bio.HeightCm,
		Age:           bio.Age,
		Gender:        string(bio.Gender),
		ActivityLevel: string(bio.ActivityLevel),
		FitnessGoal:   string(bio.FitnessGoal),
	})
	if err != nil {
		h.planError(c, "putProfile", err)
		return
	}

	c.JSON(http.StatusOK, withComputed(saved))
}

// deleteAccount removes the user along with their profile and logs.
// DELETE /api/account. Returns 204 on success.
func (h *Handler) deleteAccount(c *gin.Context) {
	userID := c.GetInt("user_id")

	err := h.store.deleteUser(c, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.planError(c, "deleteAccount", err)
		return
	}

	c.Status(http.StatusNoContent)
}
