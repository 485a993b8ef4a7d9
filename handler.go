package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/adaptive-plan-api/plan"
)

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	store     store
	planner   *planner
	assistant *assistant // nil disables /api/chat
	log       *zap.Logger
}

func newHandler(s store, a *assistant, log *zap.Logger) *Handler {
	return &Handler{store: s, planner: newPlanner(s, log), assistant: a, log: log}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// planError maps a planner/engine error onto a response. Validation failures
// name the offending field; anything unexpected is logged and hidden.
func (h *Handler) planError(c *gin.Context, op string, err error) {
	var verr *plan.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "check your profile values",
			"field":  verr.Field,
			"reason": verr.Reason,
		})
	case errors.Is(err, errProfileNotFound):
		apiError(c, http.StatusNotFound, "profile not found")
	case errors.Is(err, errNoLog):
		apiError(c, http.StatusNotFound, "no log found for this date")
	default:
		h.log.Error("request failed", zap.String("op", op), zap.Int("user_id", c.GetInt("user_id")), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "server error")
	}
}

// dateParam reads an optional YYYY-MM-DD query parameter, defaulting to the
// regional today. ok=false means a 400 has already been written.
func (h *Handler) dateParam(c *gin.Context, name string) (string, bool) {
	date := c.DefaultQuery(name, h.planner.today(0))
	if !validDate(date) {
		apiError(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return "", false
	}
	return date, true
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// requestLogger logs one line per request with zap.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("user_id", c.GetInt("user_id")))
	}
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.DELETE("/account", h.deleteAccount)
	api.GET("/meal-plan", h.getMealPlan)
	api.GET("/workout-plan", h.getWorkoutPlan)
	api.POST("/track-today", h.trackToday)
	api.POST("/tracking/workout", h.trackWorkout)
	api.GET("/tracking/daily-summary", h.getDailySummary)
	api.GET("/tomorrow", h.getTomorrow)
	api.GET("/progress", h.getProgress)
	api.POST("/chat", h.chat)
}
