package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/service"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateGoalRequest defines the JSON for creating a goal. Source and
// tracking mode are not accepted here: they come from the metric.
type CreateGoalRequest struct {
	Metric    string     `json:"metric" binding:"required"`
	Target    float64    `json:"target" binding:"required"`
	Direction string     `json:"direction" binding:"required,oneof=increase decrease maintain"`
	Deadline  *time.Time `json:"deadline"`
}

// --- Handler Methods ---

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), req.Metric, req.Target, domain.GoalDirection(req.Direction), req.Deadline)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownMetric), errors.Is(err, service.ErrGoalValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create goal")
		}
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals, err := h.goalService.GetGoals(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	goal, err := h.goalService.GetGoalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to read goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	err := h.goalService.DeleteGoal(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReopenGoal clears the completion timestamp of a completed goal.
func (h *GoalHandler) ReopenGoal(c *gin.Context) {
	goal, err := h.goalService.ReopenGoal(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to reopen goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// GetGoalProgress evaluates one goal. A progress of exactly 100
// completes the goal before the response is built.
func (h *GoalHandler) GetGoalProgress(c *gin.Context) {
	progress, err := h.goalService.EvaluateGoal(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to evaluate goal")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ListGoalProgress evaluates every goal against one snapshot.
func (h *GoalHandler) ListGoalProgress(c *gin.Context) {
	progress, err := h.goalService.EvaluateAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to evaluate goals")
		return
	}
	c.JSON(http.StatusOK, progress)
}
