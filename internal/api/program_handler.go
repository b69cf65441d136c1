package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mkostiv/fitjournal/internal/service"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs for API (Data Transfer Objects) ---

// SaveProgramRequest defines the JSON for creating or updating a
// program. Every day must hold 3-6 exercise names.
type SaveProgramRequest struct {
	Name string     `json:"name" binding:"required"`
	Days [][]string `json:"days" binding:"required"`
}

// NextDayResponse carries the day-rotation suggestion.
type NextDayResponse struct {
	ProgramID string `json:"programId"`
	NextDay   int    `json:"nextDay"`
}

// ActiveProgramRequest sets or clears the active-program pointer.
type ActiveProgramRequest struct {
	ProgramID *string `json:"programId"`
}

// --- Handler Methods ---

func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req SaveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), req.Name, req.Days)
	if err != nil {
		if errors.Is(err, service.ErrProgramValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create program")
		return
	}
	c.JSON(http.StatusCreated, program)
}

func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programService.GetPrograms(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list programs")
		return
	}
	c.JSON(http.StatusOK, programs)
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	program, err := h.programService.GetProgramByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to read program")
		return
	}
	c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var req SaveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), c.Param("id"), req.Name, req.Days)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrProgramValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update program")
		}
		return
	}
	c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	err := h.programService.DeleteProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete program")
		return
	}
	c.Status(http.StatusNoContent)
}

// NextDay returns the rotation suggestion computed from history.
func (h *ProgramHandler) NextDay(c *gin.Context) {
	programID := c.Param("id")
	next, err := h.programService.NextWorkoutDay(c.Request.Context(), programID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to compute next day")
		return
	}
	c.JSON(http.StatusOK, NextDayResponse{ProgramID: programID, NextDay: next})
}

// GetActiveProgram returns the pointer, null when unset.
func (h *ProgramHandler) GetActiveProgram(c *gin.Context) {
	id, err := h.programService.ActiveProgram(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read active program")
		return
	}
	if id == "" {
		c.JSON(http.StatusOK, gin.H{"programId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"programId": id})
}

// SetActiveProgram points the setting at a program, or clears it when
// programId is null.
func (h *ProgramHandler) SetActiveProgram(c *gin.Context) {
	var req ActiveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var err error
	if req.ProgramID == nil || *req.ProgramID == "" {
		err = h.programService.ClearActiveProgram(c.Request.Context())
	} else {
		err = h.programService.SetActiveProgram(c.Request.Context(), *req.ProgramID)
	}
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to set active program")
		return
	}
	c.Status(http.StatusNoContent)
}
