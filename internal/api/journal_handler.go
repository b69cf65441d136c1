package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/service"
)

// JournalHandler holds the journal service dependency.
type JournalHandler struct {
	journalService service.JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalService service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// --- DTOs for API (Data Transfer Objects) ---

// SaveJournalRequest defines the JSON accepted when writing a day's
// entry. Omitted sub-objects stay unrecorded for that day.
type SaveJournalRequest struct {
	Body    *domain.BodyMetrics  `json:"body"`
	Daily   *domain.DailyMetrics `json:"daily"`
	Workout *domain.WorkoutLog   `json:"workout"`
	Notes   string               `json:"notes"`
}

// PatchJournalRequest carries a partial update; only non-nil
// sub-objects are merged onto the stored entry.
type PatchJournalRequest struct {
	Body    *domain.BodyMetrics  `json:"body"`
	Daily   *domain.DailyMetrics `json:"daily"`
	Workout *domain.WorkoutLog   `json:"workout"`
	Notes   *string              `json:"notes"`
}

// --- Handler Methods ---

// GetJournal returns the entry for a date, synthesized empty when the
// day was never written.
func (h *JournalHandler) GetJournal(c *gin.Context) {
	journal, err := h.journalService.GetJournal(c.Request.Context(), c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to read journal")
		return
	}
	c.JSON(http.StatusOK, journal)
}

// ListJournals returns all journals, newest first.
func (h *JournalHandler) ListJournals(c *gin.Context) {
	journals, err := h.journalService.ListJournals(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, journals)
}

// SaveJournal upserts the full entry for the date in the path.
func (h *JournalHandler) SaveJournal(c *gin.Context) {
	var req SaveJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	journal := &domain.Journal{
		Date:    c.Param("date"),
		Body:    req.Body,
		Daily:   req.Daily,
		Workout: req.Workout,
		Notes:   req.Notes,
	}
	saved, err := h.journalService.SaveJournal(c.Request.Context(), journal)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to save journal")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// PatchJournal merges the provided sub-objects onto an existing entry.
func (h *JournalHandler) PatchJournal(c *gin.Context) {
	var req PatchJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if req.Body != nil {
		fields["body"] = req.Body
	}
	if req.Daily != nil {
		fields["daily"] = req.Daily
	}
	if req.Workout != nil {
		fields["workout"] = req.Workout
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		abortWithError(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	err := h.journalService.UpdateJournal(c.Request.Context(), c.Param("date"), fields)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update journal")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteJournal removes the entry for a date.
func (h *JournalHandler) DeleteJournal(c *gin.Context) {
	err := h.journalService.DeleteJournal(c.Request.Context(), c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrJournalMissing) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete journal")
		return
	}
	c.Status(http.StatusNoContent)
}
