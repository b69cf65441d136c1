package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/service"
	"mkostiv/fitjournal/internal/units"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs for API (Data Transfer Objects) ---

// SaveProfileRequest accepts height either in canonical cm or in the
// compound imperial form; when both are given the metric value wins.
type SaveProfileRequest struct {
	Name           string            `json:"name"`
	HeightCm       *float64          `json:"height"`
	HeightImperial *units.FeetInches `json:"heightImperial"`
	BirthDate      string            `json:"birthDate"`
	Sex            string            `json:"sex"`
	UnitPreference string            `json:"unitPreference" binding:"omitempty,oneof=metric imperial"`
}

// ProfileResponse adds the imperial display form of the stored height
// so clients preferring imperial render feet and inches directly.
type ProfileResponse struct {
	Name           string                `json:"name,omitempty"`
	HeightCm       *float64              `json:"height,omitempty"`
	HeightImperial *units.FeetInches     `json:"heightImperial,omitempty"`
	BirthDate      string                `json:"birthDate,omitempty"`
	Sex            string                `json:"sex,omitempty"`
	UnitPreference domain.UnitPreference `json:"unitPreference"`
}

// MapProfileToResponse converts a domain.Profile to its DTO.
func MapProfileToResponse(p *domain.Profile) ProfileResponse {
	resp := ProfileResponse{
		Name:           p.Name,
		HeightCm:       p.HeightCm,
		BirthDate:      p.BirthDate,
		Sex:            p.Sex,
		UnitPreference: p.UnitPreference,
	}
	if p.HeightCm != nil {
		fi := units.HeightToFeetInches(*p.HeightCm)
		resp.HeightImperial = &fi
	}
	return resp
}

// --- Handler Methods ---

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read profile")
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	height := req.HeightCm
	if height == nil && req.HeightImperial != nil {
		cm := units.HeightFromFeetInches(*req.HeightImperial)
		height = &cm
	}

	profile := &domain.Profile{
		Name:           req.Name,
		HeightCm:       height,
		BirthDate:      req.BirthDate,
		Sex:            req.Sex,
		UnitPreference: domain.UnitPreference(req.UnitPreference),
	}
	saved, err := h.profileService.SaveProfile(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, service.ErrProfileValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(saved))
}
