package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/service"
	"mkostiv/fitjournal/internal/sync"
)

// BackupHandler holds the backup service dependency.
type BackupHandler struct {
	backupService service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// --- Handler Methods ---

// Export returns the full store as one bundle document.
func (h *BackupHandler) Export(c *gin.Context) {
	bundle, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export backup")
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// Import validates the posted bundle and atomically replaces the
// store. A rejected bundle leaves every existing record untouched.
func (h *BackupHandler) Import(c *gin.Context) {
	var bundle domain.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid bundle document: "+err.Error())
		return
	}

	err := h.backupService.Import(c.Request.Context(), &bundle)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBundleInvalid), errors.Is(err, service.ErrBundleUnsupported):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to import backup")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// PushSync uploads the current export bundle to the sync provider.
func (h *BackupHandler) PushSync(c *gin.Context) {
	err := h.backupService.PushToSync(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSyncUnavailable) {
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to push to sync provider")
		return
	}
	c.Status(http.StatusNoContent)
}

// PullSync downloads the provider's bundle and imports it.
func (h *BackupHandler) PullSync(c *gin.Context) {
	err := h.backupService.PullFromSync(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSyncUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, sync.ErrNoRemoteBundle):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBundleInvalid), errors.Is(err, service.ErrBundleUnsupported):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to pull from sync provider")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
