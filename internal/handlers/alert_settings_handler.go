package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/internal/services"
)

// AlertSettingsHandler manages the console's alert appearance settings.
type AlertSettingsHandler struct {
	service *services.AlertSettingsService
}

func NewAlertSettingsHandler(service *services.AlertSettingsService) *AlertSettingsHandler {
	return &AlertSettingsHandler{service: service}
}

// Get handles GET /api/v1/settings/alerts.
func (h *AlertSettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Get())
}

// Update handles PUT /api/v1/settings/alerts.
func (h *AlertSettingsHandler) Update(c *gin.Context) {
	var settings models.AlertSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	if err := h.service.Update(settings); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	c.JSON(http.StatusOK, h.service.Get())
}

// Reset handles DELETE /api/v1/settings/alerts, reverting to defaults.
func (h *AlertSettingsHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to reset alert settings", err)
		return
	}
	c.JSON(http.StatusOK, h.service.Get())
}
