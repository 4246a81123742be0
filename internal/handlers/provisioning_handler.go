package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/internal/services"
)

// ProvisioningHandler exposes the account workflows: placement-test reset,
// add student, delete account.
type ProvisioningHandler struct {
	service *services.ProvisioningService
}

func NewProvisioningHandler(service *services.ProvisioningService) *ProvisioningHandler {
	return &ProvisioningHandler{service: service}
}

type resetResponse struct {
	models.ResetResult
	Progress []models.ProgressEvent `json:"progress"`
}

// ResetPlacementTest handles POST /api/v1/students/reset-placement-test.
//
// The request body is the full student record as currently displayed, so the
// rebuild uses exactly what the operator sees. Paying customers are refused
// here, before the workflow can issue its first delete: the reset wipes all
// learning history and is only ever meant for Leads accounts.
func (h *ProvisioningHandler) ResetPlacementTest(c *gin.Context) {
	var student models.StudentRecord
	if err := c.ShouldBindJSON(&student); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	if student.IsClient() {
		respondError(c, http.StatusForbidden, "Reset is not allowed for Client accounts", nil)
		return
	}

	var progress []models.ProgressEvent
	result := h.service.ResetPlacementTest(c.Request.Context(), student,
		func(step, message string, replacements map[string]string, isError bool) {
			progress = append(progress, models.ProgressEvent{
				Step:         step,
				Message:      message,
				Replacements: replacements,
				IsError:      isError,
			})
		})

	resp := resetResponse{ResetResult: result, Progress: progress}
	if !result.Success {
		attachError(c, errors.New(result.Message))
		c.JSON(http.StatusBadGateway, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddStudent handles POST /api/v1/students.
func (h *ProvisioningHandler) AddStudent(c *gin.Context) {
	var req models.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	result := h.service.AddStudent(c.Request.Context(), req)
	switch {
	case result.Success:
		c.JSON(http.StatusOK, result)
	case result.IsValidationError:
		c.JSON(http.StatusConflict, result)
	default:
		c.JSON(http.StatusBadGateway, result)
	}
}

// DeleteStudent handles DELETE /api/v1/students/:userId. Permanent.
func (h *ProvisioningHandler) DeleteStudent(c *gin.Context) {
	userID := models.UserID(c.Param("userId"))
	if userID == "" {
		respondError(c, http.StatusBadRequest, "userId is required", nil)
		return
	}

	result := h.service.DeleteStudent(c.Request.Context(), userID)
	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
