package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/internal/services"
	apperrors "github.com/fsel/admin-console-api/pkg/errors"
	"github.com/fsel/admin-console-api/pkg/fsel"
)

// StudentHandler serves student search and the per-student detail lookups.
type StudentHandler struct {
	search    *services.SearchService
	placement *services.PlacementService
}

func NewStudentHandler(search *services.SearchService, placement *services.PlacementService) *StudentHandler {
	return &StudentHandler{search: search, placement: placement}
}

// Search handles GET /api/v1/students/search?keyword=...&page=...&pageSize=...
func (h *StudentHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	result, err := h.search.Search(c.Request.Context(), keyword, page, pageSize)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Keyword must be a full email address or phone number", err)
			return
		}
		respondGatewayError(c, err, "Student search failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPlacementTest handles GET /api/v1/placement-tests/:studentId. The
// route parameter is the StudentID, not the UserID.
func (h *StudentHandler) GetPlacementTest(c *gin.Context) {
	studentID := models.StudentID(c.Param("studentId"))

	data, err := h.placement.GetPlacementTest(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "studentId is required", err)
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "No placement test result for this student", err)
			return
		}
		respondGatewayError(c, err, "Failed to fetch placement test results")
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetOTPState handles GET /api/v1/students/:userId/otp. The route parameter
// is the UserID.
func (h *StudentHandler) GetOTPState(c *gin.Context) {
	userID := models.UserID(c.Param("userId"))

	data, err := h.search.GetOTPState(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "userId is required", err)
			return
		}
		respondGatewayError(c, err, "Failed to fetch OTP state")
		return
	}

	c.JSON(http.StatusOK, data)
}

// respondGatewayError maps an upstream failure to 502 with the gateway's own
// error text where available.
func respondGatewayError(c *gin.Context, err error, fallback string) {
	var apiErr *fsel.APIError
	if errors.As(err, &apiErr) {
		respondError(c, http.StatusBadGateway, apiErr.Message, err)
		return
	}
	respondError(c, http.StatusBadGateway, fallback, err)
}
