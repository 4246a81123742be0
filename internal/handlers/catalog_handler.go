package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsel/admin-console-api/internal/services"
	apperrors "github.com/fsel/admin-console-api/pkg/errors"
)

// CatalogHandler serves the product-package listing and the curriculum
// catalog.
type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GetProductPackages handles GET /api/v1/catalog/packages.
func (h *CatalogHandler) GetProductPackages(c *gin.Context) {
	items, err := h.service.GetProductPackages(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err, "Failed to fetch product packages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "totalCount": len(items)})
}

// ListCurriculumCourses handles GET /api/v1/catalog/curriculum.
func (h *CatalogHandler) ListCurriculumCourses(c *gin.Context) {
	ids, err := h.service.ListCurriculumCourses()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list curriculum courses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": ids})
}

// GetCurriculumCourse handles GET /api/v1/catalog/curriculum/:courseId.
func (h *CatalogHandler) GetCurriculumCourse(c *gin.Context) {
	course, err := h.service.GetCurriculumCourse(c.Param("courseId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid course id", err)
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Course not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to load curriculum course", err)
		return
	}
	c.JSON(http.StatusOK, course)
}
