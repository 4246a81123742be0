package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsel/admin-console-api/internal/middleware"
	"github.com/fsel/admin-console-api/internal/services"
	apperrors "github.com/fsel/admin-console-api/pkg/errors"
)

// OperatorAuthHandler handles console operator login and sessions.
type OperatorAuthHandler struct {
	service      *services.OperatorAuthService
	cookieDomain string
	cookieSecure bool
}

func NewOperatorAuthHandler(service *services.OperatorAuthService, cookieDomain string, cookieSecure bool) *OperatorAuthHandler {
	return &OperatorAuthHandler{
		service:      service,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

type operatorLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *OperatorAuthHandler) Login(c *gin.Context) {
	var req operatorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error while logging in", err)
		return
	}

	middleware.SetOperatorSessionCookie(c, token, h.service.SessionTTLSeconds(), h.cookieDomain, h.cookieSecure)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *OperatorAuthHandler) Logout(c *gin.Context) {
	middleware.ClearOperatorSessionCookie(c, h.cookieDomain, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *OperatorAuthHandler) GetSession(c *gin.Context) {
	session, err := middleware.GetOperatorSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
	})
}
