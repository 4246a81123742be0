package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	gatewayReady func() bool
}

// NewHealthHandler creates the healthcheck handler. gatewayReady reports
// whether an admin gateway token is currently held; the service still
// answers 200 without one since the first request will log in lazily.
func NewHealthHandler(gatewayReady func() bool) *HealthHandler {
	return &HealthHandler{
		gatewayReady: gatewayReady,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"gatewayReady": h.gatewayReady(),
	})
}
