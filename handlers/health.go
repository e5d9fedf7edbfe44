package handlers

import (
	"net/http"

	"portal/utils"

	"github.com/gin-gonic/gin"
)

// HealthReporter exposes the latest dependency snapshot.
type HealthReporter interface {
	Status() utils.HealthStatus
}

// HealthHandler serves the liveness endpoints.
type HealthHandler struct {
	Monitor HealthReporter
}

// Root handles GET /.
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "portal server is running!")
}

// Health handles GET /health, answering 503 while a dependency is down.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.Monitor.Status()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
