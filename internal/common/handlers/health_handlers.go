package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jgirmay/fps-trainer/internal/common/health"
)

// HealthHandler manages health check endpoints
type HealthHandler struct {
	checker *health.HealthChecker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{
		checker: checker,
	}
}

// RegisterRoutes mounts the health endpoints under /health
func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
	router.GET("/health/readiness", h.Readiness)
	router.GET("/health/liveness", h.Liveness)
	router.GET("/health/detailed", h.Detailed)
}

// Health returns comprehensive health status
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.checker.Check(c.Request.Context())
	code := http.StatusOK
	if status.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// Readiness returns readiness status
// GET /health/readiness
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.checker.IsReady(c.Request.Context()) {
		c.JSON(http.StatusOK, gin.H{"ready": true})
		return
	}

	c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
}

// Liveness returns liveness status
// GET /health/liveness
func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.checker.IsAlive() {
		c.JSON(http.StatusOK, gin.H{"alive": true})
		return
	}

	c.JSON(http.StatusServiceUnavailable, gin.H{"alive": false})
}

// Detailed returns the health status together with runtime metrics
// GET /health/detailed
func (h *HealthHandler) Detailed(c *gin.Context) {
	status := h.checker.Check(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"status":      status.Status,
		"timestamp":   status.Timestamp,
		"version":     status.Version,
		"checks":      status.Checks,
		"metrics":     h.checker.GetMetrics(),
		"duration_ms": status.Duration,
	})
}
