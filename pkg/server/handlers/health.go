package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	model QueryRunner
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(model QueryRunner) *HealthHandler {
	return &HealthHandler{
		model: model,
	}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "cimsparql",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// ReadinessCheck handles GET /ready - the service is ready once it is
// connected to a store.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if h.model == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "no store connection",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"service":   "cimsparql",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// LivenessCheck handles GET /live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "alive",
		"go_version": GoVersion,
	})
}
