package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/leadclick/internal/logger"
	"github.com/nexconsult/leadclick/internal/models"
	"github.com/sirupsen/logrus"
)

// Version is reported by the liveness probe.
const Version = "1.0.0"

// HealthChecker reports the status of each service.
type HealthChecker interface {
	Health() map[string]interface{}
}

// HealthHandler handles health check requests
type HealthHandler struct {
	services  HealthChecker
	activity  logger.Recorder
	logger    *logrus.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(services HealthChecker, activity logger.Recorder, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		services:  services,
		activity:  activity,
		logger:    logger,
		startTime: time.Now(),
	}
}

// GetHealth handles the plain health check
// @Summary Health check
// @Description Returns OK while the server is accepting requests
// @Tags Health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *gin.Context) {
	h.activity.Record("Health check requested")
	c.String(http.StatusOK, "OK")
}

// GetReadiness handles readiness probe
// @Summary Readiness check
// @Description Check if the services are ready to run sessions
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (h *HealthHandler) GetReadiness(c *gin.Context) {
	servicesHealth := h.services.Health()

	ready := true
	issues := make([]string, 0)
	for name, serviceHealth := range servicesHealth {
		if healthMap, ok := serviceHealth.(map[string]interface{}); ok {
			if status, exists := healthMap["status"]; exists && status == "unhealthy" {
				ready = false
				issues = append(issues, name+" service is unhealthy")
			}
		}
	}

	response := gin.H{
		"ready":     ready,
		"timestamp": time.Now(),
		"services":  servicesHealth,
	}
	if len(issues) > 0 {
		response["issues"] = issues
	}

	httpStatus := http.StatusOK
	if !ready {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, response)
}

// GetLiveness handles liveness probe
// @Summary Liveness check
// @Description Check if the API is alive and responding
// @Tags Health
// @Produce json
// @Success 200 {object} models.LivenessResponse
// @Router /health/live [get]
func (h *HealthHandler) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, models.LivenessResponse{
		Alive:     true,
		Timestamp: time.Now(),
		Uptime:    time.Since(h.startTime).String(),
		Version:   Version,
	})
}
