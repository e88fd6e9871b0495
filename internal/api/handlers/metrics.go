package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// MetricsHandler exposes the Prometheus registry
type MetricsHandler struct {
	handler gin.HandlerFunc
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(gatherer prometheus.Gatherer, logger *logrus.Logger) *MetricsHandler {
	h := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog:      logger,
		ErrorHandling: promhttp.ContinueOnError,
	})
	return &MetricsHandler{handler: gin.WrapH(h)}
}

// GetMetrics serves metrics in the Prometheus text format
// @Summary Get application metrics
// @Description Prometheus metrics for sessions, navigation tiers, submissions and the Go runtime
// @Tags Metrics
// @Produce plain
// @Success 200 {string} string "Prometheus exposition format"
// @Router /metrics [get]
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	h.handler(c)
}
