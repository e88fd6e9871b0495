package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/leadclick/internal/logger"
	"github.com/nexconsult/leadclick/internal/models"
	"github.com/nexconsult/leadclick/internal/services"
	"github.com/sirupsen/logrus"
)

// ClickHandler handles form submission requests
type ClickHandler struct {
	clickService services.ClickServiceInterface
	activity     logger.Recorder
	logger       *logrus.Logger
}

// NewClickHandler creates a new click handler
func NewClickHandler(clickService services.ClickServiceInterface, activity logger.Recorder, logger *logrus.Logger) *ClickHandler {
	return &ClickHandler{
		clickService: clickService,
		activity:     activity,
		logger:       logger,
	}
}

// Click runs one browser session against the requested page
// @Summary Submit a lead form
// @Description Opens a headful browser, fills the form on url and submits it. The call blocks until the session ends.
// @Tags Click
// @Accept json
// @Produce json
// @Param request body models.ClickRequest true "Session options"
// @Success 200 {object} models.SessionResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.FailureResponse
// @Router /click [post]
func (h *ClickHandler) Click(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	log := h.logger.WithField("request_id", requestID)

	var req models.ClickRequest
	// an empty body is treated as {}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Warn("Invalid request body")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	cfg, err := services.NewSessionConfig(req)
	if err != nil {
		if errors.Is(err, services.ErrMissingURL) {
			h.activity.Record("Missing URL in request")
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.clickService.Submit(c.Request.Context(), cfg)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"url":      cfg.URL,
			"stage":    services.StageOf(err),
			"duration": time.Since(start),
		}).Error("Click session failed")

		c.JSON(http.StatusInternalServerError, models.FailureResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	log.WithFields(logrus.Fields{
		"url":      cfg.URL,
		"success":  result.Success,
		"duration": time.Since(start),
	}).Info("Click session completed")

	c.JSON(http.StatusOK, result)
}
