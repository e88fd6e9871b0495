package services

import (
	"fmt"

	"github.com/nexconsult/leadclick/internal/config"
	"github.com/nexconsult/leadclick/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// Container holds all service dependencies
type Container struct {
	config       *config.Config
	logger       *logrus.Logger
	activity     *logger.ActivityLog
	registry     *prometheus.Registry
	Metrics      *Metrics
	ClickService ClickServiceInterface
}

// NewContainer creates a new service container
func NewContainer(cfg *config.Config, log *logrus.Logger) (*Container, error) {
	container := &Container{
		config:   cfg,
		logger:   log,
		registry: prometheus.NewRegistry(),
	}

	if err := container.initActivityLog(); err != nil {
		return nil, fmt.Errorf("failed to initialize activity log: %w", err)
	}

	container.initMetrics()
	container.initServices()

	return container, nil
}

// initActivityLog opens the process-wide activity file
func (c *Container) initActivityLog() error {
	if c.config.Log.FilePath == "" {
		return fmt.Errorf("activity log path is empty")
	}
	c.activity = logger.NewActivityLog(logger.FileConfig{
		Path:       c.config.Log.FilePath,
		MaxSize:    c.config.Log.MaxSize,
		MaxBackups: c.config.Log.MaxBackups,
		MaxAge:     c.config.Log.MaxAge,
		Compress:   c.config.Log.Compress,
	}, c.logger)
	return nil
}

// initMetrics registers pipeline and runtime collectors on a private registry
func (c *Container) initMetrics() {
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = MustNewMetrics(c.registry)
}

// initServices initializes all services
func (c *Container) initServices() {
	launcher := NewChromeLauncher(c.config.Browser, DefaultFingerprints, c.logger)
	c.ClickService = NewClickService(launcher, c.activity, c.logger, WithMetrics(c.Metrics))
}

// Close closes all service connections. Browsers kept open on request are not touched.
func (c *Container) Close() error {
	if c.activity != nil {
		if err := c.activity.Close(); err != nil {
			return fmt.Errorf("failed to close activity log: %w", err)
		}
	}
	return nil
}

// Health checks the health of all services
func (c *Container) Health() map[string]interface{} {
	health := make(map[string]interface{})
	if c.ClickService != nil {
		health["click"] = c.ClickService.Health()
	}
	return health
}

// Activity returns the process-wide activity log
func (c *Container) Activity() logger.Recorder {
	return c.activity
}

// Registry returns the Prometheus registry backing /metrics
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logrus.Logger {
	return c.logger
}
