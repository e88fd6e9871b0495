package services

import (
	"strings"

	"github.com/nexconsult/leadclick/internal/models"
)

// Request defaults
const (
	DefaultName               = "John Doe"
	DefaultEmail              = "demo@example.com"
	DefaultPhone              = "98553475"
	DefaultHoldMs             = 0
	DefaultAttributionGraceMs = 3000
)

// SessionConfig is the fully defaulted input of one pipeline run.
type SessionConfig struct {
	URL       string
	Name      string
	Email     string
	Phone     string
	HoldMs    int
	KeepOpen  bool
	Selectors models.SelectorOverrides

	// HoldMs and AttributionGraceMs are reserved; no pipeline delay reads them.
	AttributionGraceMs int
}

// NewSessionConfig applies defaults to every absent field of req.
func NewSessionConfig(req models.ClickRequest) (SessionConfig, error) {
	if strings.TrimSpace(req.URL) == "" {
		return SessionConfig{}, ErrMissingURL
	}

	cfg := SessionConfig{
		URL:                req.URL,
		Name:               DefaultName,
		Email:              DefaultEmail,
		Phone:              DefaultPhone,
		HoldMs:             DefaultHoldMs,
		AttributionGraceMs: DefaultAttributionGraceMs,
	}
	if req.Name != nil {
		cfg.Name = *req.Name
	}
	if req.Email != nil {
		cfg.Email = *req.Email
	}
	if req.Phone != nil {
		cfg.Phone = *req.Phone
	}
	if req.HoldMs != nil {
		cfg.HoldMs = *req.HoldMs
	}
	if req.KeepOpen != nil {
		cfg.KeepOpen = *req.KeepOpen
	}
	if req.AttributionGraceMs != nil {
		cfg.AttributionGraceMs = *req.AttributionGraceMs
	}
	if req.Selectors != nil {
		cfg.Selectors = *req.Selectors
	}

	return cfg, nil
}
