package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nexconsult/leadclick/internal/logger"
	"github.com/nexconsult/leadclick/internal/models"
	"github.com/sirupsen/logrus"
)

// ClickService runs the form submission pipeline, one browser per call.
type ClickService struct {
	launcher Launcher
	activity logger.Recorder
	logger   *logrus.Logger
	clock    Clock
	metrics  *Metrics

	navigation  NavigationStrategy
	interaction InteractionSimulator
	form        FormFiller
	submission  SubmissionLocator
	outcome     OutcomeDetector

	requestCounter int64
	startedAt      time.Time
}

// ClickServiceOption customises a ClickService.
type ClickServiceOption func(*ClickService)

// WithClock replaces the wall clock used for every pipeline pause.
func WithClock(c Clock) ClickServiceOption {
	return func(s *ClickService) { s.clock = c }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *Metrics) ClickServiceOption {
	return func(s *ClickService) { s.metrics = m }
}

// WithJitter replaces the keystroke jitter source.
func WithJitter(fn func(n int) int) ClickServiceOption {
	return func(s *ClickService) { s.form.Jitter = fn }
}

// NewClickService creates a new click service
func NewClickService(launcher Launcher, activity logger.Recorder, log *logrus.Logger, opts ...ClickServiceOption) *ClickService {
	if activity == nil {
		activity = logger.Discard
	}
	s := &ClickService{
		launcher:    launcher,
		activity:    activity,
		logger:      log,
		clock:       SystemClock,
		navigation:  NewNavigationStrategy(),
		interaction: NewInteractionSimulator(),
		submission:  NewSubmissionLocator(),
		outcome:     NewOutcomeDetector(),
		startedAt:   time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// recorderFor tags console mirroring of the activity log with fields when supported.
func (s *ClickService) recorderFor(fields logrus.Fields) logger.Recorder {
	if r, ok := s.activity.(interface {
		WithFields(logrus.Fields) logger.Recorder
	}); ok {
		return r.WithFields(fields)
	}
	return s.activity
}

// Submit runs launch, navigation, interaction, form, submission and outcome
// detection in order. The browser is closed on every exit path unless
// cfg.KeepOpen is set.
func (s *ClickService) Submit(ctx context.Context, cfg SessionConfig) (result *models.SessionResult, err error) {
	start := s.clock.Now()
	seq := atomic.AddInt64(&s.requestCounter, 1)

	fields := logrus.Fields{
		"session_seq": seq,
		"url":         cfg.URL,
	}
	log := s.logger.WithFields(fields)
	rec := s.recorderFor(fields)

	rec.Record(fmt.Sprintf("Visiting URL: %s", cfg.URL))
	log.WithFields(logrus.Fields{
		"hold_ms":              cfg.HoldMs,
		"attribution_grace_ms": cfg.AttributionGraceMs,
		"keep_open":            cfg.KeepOpen,
	}).Debug("Session options")

	s.metrics.sessionStarted()
	defer func() {
		label := "not_clicked"
		switch {
		case err != nil:
			label = string(StageOf(err))
			if label == "" {
				label = "error"
			}
		case result != nil && result.Success:
			label = "submitted"
		}
		s.metrics.sessionFinished(label, s.clock.Now().Sub(start))
	}()

	// Once started, a session runs to completion even if the client goes away.
	ctx = context.WithoutCancel(ctx)

	session, err := s.launcher.Launch(ctx)
	if err != nil {
		rec.Record(fmt.Sprintf("Error: %v", err))
		return nil, err
	}
	defer s.teardown(session, cfg.KeepOpen, rec, log)

	rec.Record(fmt.Sprintf("Setting user agent: %s", session.Profile.UserAgent))

	result, err = s.run(ctx, Actor{
		Page:    session.Page,
		Clock:   s.clock,
		Log:     rec,
		Metrics: s.metrics,
	}, cfg)
	if err != nil {
		rec.Record(fmt.Sprintf("Error: %v", err))
		log.WithError(err).WithField("stage", StageOf(err)).Error("Session failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"success":  result.Success,
		"duration": s.clock.Now().Sub(start),
	}).Info("Session completed")
	return result, nil
}

func (s *ClickService) run(ctx context.Context, a Actor, cfg SessionConfig) (*models.SessionResult, error) {
	if err := s.navigation.Run(ctx, a, cfg.URL); err != nil {
		return nil, err
	}
	if err := s.interaction.Run(ctx, a); err != nil {
		return nil, err
	}
	if err := s.form.Run(ctx, a, cfg); err != nil {
		return nil, err
	}

	submitted, err := s.submission.Run(ctx, a, cfg.Selectors.Button)
	if err != nil {
		return nil, err
	}

	out, err := s.outcome.Run(ctx, a, submitted.Clicked)
	if err != nil {
		return nil, err
	}

	return &models.SessionResult{
		Success:           submitted.Clicked,
		RedirectedTo:      out.RedirectedTo,
		AttributionResult: out.AttributionResult,
	}, nil
}

func (s *ClickService) teardown(session *BrowserSession, keepOpen bool, rec logger.Recorder, log *logrus.Entry) {
	if keepOpen {
		s.metrics.keptOpen()
		rec.Record("Browser kept open")
		return
	}
	if err := session.Close(); err != nil {
		log.WithError(err).Warn("Failed to close browser")
	}
	rec.Record("Browser closed")
}

// Health returns service health status
func (s *ClickService) Health() map[string]interface{} {
	return map[string]interface{}{
		"status":         "healthy",
		"sessions_total": atomic.LoadInt64(&s.requestCounter),
		"uptime":         time.Since(s.startedAt).String(),
	}
}
