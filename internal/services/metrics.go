package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "leadclick"

// Metrics exposes Prometheus collectors that report pipeline activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	sessions        *prometheus.CounterVec
	navigation      *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	redirects       *prometheus.CounterVec
	sessionDuration prometheus.Histogram
	sessionsActive  prometheus.Gauge
	sessionsKept    prometheus.Counter
}

// MustNewMetrics constructs the collectors and registers them with reg.
// Registration errors panic.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "sessions_total",
				Help:      "Completed sessions by outcome.",
			},
			[]string{"outcome"},
		),
		navigation: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "navigation_attempts_total",
				Help:      "Navigation attempts by wait tier and result.",
			},
			[]string{"tier", "result"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "submissions_total",
				Help:      "Submission attempts by method.",
			},
			[]string{"method"},
		),
		redirects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "redirects_total",
				Help:      "Confirmation redirect polling results.",
			},
			[]string{"result"},
		),
		sessionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "session_duration_seconds",
				Help:      "Wall time of a full session.",
				Buckets:   []float64{15, 30, 45, 60, 90, 120, 180, 240, 300},
			},
		),
		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "sessions_active",
				Help:      "Sessions currently running.",
			},
		),
		sessionsKept: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "sessions_kept_open_total",
				Help:      "Sessions whose browser was left running on request.",
			},
		),
	}

	reg.MustRegister(
		m.sessions,
		m.navigation,
		m.submissions,
		m.redirects,
		m.sessionDuration,
		m.sessionsActive,
		m.sessionsKept,
	)

	return m
}

func (m *Metrics) sessionStarted() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
}

// sessionFinished records the outcome label: "submitted", "not_clicked" or the failed stage.
func (m *Metrics) sessionFinished(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
	m.sessions.WithLabelValues(outcome).Inc()
	m.sessionDuration.Observe(d.Seconds())
}

func (m *Metrics) navigationAttempt(tier WaitCondition, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.navigation.WithLabelValues(string(tier), result).Inc()
}

func (m *Metrics) submission(method SubmitMethod) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(string(method)).Inc()
}

func (m *Metrics) redirect(confirmed bool) {
	if m == nil {
		return
	}
	result := "confirmed"
	if !confirmed {
		result = "timeout"
	}
	m.redirects.WithLabelValues(result).Inc()
}

func (m *Metrics) keptOpen() {
	if m == nil {
		return
	}
	m.sessionsKept.Inc()
}
