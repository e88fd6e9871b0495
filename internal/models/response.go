package models

import (
	"time"
)

// SessionResult is the terminal report of one form submission.
// @Description Outcome of a /click request
type SessionResult struct {
	// Whether a submit control was activated
	Success bool `json:"success" example:"true"`
	// URL after the click, null when nothing was clicked or the URL could not be read
	RedirectedTo *string `json:"redirectedTo" example:"https://example.com/confirmation-s/abc"`
	// Whether the page exposed an attribution hook
	AttributionResult string `json:"attributionResult" example:"attribution triggered"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error string `json:"error" example:"Missing URL"`
}

// FailureResponse is returned when the pipeline fails.
type FailureResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"navigation failed: all wait tiers exhausted"`
}

// LivenessResponse describes the process for liveness probes.
type LivenessResponse struct {
	Alive     bool      `json:"alive"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Version   string    `json:"version"`
}

// NotFoundResponse is returned for unknown routes and methods.
type NotFoundResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Method    string    `json:"method,omitempty"`
}
