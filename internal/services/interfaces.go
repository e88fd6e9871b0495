package services

import (
	"context"
	"time"

	"github.com/nexconsult/leadclick/internal/models"
)

// ClickServiceInterface defines the interface for the form submission pipeline
type ClickServiceInterface interface {
	// Submit runs one isolated browser session against cfg.URL
	Submit(ctx context.Context, cfg SessionConfig) (*models.SessionResult, error)

	// Health returns service health status
	Health() map[string]interface{}
}

// Launcher creates one isolated browser session per call.
type Launcher interface {
	Launch(ctx context.Context) (*BrowserSession, error)
}

// WaitCondition names the page lifecycle milestone a navigation waits for.
type WaitCondition string

const (
	// WaitNetworkIdle resolves when at most two network connections remain open.
	WaitNetworkIdle WaitCondition = "networkidle2"
	// WaitDOMContentLoaded resolves once the document has been parsed.
	WaitDOMContentLoaded WaitCondition = "domcontentloaded"
	// WaitLoad resolves on the window load event.
	WaitLoad WaitCondition = "load"
)

// Page is the single active tab of a BrowserSession.
type Page interface {
	// Navigate loads url and blocks until wait is reached or timeout elapses
	Navigate(ctx context.Context, url string, wait WaitCondition, timeout time.Duration) error

	// MouseMove moves the pointer from its current position to (x, y) in steps
	MouseMove(ctx context.Context, x, y float64, steps int) error

	// MouseClick presses and releases the left button at (x, y)
	MouseClick(ctx context.Context, x, y float64) error

	// ScrollBy smooth-scrolls the window vertically
	ScrollBy(ctx context.Context, deltaY int) error

	// Click clicks the first element matching selector
	Click(ctx context.Context, selector string) error

	// TypeKey dispatches one keystroke to the focused element
	TypeKey(ctx context.Context, key string) error

	// HTML returns a serialisation of the live DOM
	HTML(ctx context.Context) (string, error)

	// SelectOption selects value on the first element matching selector
	SelectOption(ctx context.Context, selector, value string) error

	// WaitVisible blocks until an element matching selector is visible
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// ActivateText activates the first element matching selector whose normalised
	// text contains target. Matching and activation happen in one evaluation.
	ActivateText(ctx context.Context, selector, target string) (ButtonMatch, error)

	// Center returns the on-screen centre of the index-th element matching selector
	Center(ctx context.Context, selector string, index int) (x, y float64, err error)

	// URL returns the current location
	URL(ctx context.Context) (string, error)

	// InvokeHook calls window[name]() and reports whether it was a function
	InvokeHook(ctx context.Context, name string) (bool, error)
}

// ButtonMatch describes the controls seen by ActivateText in the live document.
type ButtonMatch struct {
	// Index of the activated control, -1 when no text matched
	Index int    `json:"index"`
	Text  string `json:"text"`
	Count int    `json:"count"`
	// First is the normalised text of the first control
	First string `json:"first"`
}

// Clock provides the pipeline's suspension points.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SystemClock is the wall clock.
var SystemClock Clock = realClock{}
