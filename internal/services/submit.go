package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// ButtonSelector enumerates candidate submit controls.
	ButtonSelector = "button"

	// DefaultButtonText is matched case-insensitively as a substring.
	DefaultButtonText = "register my seat"

	// PreSubmitSettleDelay is the pause between filling the form and looking for controls.
	PreSubmitSettleDelay = 5 * time.Second
	// ButtonVisibleTimeout bounds the wait for the first visible control.
	ButtonVisibleTimeout = 10 * time.Second
)

// SubmitMethod is how the submit control was activated.
type SubmitMethod string

const (
	SubmitByText     SubmitMethod = "text_match"
	SubmitByFallback SubmitMethod = "geometric_fallback"
	SubmitNone       SubmitMethod = "none"
)

// SubmitOutcome describes what the locator did.
type SubmitOutcome struct {
	Clicked bool
	Method  SubmitMethod
	// Text is the normalised label of the activated control.
	Text string
}

// SubmissionLocator finds the submit control and activates it.
type SubmissionLocator struct {
	Settle         time.Duration
	VisibleTimeout time.Duration
}

// NewSubmissionLocator returns the default timings.
func NewSubmissionLocator() SubmissionLocator {
	return SubmissionLocator{
		Settle:         PreSubmitSettleDelay,
		VisibleTimeout: ButtonVisibleTimeout,
	}
}

// Run activates the first control whose text contains target, or clicks the
// first control at its centre when none match. target defaults to DefaultButtonText.
func (s SubmissionLocator) Run(ctx context.Context, a Actor, target string) (SubmitOutcome, error) {
	if err := a.pause(ctx, s.Settle); err != nil {
		return SubmitOutcome{}, stageError(StageSubmission, err)
	}

	if err := a.Page.WaitVisible(ctx, ButtonSelector, s.VisibleTimeout); err != nil {
		return SubmitOutcome{}, stageError(StageSubmission, fmt.Errorf("no visible button: %w", err))
	}

	// The snapshot only feeds the log; matching runs against the live document.
	if html, err := a.Page.HTML(ctx); err != nil {
		a.Log.Record(fmt.Sprintf("Could not snapshot page: %v", err))
	} else if texts, err := buttonTexts(html); err == nil {
		a.Log.Record(fmt.Sprintf("Found %d buttons on page", len(texts)))
		a.Log.Record(fmt.Sprintf("Button texts on page: %s", strings.Join(texts, ", ")))
	}

	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		target = DefaultButtonText
	}

	match, err := a.Page.ActivateText(ctx, ButtonSelector, target)
	if err != nil {
		return SubmitOutcome{}, stageError(StageSubmission, fmt.Errorf("activate button: %w", err))
	}

	outcome := SubmitOutcome{Method: SubmitNone}
	switch {
	case match.Index >= 0:
		a.Log.Record(fmt.Sprintf("Found button with text: %s", match.Text))
		outcome = SubmitOutcome{Clicked: true, Method: SubmitByText, Text: match.Text}
	case match.Count > 0:
		a.Log.Record("No matching button found")
		x, y, err := a.Page.Center(ctx, ButtonSelector, 0)
		if err == nil {
			err = a.Page.MouseClick(ctx, x, y)
		}
		if err != nil {
			return SubmitOutcome{}, stageError(StageSubmission, fmt.Errorf("fallback click: %w", err))
		}
		a.Log.Record("Button clicked via mouse fallback on first button")
		outcome = SubmitOutcome{Clicked: true, Method: SubmitByFallback, Text: match.First}
	}

	if outcome.Clicked {
		a.Log.Record("Button clicked")
	} else {
		a.Log.Record("Button not found")
	}
	a.Metrics.submission(outcome.Method)

	return outcome, nil
}

// buttonTexts returns the trimmed, lower-cased text of every button in document
// order. Buttons inside <template> are inert and skipped.
func buttonTexts(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var texts []string
	doc.Find(ButtonSelector).Each(func(_ int, b *goquery.Selection) {
		if b.ParentsFiltered("template").Length() > 0 {
			return
		}
		texts = append(texts, strings.ToLower(strings.TrimSpace(b.Text())))
	})
	return texts, nil
}
