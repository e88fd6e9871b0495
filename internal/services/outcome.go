package services

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// ConfirmationPath appears in the URL once the form was accepted.
	ConfirmationPath = "/confirmation-s"

	// AttributionHook is the page function that records a conversion.
	AttributionHook = "_lc_attribution_submit"

	AttributionTriggered = "attribution triggered"
	AttributionNotFound  = "attribution function not found"

	RedirectTimeout      = 25 * time.Second
	RedirectPollInterval = 250 * time.Millisecond
	FinalSettleDelay     = 4 * time.Second
)

// Outcome is what the detector observed after submission.
type Outcome struct {
	// RedirectedTo is nil when no click happened.
	RedirectedTo      *string
	Confirmed         bool
	AttributionResult string
}

// OutcomeDetector waits for the confirmation redirect and fires the attribution hook.
type OutcomeDetector struct {
	Timeout      time.Duration
	PollInterval time.Duration
	Settle       time.Duration
}

// NewOutcomeDetector returns the default timings.
func NewOutcomeDetector() OutcomeDetector {
	return OutcomeDetector{
		Timeout:      RedirectTimeout,
		PollInterval: RedirectPollInterval,
		Settle:       FinalSettleDelay,
	}
}

// Run polls for the redirect only when clicked; the hook probe and final settle always run.
func (d OutcomeDetector) Run(ctx context.Context, a Actor, clicked bool) (Outcome, error) {
	var out Outcome

	if clicked {
		a.Log.Record(fmt.Sprintf("Waiting for %s redirect...", ConfirmationPath))
		url, confirmed, err := d.waitForRedirect(ctx, a)
		if err != nil {
			return Outcome{}, stageError(StageOutcome, err)
		}
		out.RedirectedTo = url
		out.Confirmed = confirmed
		a.Metrics.redirect(confirmed)
		if confirmed {
			a.Log.Record(fmt.Sprintf("Redirected to: %s", *url))
		} else {
			a.Log.Record(fmt.Sprintf("No redirect occurred within %d seconds.", int(d.Timeout/time.Second)))
			if url != nil {
				a.Log.Record(fmt.Sprintf("Current URL: %s", *url))
			}
		}
	}

	found, err := a.Page.InvokeHook(ctx, AttributionHook)
	switch {
	case err != nil:
		out.AttributionResult = fmt.Sprintf("attribution failed: %v", err)
		a.Log.Record(fmt.Sprintf("Attribution probe failed: %v", err))
	case found:
		out.AttributionResult = AttributionTriggered
	default:
		out.AttributionResult = AttributionNotFound
	}

	if err := a.pause(ctx, d.Settle); err != nil {
		return Outcome{}, stageError(StageOutcome, err)
	}

	return out, nil
}

// waitForRedirect returns the current URL and whether it reached the confirmation path
// before the timeout. URL read errors are retried until the deadline, where the last
// URL read successfully is reported, or nil when none was.
func (d OutcomeDetector) waitForRedirect(ctx context.Context, a Actor) (*string, bool, error) {
	deadline := a.Clock.Now().Add(d.Timeout)
	var last *string
	for {
		url, err := a.Page.URL(ctx)
		if err == nil {
			last = &url
			if strings.Contains(url, ConfirmationPath) {
				return last, true, nil
			}
		}
		if !a.Clock.Now().Before(deadline) {
			if err != nil {
				a.Log.Record(fmt.Sprintf("Could not read current URL: %v", err))
			}
			return last, false, nil
		}
		if err := a.pause(ctx, d.PollInterval); err != nil {
			return nil, false, err
		}
	}
}
