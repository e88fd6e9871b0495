package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexconsult/leadclick/internal/logger"
)

// Actor bundles the collaborators a pipeline stage acts through.
type Actor struct {
	Page    Page
	Clock   Clock
	Log     logger.Recorder
	Metrics *Metrics
}

func (a Actor) pause(ctx context.Context, d time.Duration) error {
	return a.Clock.Sleep(ctx, d)
}

// NavigationTier is one definition of "loaded" with its own timeout.
type NavigationTier struct {
	Wait    WaitCondition
	Timeout time.Duration
}

// DefaultNavigationTiers are tried in order, each with a fresh navigation.
var DefaultNavigationTiers = []NavigationTier{
	{Wait: WaitNetworkIdle, Timeout: 60 * time.Second},
	{Wait: WaitDOMContentLoaded, Timeout: 40 * time.Second},
	{Wait: WaitLoad, Timeout: 40 * time.Second},
}

// NavigationSettleDelay lets client-side scripts initialise after load.
const NavigationSettleDelay = 5 * time.Second

var errTiersExhausted = errors.New("all wait tiers exhausted")

// NavigationStrategy loads the target page through escalating wait tiers.
type NavigationStrategy struct {
	Tiers  []NavigationTier
	Settle time.Duration
}

// NewNavigationStrategy returns the default tier ladder.
func NewNavigationStrategy() NavigationStrategy {
	return NavigationStrategy{
		Tiers:  DefaultNavigationTiers,
		Settle: NavigationSettleDelay,
	}
}

// Run navigates to url. It fails only when every tier fails.
func (s NavigationStrategy) Run(ctx context.Context, a Actor, url string) error {
	if len(s.Tiers) == 0 {
		return stageError(StageNavigation, errTiersExhausted)
	}

	var lastErr error
	for i, tier := range s.Tiers {
		if i == 0 {
			a.Log.Record(fmt.Sprintf("Loading with %s...", tier.Wait))
		} else {
			a.Log.Record(fmt.Sprintf("%s failed, trying %s...", s.Tiers[i-1].Wait, tier.Wait))
		}

		err := a.Page.Navigate(ctx, url, tier.Wait, tier.Timeout)
		a.Metrics.navigationAttempt(tier.Wait, err == nil)
		if err == nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if lastErr != nil {
		return stageError(StageNavigation, fmt.Errorf("%w: %v", errTiersExhausted, lastErr))
	}

	return a.pause(ctx, s.Settle)
}
