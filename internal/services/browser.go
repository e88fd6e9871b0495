package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/nexconsult/leadclick/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	ViewportWidth  = 1280
	ViewportHeight = 720

	// defaultActionTimeout bounds page operations that carry no timeout of their own.
	defaultActionTimeout = 30 * time.Second
)

// BrowserSession owns one browser process and its single page.
type BrowserSession struct {
	ID      string
	Profile FingerprintProfile
	Page    Page

	closeFn   func() error
	closeOnce sync.Once
	closeErr  error
}

// NewBrowserSession wraps page; closeFn terminates the browser.
func NewBrowserSession(id string, profile FingerprintProfile, page Page, closeFn func() error) *BrowserSession {
	return &BrowserSession{
		ID:      id,
		Profile: profile,
		Page:    page,
		closeFn: closeFn,
	}
}

// Close terminates the browser process. Subsequent calls are no-ops.
func (s *BrowserSession) Close() error {
	s.closeOnce.Do(func() {
		if s.closeFn != nil {
			s.closeErr = s.closeFn()
		}
	})
	return s.closeErr
}

// ChromeLauncher starts a headful Chrome per session.
type ChromeLauncher struct {
	config       config.BrowserConfig
	fingerprints *FingerprintSet
	logger       *logrus.Logger
	intn         func(n int) int
}

// NewChromeLauncher creates a new launcher
func NewChromeLauncher(cfg config.BrowserConfig, fingerprints *FingerprintSet, logger *logrus.Logger) *ChromeLauncher {
	if fingerprints == nil {
		fingerprints = DefaultFingerprints
	}
	return &ChromeLauncher{
		config:       cfg,
		fingerprints: fingerprints,
		logger:       logger,
	}
}

// allocatorOptions are fixed for every session: headful unless configured
// otherwise, no sandbox, automation blink feature disabled.
func (l *ChromeLauncher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(ViewportWidth, ViewportHeight),
	}
	if l.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.config.ExecPath))
	}
	if l.config.Headless {
		opts = append(opts, chromedp.Headless, chromedp.Flag("disable-dev-shm-usage", true))
	}
	return opts
}

// Launch spawns the browser, picks a fingerprint and installs it before any navigation.
func (l *ChromeLauncher) Launch(ctx context.Context) (*BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, stageError(StageLaunch, err)
	}

	id := uuid.New().String()
	log := l.logger.WithField("session_id", id)

	// Sessions outlive the HTTP request when keepOpen is set, so they are not
	// parented to the request context.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), l.allocatorOptions()...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Debugf), chromedp.WithErrorf(log.Errorf))

	closeFn := func() error {
		err := chromedp.Cancel(tabCtx)
		tabCancel()
		allocCancel()
		return err
	}

	profile := l.fingerprints.Pick(l.intn)
	patch := NewEvasionPatch(profile)

	// The first Run starts the browser process and opens the page.
	err := chromedp.Run(tabCtx,
		network.Enable(),
		page.Enable(),
		page.SetLifecycleEventsEnabled(true),
		emulation.SetUserAgentOverride(profile.UserAgent).
			WithAcceptLanguage(profile.AcceptLanguage()).
			WithPlatform(profile.Platform),
		network.SetExtraHTTPHeaders(network.Headers(profile.ExtraHeaders())),
		emulation.SetDeviceMetricsOverride(ViewportWidth, ViewportHeight, 1, false),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(patch.Script()).Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to inject evasion patch: %w", err)
			}
			return nil
		}),
	)
	if err != nil {
		_ = closeFn()
		return nil, stageError(StageLaunch, err)
	}

	log.WithField("user_agent", profile.UserAgent).Debug("Browser session launched")

	return NewBrowserSession(id, profile, &chromePage{tab: tabCtx}, closeFn), nil
}

// chromePage implements Page on a chromedp tab context.
type chromePage struct {
	tab context.Context

	mu   sync.Mutex
	posX float64
	posY float64
}

// opContext derives an operation context from the tab that also ends when ctx does.
func (p *chromePage) opContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultActionTimeout
	}
	opCtx, cancel := context.WithTimeout(p.tab, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}

func (p *chromePage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	opCtx, cancel := p.opContext(ctx, timeout)
	defer cancel()
	return chromedp.Run(opCtx, actions...)
}

func lifecycleEventName(wait WaitCondition) string {
	switch wait {
	case WaitNetworkIdle:
		return "networkAlmostIdle"
	case WaitDOMContentLoaded:
		return "DOMContentLoaded"
	default:
		return "load"
	}
}

// Navigate issues a fresh navigation and waits for the lifecycle event of the new document.
func (p *chromePage) Navigate(ctx context.Context, url string, wait WaitCondition, timeout time.Duration) error {
	opCtx, cancel := p.opContext(ctx, timeout)
	defer cancel()

	events := make(chan *page.EventLifecycleEvent, 64)
	chromedp.ListenTarget(opCtx, func(ev interface{}) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok {
			select {
			case events <- e:
			default:
			}
		}
	})

	var frameID cdp.FrameID
	var loaderID cdp.LoaderID
	err := chromedp.Run(opCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var errText string
		var err error
		frameID, loaderID, errText, _, err = page.Navigate(url).Do(ctx)
		if err != nil {
			return err
		}
		if errText != "" {
			return fmt.Errorf("page load error %s", errText)
		}
		return nil
	}))
	if err != nil {
		return err
	}

	// Same-document navigations have no loader.
	if loaderID == "" {
		return nil
	}

	name := lifecycleEventName(wait)
	for {
		select {
		case e := <-events:
			if e.FrameID == frameID && e.LoaderID == loaderID && e.Name == name {
				return nil
			}
		case <-opCtx.Done():
			return fmt.Errorf("waiting for %s: %w", wait, opCtx.Err())
		}
	}
}

// MouseMove interpolates linearly from the last known pointer position.
func (p *chromePage) MouseMove(ctx context.Context, x, y float64, steps int) error {
	if steps < 1 {
		steps = 1
	}

	p.mu.Lock()
	fromX, fromY := p.posX, p.posY
	p.mu.Unlock()

	actions := make([]chromedp.Action, 0, steps)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		actions = append(actions, input.DispatchMouseEvent(input.MouseMoved, fromX+(x-fromX)*f, fromY+(y-fromY)*f))
	}
	if err := p.run(ctx, 0, actions...); err != nil {
		return err
	}

	p.mu.Lock()
	p.posX, p.posY = x, y
	p.mu.Unlock()
	return nil
}

func (p *chromePage) MouseClick(ctx context.Context, x, y float64) error {
	if err := p.MouseMove(ctx, x, y, 1); err != nil {
		return err
	}
	return p.run(ctx, 0,
		input.DispatchMouseEvent(input.MousePressed, x, y).WithButton(input.Left).WithButtons(1).WithClickCount(1),
		input.DispatchMouseEvent(input.MouseReleased, x, y).WithButton(input.Left).WithClickCount(1),
	)
}

func (p *chromePage) ScrollBy(ctx context.Context, deltaY int) error {
	script := fmt.Sprintf("window.scrollBy({ top: %d, behavior: 'smooth' })", deltaY)
	return p.run(ctx, 0, chromedp.Evaluate(script, nil))
}

func (p *chromePage) Click(ctx context.Context, selector string) error {
	var nodes []*cdp.Node
	if err := p.run(ctx, 0, chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("%w: %s", ErrLocatorNotFound, selector)
	}
	return p.run(ctx, 0, chromedp.MouseClickNode(nodes[0]))
}

func (p *chromePage) TypeKey(ctx context.Context, key string) error {
	return p.run(ctx, 0, chromedp.KeyEvent(key))
}

func (p *chromePage) HTML(ctx context.Context) (string, error) {
	var html string
	err := p.run(ctx, 0, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

const selectOptionScript = `((sel, value) => {
  const el = document.querySelector(sel);
  if (!el) return false;
  el.value = value;
  el.dispatchEvent(new Event('input', { bubbles: true }));
  el.dispatchEvent(new Event('change', { bubbles: true }));
  return true;
})(%s, %s)`

func (p *chromePage) SelectOption(ctx context.Context, selector, value string) error {
	var ok bool
	script := fmt.Sprintf(selectOptionScript, jsLiteral(selector), jsLiteral(value))
	if err := p.run(ctx, 0, chromedp.Evaluate(script, &ok)); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocatorNotFound, selector)
	}
	return nil
}

func (p *chromePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return p.run(ctx, timeout, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

const activateTextScript = `((sel, target) => {
  const els = Array.from(document.querySelectorAll(sel));
  const texts = els.map(el => (el.textContent || '').trim().toLowerCase());
  const first = texts.length > 0 ? texts[0] : '';
  const i = texts.findIndex(t => t.includes(target));
  if (i < 0) return { index: -1, text: '', count: els.length, first: first };
  const el = els[i];
  el.scrollIntoView({ behavior: 'smooth', block: 'center' });
  el.focus();
  el.click();
  return { index: i, text: texts[i], count: els.length, first: first };
})(%s, %s)`

func (p *chromePage) ActivateText(ctx context.Context, selector, target string) (ButtonMatch, error) {
	var m ButtonMatch
	script := fmt.Sprintf(activateTextScript, jsLiteral(selector), jsLiteral(target))
	if err := p.run(ctx, 0, chromedp.Evaluate(script, &m)); err != nil {
		return ButtonMatch{Index: -1}, err
	}
	return m, nil
}

const centerScript = `((sel, i) => {
  const el = document.querySelectorAll(sel)[i];
  if (!el) return { found: false, x: 0, y: 0 };
  const r = el.getBoundingClientRect();
  return { found: true, x: r.x + r.width / 2, y: r.y + r.height / 2 };
})(%s, %d)`

func (p *chromePage) Center(ctx context.Context, selector string, index int) (float64, float64, error) {
	var pt struct {
		Found bool    `json:"found"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
	}
	script := fmt.Sprintf(centerScript, jsLiteral(selector), index)
	if err := p.run(ctx, 0, chromedp.Evaluate(script, &pt)); err != nil {
		return 0, 0, err
	}
	if !pt.Found {
		return 0, 0, fmt.Errorf("%w: %s[%d]", ErrLocatorNotFound, selector, index)
	}
	return pt.X, pt.Y, nil
}

func (p *chromePage) URL(ctx context.Context) (string, error) {
	var u string
	err := p.run(ctx, 0, chromedp.Location(&u))
	return u, err
}

const invokeHookScript = `((name) => {
  const fn = window[name];
  if (typeof fn === 'function') {
    fn();
    return true;
  }
  return false;
})(%s)`

func (p *chromePage) InvokeHook(ctx context.Context, name string) (bool, error) {
	var found bool
	err := p.run(ctx, 0, chromedp.Evaluate(fmt.Sprintf(invokeHookScript, jsLiteral(name)), &found))
	return found, err
}
