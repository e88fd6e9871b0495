package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// call is one recorded Page operation.
type call struct {
	Op    string
	Args  []interface{}
	Stamp int
}

// fakePage is an in-memory Page that records every operation.
type fakePage struct {
	mu    sync.Mutex
	calls []call
	clock *fakeClock

	html string
	url  string
	// liveHTML is the document ActivateText sees; html when empty.
	liveHTML string

	// navigateErr maps a wait condition to the error Navigate returns for it.
	navigateErr map[WaitCondition]error
	clickErr    map[string]error
	typeErr     error
	waitErr     error
	hookFound   bool
	hookErr     error
	centerX     float64
	centerY     float64

	// redirectAfter switches url to redirectURL once this many URL reads happened.
	redirectAfter int
	redirectURL   string
	urlReads      int
	// urlErr is returned by every URL read after the first urlErrAfter reads.
	urlErr      error
	urlErrAfter int
}

func newFakePage() *fakePage {
	return &fakePage{
		url:         "https://example.com/webinar",
		navigateErr: map[WaitCondition]error{},
		clickErr:    map[string]error{},
	}
}

func (p *fakePage) record(op string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stamp := 0
	if p.clock != nil {
		stamp = len(p.clock.Pauses())
	}
	p.calls = append(p.calls, call{Op: op, Args: args, Stamp: stamp})
}

func (p *fakePage) Calls(op string) []call {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []call
	for _, c := range p.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (p *fakePage) Ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ops := make([]string, len(p.calls))
	for i, c := range p.calls {
		ops[i] = c.Op
	}
	return ops
}

func (p *fakePage) Navigate(_ context.Context, url string, wait WaitCondition, timeout time.Duration) error {
	p.record("navigate", url, wait, timeout)
	return p.navigateErr[wait]
}

func (p *fakePage) MouseMove(_ context.Context, x, y float64, steps int) error {
	p.record("move", x, y, steps)
	return nil
}

func (p *fakePage) MouseClick(_ context.Context, x, y float64) error {
	p.record("mouseclick", x, y)
	return nil
}

func (p *fakePage) ScrollBy(_ context.Context, deltaY int) error {
	p.record("scroll", deltaY)
	return nil
}

func (p *fakePage) Click(_ context.Context, selector string) error {
	p.record("click", selector)
	if err, ok := p.clickErr[selector]; ok {
		return err
	}
	return nil
}

func (p *fakePage) TypeKey(_ context.Context, key string) error {
	p.record("key", key)
	return p.typeErr
}

func (p *fakePage) HTML(_ context.Context) (string, error) {
	p.record("html")
	return p.html, nil
}

func (p *fakePage) SelectOption(_ context.Context, selector, value string) error {
	p.record("select", selector, value)
	return nil
}

func (p *fakePage) WaitVisible(_ context.Context, selector string, timeout time.Duration) error {
	p.record("waitvisible", selector, timeout)
	return p.waitErr
}

func (p *fakePage) ActivateText(_ context.Context, selector, target string) (ButtonMatch, error) {
	p.record("activate", selector, target)
	p.mu.Lock()
	doc := p.liveHTML
	if doc == "" {
		doc = p.html
	}
	p.mu.Unlock()

	texts, err := buttonTexts(doc)
	if err != nil {
		return ButtonMatch{Index: -1}, err
	}
	m := ButtonMatch{Index: -1, Count: len(texts)}
	if len(texts) > 0 {
		m.First = texts[0]
	}
	for i, t := range texts {
		if strings.Contains(t, target) {
			m.Index, m.Text = i, t
			break
		}
	}
	return m, nil
}

func (p *fakePage) Center(_ context.Context, selector string, index int) (float64, float64, error) {
	p.record("center", selector, index)
	return p.centerX, p.centerY, nil
}

func (p *fakePage) URL(_ context.Context) (string, error) {
	p.record("url")
	p.mu.Lock()
	defer p.mu.Unlock()
	p.urlReads++
	if p.urlErr != nil && p.urlReads > p.urlErrAfter {
		return "", p.urlErr
	}
	if p.redirectURL != "" && p.urlReads > p.redirectAfter {
		p.url = p.redirectURL
	}
	return p.url, nil
}

func (p *fakePage) InvokeHook(_ context.Context, name string) (bool, error) {
	p.record("hook", name)
	return p.hookFound, p.hookErr
}

// fakeClock advances virtual time on every Sleep and never blocks.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	pauses []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 8, 17, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauses = append(c.pauses, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Pauses() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.pauses))
	copy(out, c.pauses)
	return out
}

// memRecorder keeps activity entries in memory.
type memRecorder struct {
	mu      sync.Mutex
	entries []string
}

func (r *memRecorder) Record(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, message)
}

func (r *memRecorder) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *memRecorder) Contains(substr string) bool {
	for _, e := range r.Entries() {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

// fakeLauncher hands out sessions over fresh fake pages.
type fakeLauncher struct {
	mu       sync.Mutex
	err      error
	newPage  func() *fakePage
	sessions []*BrowserSession
	closed   []string
}

func (l *fakeLauncher) Launch(_ context.Context) (*BrowserSession, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	page := newFakePage()
	if l.newPage != nil {
		page = l.newPage()
	}
	id := fmt.Sprintf("session-%d", len(l.sessions)+1)
	s := NewBrowserSession(id, DefaultFingerprints.At(0), page, func() error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.closed = append(l.closed, id)
		return nil
	})
	l.sessions = append(l.sessions, s)
	return s, nil
}

func (l *fakeLauncher) Closed() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.closed))
	copy(out, l.closed)
	return out
}

func (l *fakeLauncher) Sessions() []*BrowserSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*BrowserSession, len(l.sessions))
	copy(out, l.sessions)
	return out
}

var errBoom = errors.New("boom")

const buttonsPage = `<html><body>
<form>
  <input placeholder="Full Name"><input placeholder="Email"><input placeholder="Phone">
  <button type="button"> Cancel </button>
  <button type="submit">Register My Seat</button>
</form>
</body></html>`

func newActor(page *fakePage, clock *fakeClock, rec *memRecorder) Actor {
	page.clock = clock
	return Actor{Page: page, Clock: clock, Log: rec}
}
