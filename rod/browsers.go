package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/brandctx"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleEvery is the number of renders one Chrome process serves
// before a fresh process takes over.
const DefaultRecycleEvery = 75

// Process is a running browser together with the means to stop it.
type Process struct {
	Browser  *rod.Browser
	PID      int
	Shutdown func() error
}

// Launch starts a browser process.
type Launch func() (*Process, error)

// LaunchChrome starts a headless Chrome with background throttling disabled,
// so pages hidden behind other tabs still finish loading.
func LaunchChrome() (*Process, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	return &Process{
		Browser: browser,
		PID:     l.PID(),
		Shutdown: func() error {
			err := browser.Close()
			l.Kill()
			return err
		},
	}, nil
}

// generation is one browser process and the renders currently using it.
type generation struct {
	proc     *Process
	inFlight int
	retired  bool
	stop     func() error
}

// Browsers hands the current browser process to storefront renders and
// replaces it every recycleEvery renders, because Chrome's memory only grows
// across page loads. A replaced process keeps running until its last
// in-flight render is released.
//
// Browsers is safe for concurrent use.
type Browsers struct {
	launch       Launch
	recycleEvery int

	mu      sync.Mutex
	current *generation
	served  int
	closed  bool
}

// BrowsersOption configures Browsers.
type BrowsersOption func(*Browsers)

// WithRecycleEvery sets how many renders a browser process serves before it
// is replaced.
func WithRecycleEvery(n int) BrowsersOption {
	return func(b *Browsers) {
		b.recycleEvery = n
	}
}

// WithLaunch replaces LaunchChrome as the way processes are started.
func WithLaunch(fn Launch) BrowsersOption {
	return func(b *Browsers) {
		b.launch = fn
	}
}

// NewBrowsers starts the first browser process. Close must be called when
// the Browsers are no longer needed.
func NewBrowsers(opts ...BrowsersOption) (*Browsers, error) {
	b := &Browsers{launch: LaunchChrome, recycleEvery: DefaultRecycleEvery}
	for _, opt := range opts {
		opt(b)
	}
	if b.recycleEvery < 1 {
		return nil, brandctx.Errorf(brandctx.EINVALID, "browser recycle interval must be positive, got %d", b.recycleEvery)
	}

	g, err := b.start()
	if err != nil {
		return nil, err
	}
	b.current = g
	return b, nil
}

func (b *Browsers) start() (*generation, error) {
	proc, err := b.launch()
	if err != nil {
		return nil, brandctx.Errorf(brandctx.EUNAVAILABLE, "browser unavailable: %v", err)
	}
	return &generation{proc: proc, stop: sync.OnceValue(proc.Shutdown)}, nil
}

// Acquire returns the browser for one render and a release function to call
// once the render is finished. Once the current process has served its
// quota a new one is launched; if that launch fails the old process stays in
// service and the launch is retried on the next Acquire.
func (b *Browsers) Acquire() (*rod.Browser, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, brandctx.Errorf(brandctx.EUNAVAILABLE, "browser closed")
	}
	if b.served >= b.recycleEvery {
		if next, err := b.start(); err == nil {
			b.retire(b.current)
			b.current = next
			b.served = 0
		}
	}

	g := b.current
	g.inFlight++
	b.served++

	var once sync.Once
	release := func() {
		once.Do(func() { b.release(g) })
	}
	return g.proc.Browser, release, nil
}

func (b *Browsers) release(g *generation) {
	b.mu.Lock()
	g.inFlight--
	idle := g.retired && g.inFlight == 0
	b.mu.Unlock()

	if idle {
		_ = g.stop()
	}
}

// retire must be called with mu held.
func (b *Browsers) retire(g *generation) {
	g.retired = true
	if g.inFlight == 0 {
		_ = g.stop()
	}
}

// PID returns the process ID of the current browser, or 0 once closed.
func (b *Browsers) PID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return 0
	}
	return b.current.proc.PID
}

// Close stops the current browser process, including renders still using
// it. Close is safe to call multiple times.
func (b *Browsers) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	g := b.current
	b.current = nil
	g.retired = true
	return g.stop()
}
