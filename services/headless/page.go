// Package headless drives the rendered landing page in headless Chrome.
// Page implements flow.Document so the Navigator can scroll the real page.
package headless

import (
	"context"
	"fmt"
	"os"
	"time"

	"techforge_app_go/services/flow"

	"github.com/chromedp/chromedp"
)

// Options configures the browser
type Options struct {
	// ChromePath overrides the Chrome executable, CHROME_PATH otherwise
	ChromePath string
	Width      int
	Height     int
	Timeout    time.Duration
}

// Page is one open tab
type Page struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

var _ flow.Document = (*Page)(nil)

type element struct {
	top float64
}

func (e element) Top() float64 { return e.top }

type lookupResult struct {
	Found bool    `json:"found"`
	Top   float64 `json:"top"`
}

// Open starts Chrome and loads url
func Open(ctx context.Context, url string, opts Options) (*Page, error) {
	if opts.Width == 0 {
		opts.Width, opts.Height = 1280, 800
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = os.Getenv("CHROME_PATH")
	}
	if chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	p := &Page{
		ctx: tabCtx,
		cancel: func() {
			tabCancel()
			allocCancel()
		},
		timeout: opts.Timeout,
	}

	// The browser must start on the tab context itself; starting it under a
	// timeout context would close it when that context ends.
	if err := chromedp.Run(tabCtx); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}
	if err := p.Run(chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to open %s: %w", url, err)
	}
	return p, nil
}

// Run executes actions on the page with the page timeout
func (p *Page) Run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// Close shuts the browser down
func (p *Page) Close() {
	p.cancel()
}

func (p *Page) lookup(expr string) (flow.Element, bool) {
	var res lookupResult
	script := fmt.Sprintf(`(() => {
		const el = %s;
		if (!el) return {found: false, top: 0};
		return {found: true, top: el.getBoundingClientRect().top + window.scrollY};
	})()`, expr)
	if err := p.Run(chromedp.Evaluate(script, &res)); err != nil || !res.Found {
		return nil, false
	}
	return element{top: res.Top}, true
}

func (p *Page) ElementByID(id string) (flow.Element, bool) {
	return p.lookup(fmt.Sprintf("document.getElementById(%q)", id))
}

func (p *Page) ElementByClass(class string) (flow.Element, bool) {
	return p.lookup(fmt.Sprintf("document.getElementsByClassName(%q)[0]", class))
}

func (p *Page) ElementByData(attr, value string) (flow.Element, bool) {
	return p.lookup(fmt.Sprintf("document.querySelector('[data-' + %q + '=\"' + CSS.escape(%q) + '\"]')", attr, value))
}

func (p *Page) number(expr string) float64 {
	var v float64
	if err := p.Run(chromedp.Evaluate(expr, &v)); err != nil {
		return 0
	}
	return v
}

func (p *Page) ScrollHeight() float64 {
	return p.number("document.documentElement.scrollHeight")
}

func (p *Page) ViewportHeight() float64 {
	return p.number("window.innerHeight")
}

// ScrollOffset returns window.scrollY
func (p *Page) ScrollOffset() float64 {
	return p.number("window.scrollY")
}

func (p *Page) ScrollTo(top float64, smooth bool) error {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	var ok bool
	script := fmt.Sprintf("window.scrollTo({top: %f, behavior: %q}), true", top, behavior)
	if err := p.Run(chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("failed to scroll: %w", err)
	}
	return nil
}

// WaitScrollSettled polls until the scroll offset has moved and then stopped
// changing, or attempts run out
func (p *Page) WaitScrollSettled(interval time.Duration, attempts int) float64 {
	last := p.ScrollOffset()
	moved := false
	for i := 0; i < attempts; i++ {
		time.Sleep(interval)
		cur := p.ScrollOffset()
		if cur == last && moved {
			return cur
		}
		if cur != last {
			moved = true
		}
		last = cur
	}
	return last
}
