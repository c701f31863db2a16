// Package fetch provides the headless-browser rendering layer for the
// collection pipeline. Requires Chrome/Chromium to be installed on the system.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultUserAgent is presented to the listings site on every navigation.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// settleWait is the extra wait after body-ready for late script-driven content.
const settleWait = 2 * time.Second

// Error represents a failure to render a page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Browser owns one headless browser process. A collection run creates its own
// Browser and must Close it on both success and failure paths; each Render
// opens a fresh tab scoped to that navigation.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// NewBrowser launches a headless browser. Launch failures surface here rather
// than on the first navigation.
func NewBrowser(ctx context.Context) (*Browser, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, &Error{Message: "failed to launch browser", Cause: err}
	}

	return &Browser{ctx: browserCtx, cancel: cancel, allocCancel: allocCancel}, nil
}

// Close tears down the browser process and all of its tabs.
func (b *Browser) Close() {
	b.cancel()
	b.allocCancel()
}

// Render loads url in a fresh tab, waits for the document to settle, and
// returns the rendered page. The navigation is bounded by timeout; ctx
// cancellation aborts it early.
func (b *Browser) Render(ctx context.Context, url string, timeout time.Duration) (*Page, error) {
	tabCtx, cancel := chromedp.NewContext(b.ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleWait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: url, Message: "navigation failed", Cause: err}
	}

	return NewPage(html)
}
