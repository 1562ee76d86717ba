// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// renderWait is how long the browser fetcher waits after navigation for
// scripts to render the lyric block.
const renderWait = 2 * time.Second

// BrowserFetcher fetches pages through headless Chrome so that
// JavaScript-rendered lyric blocks are present in the returned HTML.
// The browser is started on first use and reused across fetches.
// Call Close when done.
type BrowserFetcher struct {
	userAgent string

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closed        bool
}

// NewBrowserFetcher creates a BrowserFetcher. An empty userAgent falls
// back to DefaultUserAgent.
func NewBrowserFetcher(userAgent string) *BrowserFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &BrowserFetcher{userAgent: userAgent}
}

// start launches the browser lazily under f.mu.
func (f *BrowserFetcher) start() error {
	if f.browserCtx != nil {
		return nil
	}
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-first-run", true),
		chromedp.UserAgent(f.userAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface here, not mid-fetch.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("starting browser: %w", err)
	}

	f.allocCancel = allocCancel
	f.browserCtx = browserCtx
	f.browserCancel = browserCancel
	return nil
}

// Fetch implements PageFetcher. It navigates to the URL, waits for scripts
// to settle, and returns the rendered document HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return "", fmt.Errorf("browser fetcher is closed")
	}
	if err := f.start(); err != nil {
		f.mu.Unlock()
		return "", err
	}
	browserCtx := f.browserCtx
	f.mu.Unlock()

	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		tabCtx, cancel = context.WithDeadline(tabCtx, deadline)
		defer cancel()
	}

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(renderWait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the browser down. Idempotent.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if f.browserCancel != nil {
		f.browserCancel()
	}
	if f.allocCancel != nil {
		f.allocCancel()
	}
	return nil
}
