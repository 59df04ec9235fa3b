// Package fetch - browser.go renders client-side pages in a headless browser.
// Some enterprise ATS hosts (Workday, Taleo) serve an empty shell over HTTP and
// draw the posting, or the "not found" page, in JavaScript; a plain GET cannot
// tell the two apart.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultRenderTimeout bounds one browser render.
const DefaultRenderTimeout = 20 * time.Second

// RenderedHTML loads a URL in a headless browser, waits for the page to draw,
// and returns the rendered HTML. Requires Chrome/Chromium on the host.
func RenderedHTML(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side frameworks a beat to draw the posting or its
		// "no longer available" replacement.
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}
	return html, nil
}
