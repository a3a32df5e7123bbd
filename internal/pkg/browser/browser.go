// Package browser implements dom.Page on top of headless Chrome. chromedp
// handles navigation and visibility waits; element queries are served from a
// goquery snapshot of the rendered document.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/dom"
)

const startupRetryDelay = 10 * time.Second

// Browser is a long-lived headless Chrome instance implementing dom.Page.
// It is not safe for concurrent use; the scrape loop is single-threaded.
type Browser struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

var _ dom.Page = (*Browser)(nil)

// Start launches headless Chrome, retrying up to maxRetries attempts with a
// fixed delay between them. ctx cancellation aborts the retry loop and ends
// the browser's lifetime.
func Start(ctx context.Context, maxRetries int) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)

		// Run with no actions starts the browser process.
		if err := chromedp.Run(browserCtx); err != nil {
			browserCancel()
			allocCancel()
			lastErr = err
			slog.Error("Failed to start browser",
				"attempt", attempt, "max_retries", maxRetries, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(startupRetryDelay):
			}
			continue
		}

		slog.Info("Browser started in headless mode")
		return &Browser{
			allocCancel:   allocCancel,
			browserCtx:    browserCtx,
			browserCancel: browserCancel,
		}, nil
	}
	return nil, fmt.Errorf("browser startup failed after %d attempts: %w", maxRetries, lastErr)
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := chromedp.Run(b.browserCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (b *Browser) WaitForVisible(ctx context.Context, selector string, timeout time.Duration) (dom.Element, error) {
	doc, err := b.snapshot(ctx, selector, timeout)
	if err != nil {
		return nil, err
	}
	found := doc.Find(selector).First()
	if found.Length() == 0 {
		return nil, dom.ErrNotFound
	}
	return dom.NewGoqueryElement(found), nil
}

func (b *Browser) WaitForAllVisible(ctx context.Context, selector string, timeout time.Duration) ([]dom.Element, error) {
	doc, err := b.snapshot(ctx, selector, timeout)
	if err != nil {
		return nil, err
	}
	var elems []dom.Element
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		elems = append(elems, dom.NewGoqueryElement(s))
	})
	if len(elems) == 0 {
		return nil, dom.ErrNotFound
	}
	return elems, nil
}

// snapshot waits for the selector to become visible, then re-captures the
// rendered document so each wait observes the page's current state.
func (b *Browser) snapshot(ctx context.Context, selector string, timeout time.Duration) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(b.browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(waitCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", dom.ErrTimeout, selector, timeout)
		}
		return nil, fmt.Errorf("wait for %s: %w", selector, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered document: %w", err)
	}
	return doc, nil
}

// Close releases the browser process. Safe to call after a failed Start.
func (b *Browser) Close() error {
	if b.browserCancel != nil {
		b.browserCancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
	return nil
}
