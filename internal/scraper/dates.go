package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/dom"
)

// eventDateLayout is the date-only format of the page's datepicker control.
const eventDateLayout = "01-02-2006"

// dateResolver obtains the as-of event date for a scrape cycle from the
// page's datepicker and memoizes it. The cache is scoped to one cycle:
// RunCycle resets it after each navigation so a long-running loop picks up
// the page's daily date change.
type dateResolver struct {
	page    dom.Page
	timeout time.Duration
	now     func() time.Time

	cached string
}

func newDateResolver(page dom.Page, timeout time.Duration) *dateResolver {
	return &dateResolver{page: page, timeout: timeout, now: time.Now}
}

func (r *dateResolver) reset() {
	r.cached = ""
}

// resolve returns the cycle's event date as an ISO-8601 UTC timestamp. A
// missing or late datepicker is non-fatal: the current UTC time is used
// instead and a warning is logged.
func (r *dateResolver) resolve(ctx context.Context) string {
	if r.cached != "" {
		return r.cached
	}

	elem, err := r.page.WaitForVisible(ctx, datePickerSelector, r.timeout)
	if err != nil {
		slog.Warn("Failed to retrieve event date, using current time", "error", err)
		r.cached = formatEventDate(r.now())
		return r.cached
	}

	raw, _ := elem.Attr("value")
	if raw == "" {
		slog.Warn("Date field is empty, using current time")
		r.cached = formatEventDate(r.now())
		return r.cached
	}

	day, err := time.Parse(eventDateLayout, raw)
	if err != nil {
		slog.Warn("Unparseable date field, using current time", "value", raw, "error", err)
		r.cached = formatEventDate(r.now())
		return r.cached
	}

	// Calendar date from the page, time of day from the wall clock.
	now := r.now().UTC()
	r.cached = formatEventDate(time.Date(
		day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, time.UTC))
	return r.cached
}

func formatEventDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + "+00:00"
}
