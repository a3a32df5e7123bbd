// Package scraper extracts betting lines from the rendered veri.bet odds
// page: moneyline, spread and over/under quotes per game row.
package scraper

import (
	"context"
	"log/slog"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/config"
	"github.com/oddsfeed/veribet-scraper/internal/pkg/dom"
	"github.com/oddsfeed/veribet-scraper/internal/pkg/models"
)

// Scraper drives one full page-to-records pass per cycle. It holds no state
// across cycles except the event-date cache, which is reset at the start of
// every cycle.
type Scraper struct {
	page  dom.Page
	cfg   *config.ScraperConfig
	dates *dateResolver
}

// New builds a Scraper over an already-validated config and a rendered-DOM
// provider. The caller owns the page's lifecycle.
func New(page dom.Page, cfg *config.ScraperConfig) *Scraper {
	return &Scraper{
		page:  page,
		cfg:   cfg,
		dates: newDateResolver(page, cfg.DateWaitTimeout),
	}
}

// RunCycle extracts every betting line currently on the page and returns
// them in row order, markets ordered moneyline, draw, spread, over/under
// within each row. Failures never abort the cycle: a row-set timeout yields
// an empty result with a warning, and malformed rows are skipped
// individually.
func (s *Scraper) RunCycle(ctx context.Context) []models.BettingLine {
	s.dates.reset()
	eventDate := s.dates.resolve(ctx)

	rows, err := s.page.WaitForAllVisible(ctx, rowSelector, s.cfg.RowWaitTimeout)
	if err != nil {
		slog.Warn("Timed out waiting for game rows", "error", err)
		return nil
	}

	var lines []models.BettingLine
	for _, row := range rows {
		lines = append(lines, extractRows(row, eventDate)...)
	}
	return lines
}
