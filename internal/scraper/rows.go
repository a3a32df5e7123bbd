package scraper

import (
	"log/slog"
	"strings"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/dom"
	"github.com/oddsfeed/veribet-scraper/internal/pkg/models"
)

// Selectors for the veri.bet game-row markup. Price columns are tables whose
// second, third and fourth cells hold moneyline, spread and total quotes;
// index 0 of each column is the header cell, the team quotes sit at 1 and 2.
const (
	rowSelector         = ".row.justify-content-md-center .col.col-md"
	teamNameSelector    = "a.text-muted"
	moneylineSelector   = "td:nth-child(2) span.text-muted"
	spreadSelector      = "td:nth-child(3) span.text-muted"
	totalSelector       = "td:nth-child(4) span.text-muted"
	leagueLinkSelector  = "a[href*='betting-trends?f=']"
	periodBadgeSelector = "span.badge.badge-light"
	datePickerSelector  = "#datepicker"
)

// drawMarker prefixes the draw quote inside the fourth moneyline cell.
const drawMarker = "DRAW\n"

// extractRows produces every betting line carried by one game row. A
// malformed row yields no lines at all, never a partial set: the row is
// skipped with a warning and extraction moves on to the next one.
func extractRows(row dom.Element, eventDate string) (lines []models.BettingLine) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Error parsing row, skipping", "panic", r)
			lines = nil
		}
	}()

	teams := row.FindAll(teamNameSelector)
	moneyline := row.FindAll(moneylineSelector)
	spreads := row.FindAll(spreadSelector)
	totals := row.FindAll(totalSelector)

	sportLeague := models.UnknownLeague
	if link, err := row.FindOne(leagueLinkSelector); err == nil {
		if href, ok := link.Attr("href"); ok {
			parts := strings.Split(href, "f=")
			sportLeague = strings.ToUpper(parts[len(parts)-1])
		}
	}

	period := models.PeriodFullGame
	if badge, err := row.FindOne(periodBadgeSelector); err == nil {
		if text := strings.TrimSpace(badge.Text()); text != "" {
			period = text
		}
	}

	if len(teams) < 2 || len(moneyline) < 2 {
		slog.Warn("Missing teams or moneyline prices in row, skipping",
			"teams", len(teams), "moneyline_prices", len(moneyline))
		return nil
	}

	team1 := teams[0].Text()
	team2 := teams[1].Text()

	// Moneyline borrows the spread figure from the spread column, so both
	// columns must carry quotes for the two teams past their header cells.
	if len(moneyline) < 3 || len(spreads) < 3 {
		slog.Warn("Incomplete price columns in row, skipping",
			"moneyline_prices", len(moneyline), "spread_prices", len(spreads))
		return nil
	}

	line := models.BettingLine{
		SportLeague:  sportLeague,
		EventDateUTC: eventDate,
		Team1:        team1,
		Team2:        team2,
		Period:       period,
	}

	for i, team := range []string{team1, team2} {
		ml := line
		ml.LineType = models.LineTypeMoneyline
		ml.Price = ExtractPrice(moneyline[i+1].Text())
		ml.Side = team
		ml.Team = team
		ml.Spread = ExtractSpread(spreads[i+1].Text())
		lines = append(lines, ml)
	}

	// Three-way markets list a draw quote in a fourth moneyline cell.
	if strings.Contains(sportLeague, "SOCCER") && len(moneyline) >= 4 {
		draw := line
		draw.LineType = models.LineTypeMoneyline
		draw.Price = strings.TrimSpace(strings.ReplaceAll(moneyline[3].Text(), drawMarker, ""))
		draw.Side = models.SideDraw
		draw.Team = models.SideDraw
		lines = append(lines, draw)
	}

	for i, team := range []string{team1, team2} {
		sp := line
		sp.LineType = models.LineTypeSpread
		sp.Price = ExtractPrice(spreads[i+1].Text())
		sp.Side = team
		sp.Team = team
		sp.Spread = ExtractSpread(spreads[i+1].Text())
		lines = append(lines, sp)
	}

	if len(totals) >= 3 {
		for i, side := range []string{models.SideOver, models.SideUnder} {
			ou := line
			ou.LineType = models.LineTypeOverUnder
			ou.Price = ExtractPrice(totals[i+1].Text())
			ou.Side = side
			ou.Team = models.TeamTotal
			// The site lists the handicap next to the spread quote, not the
			// total quote, so the over/under line carries that figure.
			ou.Spread = ExtractSpread(spreads[i+1].Text())
			lines = append(lines, ou)
		}
	}

	return lines
}
