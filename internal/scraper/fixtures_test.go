package scraper

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/dom"
)

// Row fixtures mirror the veri.bet markup: team names are a.text-muted
// links, price columns are spans inside the 2nd/3rd/4th table cells with a
// header cell at index 0.

const nflRowHTML = `
<div class="col col-md">
  <a href="https://veri.bet/betting-trends?f=nfl">trends</a>
  <table><tbody>
    <tr>
      <td><span class="text-muted">TEAMS</span></td>
      <td><span class="text-muted">MONEYLINE</span></td>
      <td><span class="text-muted">SPREAD</span></td>
      <td><span class="text-muted">TOTAL</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/lions">Lions</a></td>
      <td><span class="text-muted">(-150)</span></td>
      <td><span class="text-muted">-3.5 (-110)</span></td>
      <td><span class="text-muted">O 47.5 (-105)</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/bears">Bears</a></td>
      <td><span class="text-muted">(+130)</span></td>
      <td><span class="text-muted">+3.5 (-110)</span></td>
      <td><span class="text-muted">U 47.5 (-115)</span></td>
    </tr>
  </tbody></table>
</div>`

// The end-to-end case from the extraction contract: no total column at all.
const nflRowNoTotalsHTML = `
<div class="col col-md">
  <a href="https://veri.bet/betting-trends?f=nfl">trends</a>
  <table><tbody>
    <tr>
      <td><span class="text-muted">TEAMS</span></td>
      <td><span class="text-muted">H</span></td>
      <td><span class="text-muted">H</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/lions">Lions</a></td>
      <td><span class="text-muted">(-150)</span></td>
      <td><span class="text-muted">-3.5 (-110)</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/bears">Bears</a></td>
      <td><span class="text-muted">(+130)</span></td>
      <td><span class="text-muted">+3.5 (-110)</span></td>
    </tr>
  </tbody></table>
</div>`

const soccerRowHTML = `
<div class="col col-md">
  <a href="https://veri.bet/betting-trends?f=soccer-epl">trends</a>
  <span class="badge badge-light">1ST HALF</span>
  <table><tbody>
    <tr>
      <td><span class="text-muted">TEAMS</span></td>
      <td><span class="text-muted">MONEYLINE</span></td>
      <td><span class="text-muted">SPREAD</span></td>
      <td><span class="text-muted">TOTAL</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/arsenal">Arsenal</a></td>
      <td><span class="text-muted">(-120)</span></td>
      <td><span class="text-muted">-0.5 (-105)</span></td>
      <td><span class="text-muted">O 2.5 (-110)</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/chelsea">Chelsea</a></td>
      <td><span class="text-muted">(+310)</span></td>
      <td><span class="text-muted">+0.5 (-115)</span></td>
      <td><span class="text-muted">U 2.5 (-110)</span></td>
    </tr>
    <tr>
      <td></td>
      <td><span class="text-muted">DRAW
(+260)</span></td>
    </tr>
  </tbody></table>
</div>`

// Same shape as the soccer row (a 4th moneyline entry) but a two-way league.
const nflRowFourMoneylineHTML = `
<div class="col col-md">
  <a href="https://veri.bet/betting-trends?f=nfl">trends</a>
  <table><tbody>
    <tr>
      <td><span class="text-muted">TEAMS</span></td>
      <td><span class="text-muted">MONEYLINE</span></td>
      <td><span class="text-muted">SPREAD</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/lions">Lions</a></td>
      <td><span class="text-muted">(-150)</span></td>
      <td><span class="text-muted">-3.5 (-110)</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/bears">Bears</a></td>
      <td><span class="text-muted">(+130)</span></td>
      <td><span class="text-muted">+3.5 (-110)</span></td>
    </tr>
    <tr>
      <td></td>
      <td><span class="text-muted">(+900)</span></td>
    </tr>
  </tbody></table>
</div>`

const oneTeamRowHTML = `
<div class="col col-md">
  <table><tbody>
    <tr>
      <td><a class="text-muted" href="/lions">Lions</a></td>
      <td><span class="text-muted">(-150)</span></td>
      <td><span class="text-muted">-3.5 (-110)</span></td>
    </tr>
  </tbody></table>
</div>`

const noLeagueRowHTML = `
<div class="col col-md">
  <table><tbody>
    <tr>
      <td><span class="text-muted">TEAMS</span></td>
      <td><span class="text-muted">MONEYLINE</span></td>
      <td><span class="text-muted">SPREAD</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/lions">Lions</a></td>
      <td><span class="text-muted">(-150)</span></td>
      <td><span class="text-muted">-3.5 (-110)</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/bears">Bears</a></td>
      <td><span class="text-muted">(+130)</span></td>
      <td><span class="text-muted">+3.5 (-110)</span></td>
    </tr>
  </tbody></table>
</div>`

// Two teams and two moneyline entries, but no spread column: the row cannot
// supply the per-team quotes and must produce nothing.
const shortColumnsRowHTML = `
<div class="col col-md">
  <table><tbody>
    <tr>
      <td><a class="text-muted" href="/lions">Lions</a></td>
      <td><span class="text-muted">(-150)</span></td>
    </tr>
    <tr>
      <td><a class="text-muted" href="/bears">Bears</a></td>
      <td><span class="text-muted">(+130)</span></td>
    </tr>
  </tbody></table>
</div>`

// rowFromHTML parses a fixture snippet and returns its row element.
func rowFromHTML(t *testing.T, html string) dom.Element {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	sel := doc.Find("div.col.col-md")
	if sel.Length() == 0 {
		t.Fatal("fixture has no row element")
	}
	return dom.NewGoqueryElement(sel.First())
}

// fakePage serves fixture HTML through the same goquery adapter the
// chromedp page uses, so tests exercise identical selector paths.
type fakePage struct {
	rowsHTML   string
	dateValue  string
	dateAbsent bool
	rowsAbsent bool

	dateWaits int
}

var _ dom.Page = (*fakePage)(nil)

func (p *fakePage) Navigate(ctx context.Context, url string) error { return nil }

func (p *fakePage) WaitForVisible(ctx context.Context, selector string, timeout time.Duration) (dom.Element, error) {
	p.dateWaits++
	if p.dateAbsent {
		return nil, dom.ErrTimeout
	}
	html := fmt.Sprintf(`<input id="datepicker" value=%q>`, p.dateValue)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return dom.NewGoqueryElement(doc.Find(selector).First()), nil
}

func (p *fakePage) WaitForAllVisible(ctx context.Context, selector string, timeout time.Duration) ([]dom.Element, error) {
	if p.rowsAbsent {
		return nil, dom.ErrTimeout
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.rowsHTML))
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

func (p *fakePage) Close() error { return nil }
