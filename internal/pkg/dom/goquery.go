package dom

import (
	"github.com/PuerkitoBio/goquery"
)

// goqueryElement adapts a goquery selection to the Element interface. Both
// the chromedp-backed page and the test fakes query through it, so selector
// behavior is identical in production and in tests.
type goqueryElement struct {
	sel *goquery.Selection
}

// NewGoqueryElement wraps a goquery selection as an Element.
func NewGoqueryElement(sel *goquery.Selection) Element {
	return &goqueryElement{sel: sel}
}

func (e *goqueryElement) Text() string {
	return e.sel.Text()
}

func (e *goqueryElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *goqueryElement) FindOne(selector string) (Element, error) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, ErrNotFound
	}
	return &goqueryElement{sel: found}, nil
}

func (e *goqueryElement) FindAll(selector string) []Element {
	var out []Element
	e.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &goqueryElement{sel: s})
	})
	return out
}
