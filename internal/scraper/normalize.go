package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	spreadRe = regexp.MustCompile(`[-+]?\d+(\.\d+)?`)
	priceRe  = regexp.MustCompile(`\(([-+]?\d+)\)`)
)

// ExtractSpread parses the first signed decimal numeral in the text as a
// point-spread value. It never fails: missing or unparseable numerals
// produce 0.0.
func ExtractSpread(text string) float64 {
	m := spreadRe.FindString(text)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// ExtractPrice pulls an odds quote out of the text: a signed integer in
// parentheses, e.g. "-3.5 (-110)" yields "-110". When no parenthesized
// numeral is present the trimmed input is returned as-is, so prices like
// "even" survive unchanged.
func ExtractPrice(text string) string {
	if m := priceRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strings.TrimSpace(text)
}
