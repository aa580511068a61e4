package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the visible text of a scraped fragment. Plain text
// passes through CleanText unchanged.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	doc.Find("script, style, noscript").Remove()
	// keep block boundaries as spaces so words do not run together
	doc.Find("br, p, li, div, h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return CleanText(doc.Text())
}

// StripHTMLList applies StripHTML to each entry and drops what ends up
// empty or duplicated.
func StripHTMLList(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, StripHTML(x))
	}
	return CleanList(out)
}
