package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a rendered document. Queries against absent elements return empty
// strings rather than erroring; the pipelines rely on that contract.
type Page struct {
	doc *goquery.Document
}

// NewPage parses rendered HTML into a Page.
func NewPage(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{Message: "failed to parse HTML", Cause: err}
	}
	return &Page{doc: doc}, nil
}

// Text returns the trimmed text of the first element matching selector,
// or "" when none matches.
func (p *Page) Text(selector string) string {
	return strings.TrimSpace(p.doc.Find(selector).First().Text())
}

// Attr returns the named attribute of the first element matching selector,
// or "" when the element or attribute is absent.
func (p *Page) Attr(selector, name string) string {
	value, _ := p.doc.Find(selector).First().Attr(name)
	return value
}

// Find exposes the underlying selection for callers that walk repeated
// structures such as search-result rows.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.doc.Find(selector)
}
