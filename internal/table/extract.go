// Package table isolates provider tables from raw markup and walks their rows.
package table

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/albapepper/scoracle-tables/internal/fetch"
)

// Selector picks the element(s) that hold the data: an element name plus the
// class attributes it must carry, optionally narrowed by id or attribute.
type Selector struct {
	Element string
	Classes []string
	ID      string
	Attr    [2]string // name, value
}

// Default is the layout nearly every provider page uses.
var Default = Selector{Element: "table", Classes: []string{"shsTable", "shsBorderTable"}}

// CSS renders the selector for goquery.
func (s Selector) CSS() string {
	var b strings.Builder
	el := s.Element
	if el == "" {
		el = "table"
	}
	b.WriteString(el)
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		b.WriteString("." + c)
	}
	if s.Attr[0] != "" {
		fmt.Fprintf(&b, "[%s=%q]", s.Attr[0], s.Attr[1])
	}
	return b.String()
}

// NoMatchError reports that a selector found nothing. Callers decide whether
// that means "no data" or a genuine failure.
type NoMatchError struct {
	Selector string
	URL      string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no element matches %q in %s", e.Selector, e.URL)
}

// Extract parses doc and returns only the subtrees matching sel.
func Extract(doc *fetch.Document, sel Selector) (*goquery.Selection, error) {
	root, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("parse markup from %s: %w", doc.URL, err)
	}
	css := sel.CSS()
	matches := root.Find(css)
	if matches.Length() == 0 {
		return nil, &NoMatchError{Selector: css, URL: doc.URL}
	}
	return matches, nil
}

// OptionValues returns the non-empty option values of the matching dropdown,
// e.g. the tour list on a rankings page.
func OptionValues(doc *fetch.Document, sel Selector) ([]string, error) {
	if sel.Element == "" {
		sel.Element = "select"
	}
	matches, err := Extract(doc, sel)
	if err != nil {
		return nil, err
	}
	var values []string
	matches.Find("option").Each(func(_ int, opt *goquery.Selection) {
		if v := strings.TrimSpace(opt.AttrOr("value", "")); v != "" {
			values = append(values, v)
		}
	})
	return values, nil
}
