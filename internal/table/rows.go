package table

import (
	"bytes"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Role is what a row means in the provider layout.
type Role int

const (
	RoleData Role = iota
	RoleTitle
	RoleSubtitle
	RoleColumnHeader
	RoleSpacer
)

func (r Role) String() string {
	switch r {
	case RoleTitle:
		return "title"
	case RoleSubtitle:
		return "subtitle"
	case RoleColumnHeader:
		return "column-header"
	case RoleSpacer:
		return "spacer"
	default:
		return "data"
	}
}

// Row markers, checked in this order.
var markers = []struct {
	class string
	role  Role
}{
	{"shsTableTtlRow", RoleTitle},
	{"shsTableSubttlRow", RoleSubtitle},
	{"shsColTtlRow", RoleColumnHeader},
	{"shsSubSectionRow", RoleSpacer},
	{"shsMiniRowSpacer", RoleSpacer},
}

// Cell is the extracted content of one td.
type Cell struct {
	Text    string   // trimmed text of the whole cell
	Anchor  string   // text of the first link
	Zone    string   // text of the span.shsGMTZone time
	Extra   string   // text following the first <br>
	Classes []string // class attribute values
}

// HasClass reports whether the cell carries class c.
func (c Cell) HasClass(class string) bool {
	for _, cl := range c.Classes {
		if cl == class {
			return true
		}
	}
	return false
}

// Cells is an ordered row of cells.
type Cells []Cell

// At returns cell i, or the zero Cell when the row is shorter.
func (c Cells) At(i int) Cell {
	if i < 0 || i >= len(c) {
		return Cell{}
	}
	return c[i]
}

// Text is shorthand for At(i).Text.
func (c Cells) Text(i int) string {
	return c.At(i).Text
}

// Row is one classified tr. Label holds the section text for marker rows.
type Row struct {
	Role    Role
	Label   string
	Cells   Cells
	Classes []string
	Classed bool // the tr carried a class attribute
}

// HasClassPrefix reports whether any of the row's classes starts with prefix.
func (r Row) HasClassPrefix(prefix string) bool {
	for _, c := range r.Classes {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Rows walks every tr under sel in document order. The sequence is a single
// forward pass over the selection.
func Rows(sel *goquery.Selection) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		trs := sel.Find("tr")
		for i := range trs.Nodes {
			if !yield(classify(trs.Eq(i))) {
				return
			}
		}
	}
}

func classify(tr *goquery.Selection) Row {
	row := Row{Role: RoleData}
	classAttr, ok := tr.Attr("class")
	row.Classed = ok
	classes := strings.Fields(classAttr)
	row.Classes = classes

	for _, m := range markers {
		if contains(classes, m.class) {
			row.Role = m.role
			break
		}
	}

	tr.Find("td").Each(func(_ int, td *goquery.Selection) {
		row.Cells = append(row.Cells, newCell(td))
	})
	if row.Role != RoleData {
		row.Label = strings.TrimSpace(tr.Text())
	}
	return row
}

func newCell(td *goquery.Selection) Cell {
	c := Cell{
		Text:    strings.TrimSpace(td.Text()),
		Anchor:  strings.TrimSpace(td.Find("a").First().Text()),
		Zone:    strings.TrimSpace(td.Find("span.shsGMTZone").First().Text()),
		Classes: strings.Fields(td.AttrOr("class", "")),
	}
	if br := td.Find("br").First(); br.Length() > 0 {
		var buf bytes.Buffer
		for n := br.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
			nodeText(n, &buf)
		}
		c.Extra = strings.TrimSpace(buf.String())
	}
	return c
}

func nodeText(n *html.Node, buf *bytes.Buffer) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		nodeText(child, buf)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Records dispatches every data row to parse exactly once, in document order.
// Marker rows are never passed to parse.
func Records[T any](rows iter.Seq[Row], parse func(Cells) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for row := range rows {
			if row.Role != RoleData {
				continue
			}
			if !yield(parse(row.Cells)) {
				return
			}
		}
	}
}
