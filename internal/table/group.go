package table

import (
	"bytes"
	"encoding/json"
	"iter"
	"strings"
)

// OtherKey holds data rows that sit beside sections instead of inside one.
const OtherKey = "other"

// Section is one labeled group. Value is either a slice of records or a
// nested Sections.
type Section struct {
	Key   string
	Value any
}

// Sections keeps document order and marshals to a JSON object with its keys
// in that order.
type Sections []Section

// Get returns the value stored under key.
func (s Sections) Get(key string) (any, bool) {
	for _, sec := range s {
		if sec.Key == key {
			return sec.Value, true
		}
	}
	return nil, false
}

// Keys lists section keys in document order.
func (s Sections) Keys() []string {
	keys := make([]string, len(s))
	for i, sec := range s {
		keys[i] = sec.Key
	}
	return keys
}

func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(sec.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(sec.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GroupOptions controls how marker rows become sections.
type GroupOptions struct {
	// SkipTitles ignores title rows, e.g. conference rows in soccer standings.
	SkipTitles bool
	// SkipSubtitles ignores subtitle and spacer rows.
	SkipSubtitles bool
	// RequireClass drops data rows whose tr has no class attribute.
	RequireClass bool
	// ClassPrefix, when set, keeps only data rows with a class starting with it.
	ClassPrefix string
	// Label formats a marker row's text into a section key. Identity when nil.
	Label func(string) string
}

// Flat turns every marker off so the result is one ordered list.
var Flat = GroupOptions{SkipTitles: true, SkipSubtitles: true}

type node struct {
	key      string
	rows     []Row
	children []*node
}

func (n *node) child(key string) *node {
	for _, c := range n.children {
		if c.key == key {
			return c
		}
	}
	c := &node{key: key}
	n.children = append(n.children, c)
	return c
}

// Tree is the section structure of a table before records are parsed.
type Tree struct {
	root *node
}

// Build assigns every data row to the section that most recently opened
// above it. A label seen twice at the same level resumes its first section;
// a marker whose label formats to "" opens nothing.
func Build(rows iter.Seq[Row], opts GroupOptions) *Tree {
	label := opts.Label
	if label == nil {
		label = strings.TrimSpace
	}
	root := &node{}
	var title, sub *node

	for row := range rows {
		switch row.Role {
		case RoleTitle:
			key := label(row.Label)
			if opts.SkipTitles || key == "" {
				continue
			}
			title = root.child(key)
			sub = nil
		case RoleSubtitle, RoleSpacer:
			key := label(row.Label)
			if opts.SkipSubtitles || key == "" {
				continue
			}
			parent := root
			if title != nil {
				parent = title
			}
			sub = parent.child(key)
		case RoleColumnHeader:
			continue
		default:
			if opts.RequireClass && !row.Classed {
				continue
			}
			if opts.ClassPrefix != "" && !row.HasClassPrefix(opts.ClassPrefix) {
				continue
			}
			target := root
			switch {
			case sub != nil:
				target = sub
			case title != nil:
				target = title
			}
			target.rows = append(target.rows, row)
		}
	}
	return &Tree{root: root}
}

// Render converts the tree into the output shape. With no sections the
// result is the flat list leaf produces for all rows; otherwise it is
// Sections nested as deep as the levels that actually occurred. leaf sees
// the data rows of one section in document order.
func Render[T any](t *Tree, leaf func([]Row) []T) any {
	return render(t.root, leaf)
}

func render[T any](n *node, leaf func([]Row) []T) any {
	if len(n.children) == 0 {
		out := leaf(n.rows)
		if out == nil {
			out = []T{}
		}
		return out
	}
	secs := make(Sections, 0, len(n.children)+1)
	for _, c := range n.children {
		secs = append(secs, Section{Key: c.key, Value: render(c, leaf)})
	}
	if len(n.rows) > 0 {
		secs = append(secs, Section{Key: OtherKey, Value: render(&node{rows: n.rows}, leaf)})
	}
	return secs
}

// Group parses each data row with parse and groups the records by section.
// Rows for which parse reports false are dropped.
func Group[T any](rows iter.Seq[Row], opts GroupOptions, parse func(Cells) (T, bool)) any {
	return Render(Build(rows, opts), func(rows []Row) []T {
		out := make([]T, 0, len(rows))
		for _, r := range rows {
			if rec, ok := parse(r.Cells); ok {
				out = append(out, rec)
			}
		}
		return out
	})
}
