package table

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Block is a heading followed by the tables printed under it, e.g. one
// team's section of the injury report.
type Block struct {
	Title string
	Rows  []Row
}

// Blocks splits sel into runs of tables headed by elements matching
// heading. Anything before the first heading is page chrome and dropped.
func Blocks(sel *goquery.Selection, heading string) []Block {
	var blocks []Block
	sel.Find(heading + ", table").Each(func(_ int, el *goquery.Selection) {
		if el.Is(heading) {
			blocks = append(blocks, Block{Title: strings.TrimSpace(el.Text())})
			return
		}
		if len(blocks) == 0 {
			return
		}
		cur := &blocks[len(blocks)-1]
		cur.Rows = append(cur.Rows, slices.Collect(Rows(el))...)
	})
	return blocks
}
