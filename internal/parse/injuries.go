package parse

import (
	"github.com/albapepper/scoracle-tables/internal/table"
)

// Injury is one line of a team's recent injury report: Date | Player | Status
type Injury struct {
	Date   string `json:"date"`
	Ts     *int64 `json:"ts"`
	Player string `json:"player"`
	Status string `json:"status"`
}

// InjuryHeading marks the start of each team's report.
const InjuryHeading = "h2.shsTableTitle"

// Injuries groups report lines by team. Dates without a year are read in
// year. Teams with no lines are left out.
func Injuries(blocks []table.Block, year int) table.Sections {
	out := table.Sections{}
	index := map[string]int{}
	for _, b := range blocks {
		var lines []Injury
		for _, row := range b.Rows {
			if row.Role != table.RoleData || len(row.Cells) < 3 {
				continue
			}
			lines = append(lines, Injury{
				Date:   row.Cells.Text(0),
				Ts:     TimestampInYear(row.Cells.Text(0), year),
				Player: row.Cells.Text(1),
				Status: row.Cells.Text(2),
			})
		}
		if len(lines) == 0 {
			continue
		}
		key := Underscore(b.Title)
		if i, ok := index[key]; ok {
			out[i].Value = append(out[i].Value.([]Injury), lines...)
			continue
		}
		index[key] = len(out)
		out = append(out, table.Section{Key: key, Value: lines})
	}
	return out
}
