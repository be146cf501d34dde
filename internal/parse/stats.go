package parse

import (
	"iter"
	"strconv"

	"github.com/albapepper/scoracle-tables/internal/table"
)

// NBAStatLine: Player | G | Min | FGM | FGA | FTM | FTA | 3PM | 3PA | TR | A | Stl | Blk | TO | +/-
type NBAStatLine struct {
	Player                 string `json:"player"`
	Games                  *int   `json:"games"`
	Minutes                *int   `json:"minutes"`
	FieldGoalsMade         *int   `json:"field_goals_made"`
	FieldGoalsAttempted    *int   `json:"field_goals_attempted"`
	FreeThrowsMade         *int   `json:"free_throws_made"`
	FreeThrowsAttempted    *int   `json:"free_throws_attempted"`
	ThreePointersMade      *int   `json:"three_pointers_made"`
	ThreePointersAttempted *int   `json:"three_pointers_attempted"`
	Rebounds               *int   `json:"rebounds"`
	Assists                *int   `json:"assists"`
	Steals                 *int   `json:"steals"`
	Blocks                 *int   `json:"blocks"`
	Turnovers              *int   `json:"turnovers"`
	PlusMinus              *int   `json:"plus_minus"`
}

// NBAStats parses the basketball team stats table.
func NBAStats(c table.Cells) (any, bool) {
	if len(c) < 2 {
		return nil, false
	}
	return NBAStatLine{
		Player:                 c.Text(0),
		Games:                  Int(c.Text(1)),
		Minutes:                Int(c.Text(2)),
		FieldGoalsMade:         Int(c.Text(3)),
		FieldGoalsAttempted:    Int(c.Text(4)),
		FreeThrowsMade:         Int(c.Text(5)),
		FreeThrowsAttempted:    Int(c.Text(6)),
		ThreePointersMade:      Int(c.Text(7)),
		ThreePointersAttempted: Int(c.Text(8)),
		Rebounds:               Int(c.Text(9)),
		Assists:                Int(c.Text(10)),
		Steals:                 Int(c.Text(11)),
		Blocks:                 Int(c.Text(12)),
		Turnovers:              Int(c.Text(13)),
		PlusMinus:              Int(c.Text(14)),
	}, true
}

// StatLine is a stats row keyed by its column headers, used where the
// columns vary by table (batting vs pitching, skaters vs goalies).
type StatLine struct {
	Player string              `json:"player"`
	Values map[string]*float64 `json:"values"`
}

// KeyedStats reads tables whose column header row names the columns. Title
// rows start a new section; without titles the result is a flat list.
func KeyedStats(rows iter.Seq[table.Row]) any {
	type section struct {
		key   string
		lines []StatLine
	}
	var (
		header []string
		secs   []*section
		loose  = &section{key: table.OtherKey, lines: []StatLine{}}
		cur    = loose
	)

	for row := range rows {
		switch row.Role {
		case table.RoleTitle:
			cur = &section{key: Underscore(row.Label), lines: []StatLine{}}
			secs = append(secs, cur)
			header = nil
		case table.RoleColumnHeader:
			header = make([]string, len(row.Cells))
			for i, c := range row.Cells {
				header[i] = Underscore(c.Text)
			}
		case table.RoleData:
			if len(row.Cells) < 2 {
				continue
			}
			cur.lines = append(cur.lines, statLine(row.Cells, header))
		}
	}

	if len(secs) == 0 {
		return loose.lines
	}
	if len(loose.lines) > 0 {
		secs = append(secs, loose)
	}
	out := make(table.Sections, 0, len(secs))
	for _, sec := range secs {
		out = append(out, table.Section{Key: sec.key, Value: sec.lines})
	}
	return out
}

func statLine(c table.Cells, header []string) StatLine {
	player := c.At(0).Anchor
	if player == "" {
		player = c.Text(0)
	}
	line := StatLine{Player: player, Values: make(map[string]*float64, len(c)-1)}
	for i := 1; i < len(c); i++ {
		key := ""
		if i < len(header) {
			key = header[i]
		}
		if key == "" {
			key = "col_" + strconv.Itoa(i)
		}
		line.Values[key] = Float(c.Text(i))
	}
	return line
}

// HasStats reports whether Stats can read league's team stats page.
func HasStats(league string) bool {
	switch league {
	case "nba", "mlb", "nhl", "nfl":
		return true
	}
	return false
}

// Stats reads a team stats page for league. Basketball has a fixed layout;
// the other leagues are read by column header.
func Stats(league string, rows iter.Seq[table.Row]) (any, bool) {
	if !HasStats(league) {
		return nil, false
	}
	if league == "nba" {
		return table.Group(rows, table.Flat, NBAStats), true
	}
	return KeyedStats(rows), true
}
