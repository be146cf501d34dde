package parse

import (
	"strings"

	"github.com/albapepper/scoracle-tables/internal/table"
)

// Side is one team's line on the scoreboard.
type Side struct {
	Team  string `json:"team"`
	Score *int   `json:"score"`
}

// Game pairs the away row with the home row that follows it.
type Game struct {
	Away   *Side   `json:"away"`
	Home   *Side   `json:"home"`
	Status *string `json:"status"`
	Time   *string `json:"time"`
	Extra  *string `json:"extra"`
}

const statusClass = "shsMiniStatus"

// ScoreboardOptions groups games under the scoreboard's spacer rows.
var ScoreboardOptions = table.GroupOptions{SkipTitles: true, Label: Underscore}

// Scoreboard assembles games from the rows of one scoreboard section. Team
// rows carry no class; each game is an away row then a home row, and either
// may hold the status cell.
func Scoreboard(rows []table.Row) []Game {
	games := []Game{}
	for _, row := range rows {
		if row.Classed || len(row.Cells) < 2 {
			continue
		}
		side := &Side{Team: row.Cells.At(0).Anchor, Score: Int(row.Cells.Text(1))}

		last := len(games) - 1
		if last < 0 || (games[last].Away != nil && games[last].Home != nil) {
			games = append(games, Game{Away: side})
			last++
		} else {
			games[last].Home = side
		}

		for _, c := range row.Cells {
			if c.HasClass(statusClass) {
				applyStatus(&games[last], c)
				break
			}
		}
	}
	return games
}

// applyStatus reads "Final - OT" style status cells: the text left of the
// dash is the status, the right side is extra detail unless a line break
// already supplies it.
func applyStatus(g *Game, c table.Cell) {
	extra := c.Extra
	if status := c.Anchor; status != "" {
		if parts := strings.Split(status, "-"); len(parts) == 2 {
			status = strings.TrimSpace(parts[0])
			if extra == "" {
				extra = strings.TrimSpace(parts[1])
			}
		}
		g.Status = Str(strings.ToLower(status))
	}
	if c.Zone != "" {
		g.Time = Str(c.Zone)
	}
	if extra != "" {
		g.Extra = Str(strings.ToLower(extra))
	}
}
