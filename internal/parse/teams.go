package parse

import (
	"iter"

	"github.com/albapepper/scoracle-tables/internal/table"
)

// TeamListOptions groups a teams page into league then division. Rows
// without a class are layout filler.
var TeamListOptions = table.GroupOptions{RequireClass: true, Label: DivisionLabel}

// FlatTeamListOptions is TeamListOptions without the sections.
var FlatTeamListOptions = table.GroupOptions{SkipTitles: true, SkipSubtitles: true, RequireClass: true}

// TeamName reads the team name from a teams page row.
func TeamName(c table.Cells) (string, bool) {
	name := c.Text(0)
	return name, name != ""
}

// TeamNames lists team names in page order. The position of a name is the
// upstream's team number minus one.
func TeamNames(rows iter.Seq[table.Row]) []string {
	names, _ := table.Group(rows, FlatTeamListOptions, TeamName).([]string)
	if names == nil {
		names = []string{}
	}
	return names
}
