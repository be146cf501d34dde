package parse

import (
	"github.com/albapepper/scoracle-tables/internal/table"
)

// WinLossStanding is used by baseball and basketball:
// Team | W | L | Pct | GB
type WinLossStanding struct {
	Team        string   `json:"team"`
	Wins        *int     `json:"wins"`
	Losses      *int     `json:"losses"`
	Percentage  *float64 `json:"percentage"`
	GamesBehind float64  `json:"games_behind"`
}

// NHLStanding: Team | GP | W | L | OTL | Pts | GF | GA | Home | Road | L10
type NHLStanding struct {
	Team           string `json:"team"`
	GamesPlayed    *int   `json:"games_played"`
	Wins           *int   `json:"wins"`
	Losses         *int   `json:"losses"`
	OvertimeLosses *int   `json:"overtime_losses"`
	Points         *int   `json:"points"`
	GoalsFor       *int   `json:"goals_for"`
	GoalsAgainst   *int   `json:"goals_against"`
}

// NFLStanding: Team | W | L | T | Pct | GB
type NFLStanding struct {
	Team        string   `json:"team"`
	Wins        *int     `json:"wins"`
	Losses      *int     `json:"losses"`
	Ties        *int     `json:"ties"`
	Percentage  *float64 `json:"percentage"`
	GamesBehind float64  `json:"games_behind"`
}

// SoccerStanding is used by MLS and the Premier League. Points sit in the
// eleventh column, after the home and away splits.
type SoccerStanding struct {
	Team         string `json:"team"`
	GamesPlayed  *int   `json:"games_played"`
	Wins         *int   `json:"wins"`
	Draws        *int   `json:"draws"`
	Losses       *int   `json:"losses"`
	GoalsFor     *int   `json:"goals_for"`
	GoalsAgainst *int   `json:"goals_against"`
	Points       *int   `json:"points"`
}

// StandingsLayout describes how one league's standings page is read.
type StandingsLayout struct {
	Parse Parser
	// SkipConferences ignores title rows; the page has no conferences.
	SkipConferences bool
}

// Standings returns the standings layout for a league.
func Standings(league string) (StandingsLayout, bool) {
	l, ok := standingsLayouts[league]
	return l, ok
}

var standingsLayouts = map[string]StandingsLayout{
	"mlb": {Parse: standingRow(winLossStanding)},
	"nba": {Parse: standingRow(winLossStanding)},
	"nhl": {Parse: standingRow(nhlStanding)},
	"nfl": {Parse: standingRow(nflStanding)},
	"mls": {Parse: standingRow(soccerStanding), SkipConferences: true},
	"epl": {Parse: standingRow(soccerStanding), SkipConferences: true},
}

// standingRow drops rows without a linked team name.
func standingRow[T any](fn func(table.Cells) T) Parser {
	return func(c table.Cells) (any, bool) {
		if c.At(0).Anchor == "" {
			return nil, false
		}
		return fn(c), true
	}
}

func winLossStanding(c table.Cells) WinLossStanding {
	return WinLossStanding{
		Team:        c.At(0).Anchor,
		Wins:        Int(c.Text(1)),
		Losses:      Int(c.Text(2)),
		Percentage:  Float(c.Text(3)),
		GamesBehind: FloatOr(c.Text(4), 0),
	}
}

func nhlStanding(c table.Cells) NHLStanding {
	return NHLStanding{
		Team:           c.At(0).Anchor,
		GamesPlayed:    Int(c.Text(1)),
		Wins:           Int(c.Text(2)),
		Losses:         Int(c.Text(3)),
		OvertimeLosses: Int(c.Text(4)),
		Points:         Int(c.Text(5)),
		GoalsFor:       Int(c.Text(6)),
		GoalsAgainst:   Int(c.Text(7)),
	}
}

func nflStanding(c table.Cells) NFLStanding {
	return NFLStanding{
		Team:        c.At(0).Anchor,
		Wins:        Int(c.Text(1)),
		Losses:      Int(c.Text(2)),
		Ties:        Int(c.Text(3)),
		Percentage:  Float(c.Text(4)),
		GamesBehind: FloatOr(c.Text(5), 0),
	}
}

func soccerStanding(c table.Cells) SoccerStanding {
	return SoccerStanding{
		Team:         c.At(0).Anchor,
		GamesPlayed:  Int(c.Text(1)),
		Wins:         Int(c.Text(2)),
		Draws:        Int(c.Text(3)),
		Losses:       Int(c.Text(4)),
		GoalsFor:     Int(c.Text(5)),
		GoalsAgainst: Int(c.Text(6)),
		Points:       Int(c.Text(10)),
	}
}
