package parse

import (
	"strings"

	"github.com/albapepper/scoracle-tables/internal/table"
)

// Parser maps one data row to a record. It reports false for rows that fit
// none of the family's layouts.
type Parser func(table.Cells) (any, bool)

// MLBPlayer is a baseball roster row:
// No | Name | Pos | B/T | Status | Ht | Wt | Born | Birthplace
type MLBPlayer struct {
	Number     *int    `json:"number"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Bats       *string `json:"bats"`
	Throws     *string `json:"throws"`
	Status     string  `json:"status"`
	Height     *int    `json:"height"`
	Weight     *int    `json:"weight"`
	Born       string  `json:"born"`
	Birthplace string  `json:"birthplace"`
}

// NHLPlayer: No | Name | Pos | Ht | Wt | Born | Birthplace
type NHLPlayer struct {
	Number     *int   `json:"number"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Height     *int   `json:"height"`
	Weight     *int   `json:"weight"`
	Born       string `json:"born"`
	Birthplace string `json:"birthplace"`
}

// NFLPlayer: Num | Name | Pos | Exp | Ht | Wt | Born | Birthplace | College
type NFLPlayer struct {
	Number     *int   `json:"number"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Experience *int   `json:"experience"`
	Height     *int   `json:"height"`
	Weight     *int   `json:"weight"`
	Born       string `json:"born"`
	Birthplace string `json:"birthplace"`
	College    string `json:"college"`
}

// NBAPlayer: No | Name | Pos | Exp | College | Ht | Wt | Inj
type NBAPlayer struct {
	Number     *int    `json:"number"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Experience *int    `json:"experience"`
	College    string  `json:"college"`
	Height     *int    `json:"height"`
	Weight     *int    `json:"weight"`
	Injuries   *string `json:"injuries"`
}

// rosterRow is the shortest row that still names a player.
const rosterRow = 2

// Roster returns the roster parser for a league.
func Roster(league string) (Parser, bool) {
	p, ok := rosterParsers[league]
	return p, ok
}

var rosterParsers = map[string]Parser{
	"mlb": rowsAtLeast(rosterRow, mlbPlayer),
	"nhl": rowsAtLeast(rosterRow, nhlPlayer),
	"nfl": rowsAtLeast(rosterRow, nflPlayer),
	"nba": rowsAtLeast(rosterRow, nbaPlayer),
}

func rowsAtLeast[T any](n int, fn func(table.Cells) T) Parser {
	return func(c table.Cells) (any, bool) {
		if len(c) < n {
			return nil, false
		}
		return fn(c), true
	}
}

func mlbPlayer(c table.Cells) MLBPlayer {
	p := MLBPlayer{
		Number:     Int(c.Text(0)),
		Name:       c.Text(1),
		Position:   c.Text(2),
		Status:     c.Text(4),
		Height:     Height(c.Text(5)),
		Weight:     Int(c.Text(6)),
		Born:       c.Text(7),
		Birthplace: c.Text(8),
	}
	if bt := strings.Split(c.Text(3), "/"); len(bt) == 2 {
		p.Bats, p.Throws = Str(bt[0]), Str(bt[1])
	}
	return p
}

func nhlPlayer(c table.Cells) NHLPlayer {
	return NHLPlayer{
		Number:     Int(c.Text(0)),
		Name:       c.Text(1),
		Position:   c.Text(2),
		Height:     Height(c.Text(3)),
		Weight:     Int(c.Text(4)),
		Born:       c.Text(5),
		Birthplace: c.Text(6),
	}
}

func nflPlayer(c table.Cells) NFLPlayer {
	return NFLPlayer{
		Number:     Int(c.Text(0)),
		Name:       c.Text(1),
		Position:   c.Text(2),
		Experience: Experience(c.Text(3)),
		Height:     Height(c.Text(4)),
		Weight:     Int(c.Text(5)),
		Born:       c.Text(6),
		Birthplace: c.Text(7),
		College:    c.Text(8),
	}
}

func nbaPlayer(c table.Cells) NBAPlayer {
	return NBAPlayer{
		Number:     Int(c.Text(0)),
		Name:       c.Text(1),
		Position:   c.Text(2),
		Experience: Experience(c.Text(3)),
		College:    c.Text(4),
		Height:     Height(c.Text(5)),
		Weight:     Int(c.Text(6)),
		Injuries:   Str(c.Text(7)),
	}
}

// Experience reads years in the league, with "R" for rookies meaning 0.
func Experience(s string) *int {
	if strings.EqualFold(strings.TrimSpace(s), "R") {
		zero := 0
		return &zero
	}
	return Int(s)
}
