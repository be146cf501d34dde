package parse

import (
	"github.com/albapepper/scoracle-tables/internal/table"
)

// GolfScore is a player's four rounds and tournament total.
type GolfScore struct {
	Total  *int  `json:"total"`
	Rounds []int `json:"round"`
}

// GolfRanking: Pos | Name | To Par | 1 | 2 | 3 | 4 | [P] | Total | Earnings
type GolfRanking struct {
	Position    *int      `json:"position"`
	Player      string    `json:"player"`
	ToPar       string    `json:"to_par"`
	Score       GolfScore `json:"score"`
	EarningsUSD int       `json:"earnings_usd"`
}

// TennisRanking: Rank | Player | Country | Points | Earnings
type TennisRanking struct {
	Position    *int   `json:"position"`
	Player      string `json:"player"`
	Country     string `json:"country"`
	Points      int    `json:"points"`
	EarningsUSD int    `json:"earnings_usd"`
}

const golfRounds = 4

// Rankings returns the leaderboard parser for an individual sport.
func Rankings(sport string) (Parser, bool) {
	switch sport {
	case "golf":
		return golfRanking, true
	case "tennis":
		return tennisRanking, true
	}
	return nil, false
}

// position reads ranks like "T3" as 3.
func position(s string) *int {
	if d := Digits(s); d > 0 {
		return &d
	}
	return nil
}

func golfRanking(c table.Cells) (any, bool) {
	if len(c) < 3+golfRounds+2 {
		return nil, false
	}
	r := GolfRanking{
		Position:    position(c.Text(0)),
		Player:      c.Text(1),
		ToPar:       c.Text(2),
		Score:       GolfScore{Rounds: make([]int, 0, golfRounds)},
		EarningsUSD: Digits(c.Text(len(c) - 1)),
	}
	for i := 3; i < 3+golfRounds; i++ {
		r.Score.Rounds = append(r.Score.Rounds, Digits(c.Text(i)))
	}
	// A playoff column may sit between the rounds and the total.
	r.Score.Total = Int(c.Text(len(c) - 2))
	return r, true
}

func tennisRanking(c table.Cells) (any, bool) {
	if len(c) < 2 {
		return nil, false
	}
	return TennisRanking{
		Position:    position(c.Text(0)),
		Player:      c.Text(1),
		Country:     c.Text(2),
		Points:      Digits(c.Text(3)),
		EarningsUSD: Digits(c.Text(4)),
	}, true
}
