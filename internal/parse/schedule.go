package parse

import (
	"github.com/albapepper/scoracle-tables/internal/table"
)

// ScheduleContext carries what a schedule row leaves out: the month of the
// page it came from (0 when the page is not paged by month) and the season
// year.
type ScheduleContext struct {
	Month int
	Year  int
}

// springTrainingEnd is the first month of the regular season.
const springTrainingEnd = 4

// MLBGame holds every column any baseball schedule layout can supply.
type MLBGame struct {
	Date           string   `json:"date"`
	Ts             *int64   `json:"ts"`
	IsHomeGame     bool     `json:"is_home_game"`
	Opponent       string   `json:"opponent"`
	Networks       []string `json:"networks"`
	Result         *Outcome `json:"result"`
	Score          []int    `json:"score"`
	Record         *string  `json:"record"`
	HomePitcher    *string  `json:"home_pitcher"`
	OppPitcher     *string  `json:"opp_pitcher"`
	WinningPitcher *string  `json:"winning_pitcher"`
	LosingPitcher  *string  `json:"losing_pitcher"`
	Save           *string  `json:"save"`
}

// NHLGame: Date | Opponent | Time | TV | Result
type NHLGame struct {
	Date       string   `json:"date"`
	Ts         *int64   `json:"ts"`
	IsHomeGame bool     `json:"is_home_game"`
	Opponent   string   `json:"opponent"`
	Networks   []string `json:"networks"`
	Result     *Outcome `json:"result"`
	Score      []int    `json:"score"`
}

// NFLGame: Week | Day | Date | Opponent | Time | TV | Result. A bye week row
// has two cells and leaves every game field null.
type NFLGame struct {
	Week       *int     `json:"week"`
	IsByeWeek  bool     `json:"is_bye_week"`
	Date       *string  `json:"date"`
	Ts         *int64   `json:"ts"`
	IsHomeGame *bool    `json:"is_home_game"`
	Opponent   *string  `json:"opponent"`
	Networks   []string `json:"networks"`
	Result     *Outcome `json:"result"`
	Score      []int    `json:"score"`
}

// Schedule returns the schedule parser for a league and page.
func Schedule(league string, ctx ScheduleContext) (Parser, bool) {
	switch league {
	case "mlb":
		return func(c table.Cells) (any, bool) { return mlbGame(c, ctx) }, true
	case "nhl":
		return func(c table.Cells) (any, bool) { return nhlGame(c, ctx) }, true
	case "nfl":
		return func(c table.Cells) (any, bool) { return nflGame(c, ctx) }, true
	}
	return nil, false
}

// resultText prefers the linked box score text, which carries the score.
func resultText(c table.Cell) string {
	if c.Anchor != "" {
		return c.Anchor
	}
	return c.Text
}

func schedDate(c table.Cells, dayIdx, zoneIdx int, ctx ScheduleContext) (string, *int64) {
	s := DateString(c.Text(dayIdx), ctx.Month, ctx.Year, c.At(zoneIdx).Zone)
	return s, Timestamp(s)
}

func mlbGame(c table.Cells, ctx ScheduleContext) (any, bool) {
	g := MLBGame{
		IsHomeGame: IsHomeGame(c.Text(1)),
		Opponent:   StripOpponent(c.Text(1)),
	}
	g.Date, g.Ts = schedDate(c, 0, 2, ctx)

	switch n := len(c); {
	case n >= 5 && n < 8 && ctx.Month < springTrainingEnd:
		mlbSpring(c, &g)
	case n >= 5 && n < 8:
		mlbUpcoming(c, &g)
	case n == 8:
		mlbFinal(c, &g)
	default:
		return nil, false
	}
	return g, true
}

// Spring training, played or not: Date | Opp | Time | TV | Result
func mlbSpring(c table.Cells, g *MLBGame) {
	g.Networks = Networks(c.Text(3))
	g.Result = Result(c.Text(4))
	g.Score = Score(resultText(c.At(4)))
}

// Regular season, not yet played: Date | Opp | Time | TV | Pitcher | Opp Pitcher.
// The pitcher columns merge into one when neither is known.
func mlbUpcoming(c table.Cells, g *MLBGame) {
	g.Networks = Networks(c.Text(3))
	if len(c) == 6 {
		g.HomePitcher = Str(c.Text(4))
		g.OppPitcher = Str(c.Text(5))
	}
}

// Regular season, played: Date | Opp | Result | Rec | Win | Loss | Save | Att
func mlbFinal(c table.Cells, g *MLBGame) {
	g.Result = Result(c.Text(2))
	g.Score = Score(resultText(c.At(2)))
	g.Record = Str(c.Text(3))
	g.WinningPitcher = Str(c.Text(4))
	g.LosingPitcher = Str(c.Text(5))
	g.Save = Str(c.Text(6))
}

func nhlGame(c table.Cells, ctx ScheduleContext) (any, bool) {
	if len(c) < 2 {
		return nil, false
	}
	g := NHLGame{
		IsHomeGame: IsHomeGame(c.Text(1)),
		Opponent:   StripOpponent(c.Text(1)),
	}
	g.Date, g.Ts = schedDate(c, 0, 2, ctx)
	if len(c) == 5 {
		g.Networks = Networks(c.Text(3))
		g.Result = Result(c.Text(4))
		g.Score = Score(resultText(c.At(4)))
	}
	return g, true
}

func nflGame(c table.Cells, ctx ScheduleContext) (any, bool) {
	g := NFLGame{Week: Int(c.Text(0))}
	switch {
	case len(c) == 2:
		g.IsByeWeek = true
		return g, true
	case len(c) < 4:
		return nil, false
	}

	home := IsHomeGame(c.Text(3))
	opp := StripOpponent(c.Text(3))
	date, ts := schedDate(c, 2, 4, ScheduleContext{Year: ctx.Year})
	g.Date, g.Ts = &date, ts
	g.IsHomeGame, g.Opponent = &home, &opp
	g.Networks = Networks(c.Text(5))
	g.Result = Result(c.Text(6))
	g.Score = Score(resultText(c.At(6)))
	return g, true
}
