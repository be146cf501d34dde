package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/albapepper/scoracle-tables/internal/cache"
	"github.com/albapepper/scoracle-tables/internal/envelope"
	"github.com/albapepper/scoracle-tables/internal/fetch"
	"github.com/albapepper/scoracle-tables/internal/parse"
	"github.com/albapepper/scoracle-tables/internal/table"
)

var standingsPaths = map[string]string{
	"mlb": "/mlb/standings.asp",
	"nhl": "/nhl/standings.asp",
	"nfl": "/fb/totalstandings.asp",
	"nba": "/nba/standings.asp",
	"epl": "/epl/standings.asp",
	"mls": "/mls/standings.asp",
}

var rankingsPaths = map[string]string{
	"golf":   "/golf/final.asp",
	"tennis": "/tennis/rankings.asp",
}

const (
	injuriesPath = "/mlb/stats.asp"
	scoresPath   = "/multisport/today.js.asp"
	tourParam    = "tour"
	minScoreRows = 2
)

var (
	tourSelect     = table.Selector{Element: "select", Attr: [2]string{"name", tourParam}}
	injuryReport   = table.Selector{Element: "div", ID: "shsMLBrecentinj"}
	scoreboardSel  = table.Selector{Element: "table", Classes: []string{"shsTable"}}
	standingsGroup = table.GroupOptions{ClassPrefix: "shsRow", Label: parse.StandingsDivisionLabel}
)

// Standings returns league standings grouped by conference and division.
func (s *Service) Standings(ctx context.Context, code string) (*Result, error) {
	lc, err := lookupLeague("standings", code)
	if err != nil {
		return nil, err
	}
	layout, ok := parse.Standings(lc.ID)
	path, hasPath := standingsPaths[lc.ID]
	if !ok || !hasPath {
		return nil, unsupported("standings", lc.ID)
	}

	fp := cache.Fingerprint("/standings/" + lc.ID)
	return s.cached(ctx, fp, cache.TTLStandings, func(ctx context.Context) (*envelope.Envelope, time.Duration, error) {
		doc, err := s.fetcher.Fetch(ctx, fetch.Resource{Path: path, Sport: lc.Sport})
		if err != nil {
			return nil, 0, fmt.Errorf("%s standings: %w", lc.ID, err)
		}
		sel, err := table.Extract(doc, table.Default)
		if err != nil {
			return nil, 0, fmt.Errorf("%s standings: %w", lc.ID, err)
		}
		opts := standingsGroup
		opts.SkipTitles = layout.SkipConferences
		return envelope.New(table.Group(table.Rows(sel), opts, layout.Parse)), cache.TTLStandings, nil
	})
}

// Rankings returns an individual sport's leaderboards keyed by tour. The
// tours are read from the page's tour dropdown.
func (s *Service) Rankings(ctx context.Context, sport string) (*Result, error) {
	parser, ok := parse.Rankings(sport)
	path, hasPath := rankingsPaths[sport]
	if !ok || !hasPath {
		return nil, unsupported("rankings", sport)
	}

	fp := cache.Fingerprint("/rankings/" + sport)
	return s.cached(ctx, fp, cache.TTLRankings, func(ctx context.Context) (*envelope.Envelope, time.Duration, error) {
		doc, err := s.fetcher.Fetch(ctx, fetch.Resource{Path: path})
		if err != nil {
			return nil, 0, fmt.Errorf("%s rankings: %w", sport, err)
		}
		tours, err := table.OptionValues(doc, tourSelect)
		if isNoMatch(err) {
			return envelope.New(table.Sections{}), cache.TTLRankings, nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s rankings: %w", sport, err)
		}

		out := make(table.Sections, 0, len(tours))
		for _, tour := range tours {
			doc, err := s.fetcher.Fetch(ctx, fetch.Resource{Path: path, Query: url.Values{tourParam: {tour}}})
			if err != nil {
				return nil, 0, fmt.Errorf("%s rankings tour %s: %w", sport, tour, err)
			}
			sel, err := table.Extract(doc, table.Default)
			if isNoMatch(err) {
				out = append(out, table.Section{Key: tour, Value: []any{}})
				continue
			}
			if err != nil {
				return nil, 0, fmt.Errorf("%s rankings tour %s: %w", sport, tour, err)
			}
			out = append(out, table.Section{Key: tour, Value: table.Group(table.Rows(sel), table.Flat, parser)})
		}
		return envelope.New(out), cache.TTLRankings, nil
	})
}

// Injuries returns the recent injury report keyed by team. Only baseball
// publishes one.
func (s *Service) Injuries(ctx context.Context, code string) (*Result, error) {
	lc, err := lookupLeague("injuries", code)
	if err != nil {
		return nil, err
	}
	if lc.ID != "mlb" {
		return nil, unsupported("injuries", lc.ID)
	}

	fp := cache.Fingerprint("/injuries/" + lc.ID)
	return s.cached(ctx, fp, cache.TTLInjuries, func(ctx context.Context) (*envelope.Envelope, time.Duration, error) {
		res := fetch.Resource{Path: injuriesPath, Query: url.Values{"file": {"recentinj"}}}
		doc, err := s.fetcher.Fetch(ctx, res)
		if err != nil {
			return nil, 0, fmt.Errorf("%s injuries: %w", lc.ID, err)
		}
		sel, err := table.Extract(doc, injuryReport)
		if err != nil {
			return nil, 0, fmt.Errorf("%s injuries: %w", lc.ID, err)
		}
		blocks := table.Blocks(sel, parse.InjuryHeading)
		return envelope.New(parse.Injuries(blocks, s.now().Year())), cache.TTLInjuries, nil
	})
}

// Scores returns the scoreboard for day, or for today when day is nil. An
// empty scoreboard is a success carrying a message.
func (s *Service) Scores(ctx context.Context, code string, day *time.Time) (*Result, error) {
	lc, err := lookupLeague("scores", code)
	if err != nil {
		return nil, err
	}

	target := s.now()
	path := "/scores/" + lc.ID
	if day != nil {
		target = *day
		path += target.Format("/2006/01/02")
	}

	fp := cache.Fingerprint(path)
	return s.cached(ctx, fp, cache.TTLScores, func(ctx context.Context) (*envelope.Envelope, time.Duration, error) {
		q := url.Values{"day": {target.Format("20060102")}}
		sport := lc.Sport
		if lc.ScoresSport != "" {
			sport = lc.ScoresSport
		}
		q.Set("sport", sport)
		if lc.ScoresLeague != "" {
			q.Set("lg", lc.ScoresLeague)
		}

		doc, err := s.fetcher.Fetch(ctx, fetch.Resource{Path: scoresPath, Query: q, Format: fetch.FormatScript})
		if err != nil {
			return nil, 0, fmt.Errorf("%s scores: %w", lc.ID, err)
		}
		sel, err := table.Extract(doc, scoreboardSel)
		if err != nil && !isNoMatch(err) {
			return nil, 0, fmt.Errorf("%s scores: %w", lc.ID, err)
		}
		if err != nil || sel.Find("tr").Length() <= minScoreRows {
			return envelope.Message(noGamesMessage(day)), cache.TTLNoGames, nil
		}

		tree := table.Build(table.Rows(sel), parse.ScoreboardOptions)
		return envelope.New(table.Render(tree, parse.Scoreboard)), cache.TTLScores, nil
	})
}

func noGamesMessage(day *time.Time) string {
	if day == nil {
		return "No games scheduled for today"
	}
	return "No games scheduled for " + day.Format("1/2/2006")
}
