package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/albapepper/scoracle-tables/internal/cache"
	"github.com/albapepper/scoracle-tables/internal/envelope"
	"github.com/albapepper/scoracle-tables/internal/fetch"
	"github.com/albapepper/scoracle-tables/internal/parse"
	"github.com/albapepper/scoracle-tables/internal/table"
)

const (
	teamsPath     = "/{{sport}}/teams.asp"
	teamStatsPath = "/{{sport}}/teamstats.asp"

	flatListArg = "flat_list"
)

func (s *Service) teamsPage(ctx context.Context, sport string) (*goquery.Selection, error) {
	doc, err := s.fetcher.Fetch(ctx, fetch.Resource{Path: teamsPath, Sport: sport})
	if err != nil {
		return nil, err
	}
	return table.Extract(doc, table.Default)
}

// Teams lists a league's teams grouped by league and division, or as one
// list when flat is set. The page also seeds the team registry.
func (s *Service) Teams(ctx context.Context, code string, flat bool) (*Result, error) {
	lc, err := lookupLeague("teams", code)
	if err != nil {
		return nil, err
	}
	var args []string
	opts := parse.TeamListOptions
	if flat {
		args = append(args, flatListArg)
		opts = parse.FlatTeamListOptions
	}

	fp := cache.Fingerprint("/teams/"+lc.ID, args...)
	return s.cached(ctx, fp, cache.TTLTeams, func(ctx context.Context) (*envelope.Envelope, time.Duration, error) {
		sel, err := s.teamsPage(ctx, lc.Sport)
		if err != nil {
			return nil, 0, fmt.Errorf("%s teams: %w", lc.ID, err)
		}
		data := table.Group(table.Rows(sel), opts, parse.TeamName)

		if err := s.registry.Prime(ctx, lc.ID, parse.TeamNames(table.Rows(sel))); err != nil {
			s.logger.Warn("Team registry prime failed", "league", lc.ID, "error", err)
		}
		return envelope.New(data), cache.TTLTeams, nil
	})
}

// TeamNames extracts a league's team names in upstream order, bypassing the
// cache. The team registry uses it to build missing entries.
func (s *Service) TeamNames(ctx context.Context, code string) ([]string, error) {
	lc, err := lookupLeague("teams", code)
	if err != nil {
		return nil, err
	}
	sel, err := s.teamsPage(ctx, lc.Sport)
	if err != nil {
		return nil, err
	}
	return parse.TeamNames(table.Rows(sel)), nil
}
