package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/albapepper/scoracle-tables/internal/cache"
	"github.com/albapepper/scoracle-tables/internal/config"
	"github.com/albapepper/scoracle-tables/internal/envelope"
	"github.com/albapepper/scoracle-tables/internal/fetch"
	"github.com/albapepper/scoracle-tables/internal/parse"
	"github.com/albapepper/scoracle-tables/internal/table"
)

var statsTable = table.Selector{Element: "table", Classes: []string{"sortable", "shsTable", "shsBorderTable"}}

// season is the month span a schedule is paged over; to is exclusive.
type season struct{ from, to int }

var seasons = map[string]season{
	"mlb": {from: 2, to: 11},
	"nhl": {from: 9, to: 6},
}

// teamTarget resolves a team reference and returns the cache argument that
// identifies it, e.g. "mlb2".
func (s *Service) teamTarget(ctx context.Context, lc config.LeagueConfig, team string) (int, string, error) {
	ordinal, err := s.registry.Resolve(ctx, lc.ID, team)
	if err != nil {
		return 0, "", err
	}
	return ordinal, lc.Sport + strconv.Itoa(ordinal), nil
}

func (s *Service) teamPage(ctx context.Context, lc config.LeagueConfig, q url.Values, sel table.Selector) (*goquery.Selection, error) {
	doc, err := s.fetcher.Fetch(ctx, fetch.Resource{Path: teamStatsPath, Sport: lc.Sport, Query: q})
	if err != nil {
		return nil, err
	}
	return table.Extract(doc, sel)
}

// Roster lists a team's players.
func (s *Service) Roster(ctx context.Context, code, team string) (*Result, error) {
	lc, err := lookupLeague("roster", code)
	if err != nil {
		return nil, err
	}
	parser, ok := parse.Roster(lc.ID)
	if !ok {
		return nil, unsupported("roster", lc.ID)
	}
	ordinal, arg, err := s.teamTarget(ctx, lc, team)
	if err != nil {
		return nil, err
	}

	fp := cache.Fingerprint("/roster/"+lc.ID, arg)
	return s.cached(ctx, fp, cache.TTLRoster, func(ctx context.Context) (*envelope.Envelope, time.Duration, error) {
		q := url.Values{"teamno": {strconv.Itoa(ordinal)}, "type": {"roster"}}
		sel, err := s.teamPage(ctx, lc, q, table.Default)
		if err != nil {
			return nil, 0, fmt.Errorf("%s roster: %w", lc.ID, err)
		}
		return envelope.New(table.Group(table.Rows(sel), table.Flat, parser)), cache.TTLRoster, nil
	})
}

// Stats lists a team's player statistics.
func (s *Service) Stats(ctx context.Context, code, team string) (*Result, error) {
	lc, err := lookupLeague("stats", code)
	if err != nil {
		return nil, err
	}
	if !parse.HasStats(lc.ID) {
		return nil, unsupported("stats", lc.ID)
	}
	ordinal, arg, err := s.teamTarget(ctx, lc, team)
	if err != nil {
		return nil, err
	}

	fp := cache.Fingerprint("/stats/"+lc.ID, arg)
	return s.cached(ctx, fp, cache.TTLStats, func(ctx context.Context) (*envelope.Envelope, time.Duration, error) {
		q := url.Values{"teamno": {strconv.Itoa(ordinal)}, "type": {"stats"}}
		sel, err := s.teamPage(ctx, lc, q, statsTable)
		if err != nil {
			return nil, 0, fmt.Errorf("%s stats: %w", lc.ID, err)
		}
		data, _ := parse.Stats(lc.ID, table.Rows(sel))
		return envelope.New(data), cache.TTLStats, nil
	})
}

// Schedule lists a team's games for the season in date order. Baseball and
// hockey are fetched one month per page; football is a single page.
func (s *Service) Schedule(ctx context.Context, code, team string) (*Result, error) {
	lc, err := lookupLeague("schedule", code)
	if err != nil {
		return nil, err
	}
	if _, ok := parse.Schedule(lc.ID, parse.ScheduleContext{}); !ok {
		return nil, unsupported("schedule", lc.ID)
	}
	ordinal, arg, err := s.teamTarget(ctx, lc, team)
	if err != nil {
		return nil, err
	}

	fp := cache.Fingerprint("/schedule/"+lc.ID, arg)
	return s.cached(ctx, fp, cache.TTLSchedule, func(ctx context.Context) (*envelope.Envelope, time.Duration, error) {
		var (
			games []any
			err   error
		)
		if sn, paged := seasons[lc.ID]; paged {
			games, err = s.monthlySchedule(ctx, lc, ordinal, sn)
		} else {
			games, err = s.schedulePage(ctx, lc, ordinal, 0, s.now().Year(), "schedules", true)
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s schedule: %w", lc.ID, err)
		}
		return envelope.New(games), cache.TTLSchedule, nil
	})
}

// monthlySchedule fetches every month of the season, at most s.conc at a
// time, and joins the pages in month order.
func (s *Service) monthlySchedule(ctx context.Context, lc config.LeagueConfig, ordinal int, sn season) ([]any, error) {
	now := s.now()
	months := parse.MonthRange(sn.from, sn.to)
	pages := make([][]any, len(months))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.conc)
	for i, m := range months {
		g.Go(func() error {
			games, err := s.schedulePage(gctx, lc, ordinal, m, seasonYear(now, sn, m), "schedule", false)
			if err != nil {
				return fmt.Errorf("month %d: %w", m, err)
			}
			pages[i] = games
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	games := []any{}
	for _, p := range pages {
		games = append(games, p...)
	}
	return games, nil
}

// schedulePage reads one schedule page. A page without a schedule table
// means no games that month.
func (s *Service) schedulePage(ctx context.Context, lc config.LeagueConfig, ordinal, month, year int, kind string, firstOnly bool) ([]any, error) {
	q := url.Values{"teamno": {parse.PadInt(ordinal)}, "type": {kind}}
	if month > 0 {
		q.Set("month", parse.PadInt(month))
	}
	sel, err := s.teamPage(ctx, lc, q, table.Default)
	if isNoMatch(err) {
		return []any{}, nil
	}
	if err != nil {
		return nil, err
	}
	if firstOnly {
		sel = sel.First()
	}
	parser, _ := parse.Schedule(lc.ID, parse.ScheduleContext{Month: month, Year: year})
	games, _ := table.Group(table.Rows(sel), table.Flat, parser).([]any)
	return games, nil
}

// seasonYear is the calendar year month m falls in for the season that is
// current at now. Seasons that wrap past December start in the earlier year.
func seasonYear(now time.Time, sn season, m int) int {
	year := now.Year()
	if sn.to >= sn.from {
		return year
	}
	start := year
	if int(now.Month()) < sn.to {
		start--
	}
	if m < sn.from {
		return start + 1
	}
	return start
}
