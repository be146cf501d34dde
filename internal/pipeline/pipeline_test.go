package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-tables/internal/cache"
	"github.com/albapepper/scoracle-tables/internal/fetch"
	"github.com/albapepper/scoracle-tables/internal/kv"
	"github.com/albapepper/scoracle-tables/internal/parse"
	"github.com/albapepper/scoracle-tables/internal/teams"
)

// fakeFetcher serves canned pages keyed by request path and encoded query.
// Unknown keys get an empty page.
type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	calls  map[string]int
	served []string
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{pages: pages, errs: map[string]error{}, calls: map[string]int{}}
}

func pageKey(res fetch.Resource) string {
	key := res.RequestPath()
	if len(res.Query) > 0 {
		key += "?" + res.Query.Encode()
	}
	return key
}

func (f *fakeFetcher) Fetch(_ context.Context, res fetch.Resource) (*fetch.Document, error) {
	key := pageKey(res)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[key]++
	f.served = append(f.served, key)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	body, ok := f.pages[key]
	if !ok {
		body = "<html><body></body></html>"
	}
	return &fetch.Document{URL: "http://stats.test" + key, Body: body}, nil
}

func (f *fakeFetcher) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

var testNow = time.Date(2013, time.May, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, f Fetcher) (*Service, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory(0)
	t.Cleanup(func() { _ = store.Close() })
	svc := New(Deps{
		Fetcher:             f,
		Cache:               cache.New(store, cache.Options{Enabled: true}),
		Store:               store,
		ScheduleConcurrency: 3,
		Now:                 func() time.Time { return testNow },
	})
	return svc, store
}

func dataJSON(t *testing.T, r *Result) string {
	t.Helper()
	raw, err := json.Marshal(r.Envelope.Data)
	require.NoError(t, err)
	return string(raw)
}

const mlbTeamsPage = `<html><body><table class="shsTable shsBorderTable">
<tr class="shsTableTtlRow"><td>American League</td></tr>
<tr class="shsTableSubttlRow"><td>AL East</td></tr>
<tr class="shsRow0Row"><td><a href="/mlb/teamstats.asp?teamno=1">Baltimore</a></td></tr>
<tr class="shsRow1Row"><td><a href="/mlb/teamstats.asp?teamno=2">Boston</a></td></tr>
<tr><td>&nbsp;</td></tr>
<tr class="shsTableSubttlRow"><td>AL Central</td></tr>
<tr class="shsRow0Row"><td><a href="/mlb/teamstats.asp?teamno=3">Chicago White Sox</a></td></tr>
</table></body></html>`

const mlbRosterPage = `<html><body><table class="shsTable shsBorderTable">
<tr class="shsColTtlRow"><td>No</td><td>Name</td><td>Pos</td><td>B/T</td><td>Status</td><td>Ht</td><td>Wt</td><td>Born</td><td>Birthplace</td></tr>
<tr class="shsRow0Row"><td>15</td><td>Dustin Pedroia</td><td>2B</td><td>R/R</td><td>Active</td><td>5-9</td><td>175</td><td>8/17/1983</td><td>Palo Alto, CA</td></tr>
</table></body></html>`

func TestTeamsGroupsAndCaches(t *testing.T) {
	f := newFakeFetcher(map[string]string{"/mlb/teams.asp": mlbTeamsPage})
	svc, _ := newTestService(t, f)
	ctx := context.Background()

	res, err := svc.Teams(ctx, "MLB", false)
	require.NoError(t, err)
	assert.False(t, res.Cached())
	assert.Equal(t, cache.TTLTeams, res.TTL)
	assert.JSONEq(t, `{"american":{"al_east":["Baltimore","Boston"],"al_central":["Chicago White Sox"]}}`, dataJSON(t, res))

	again, err := svc.Teams(ctx, "mlb", false)
	require.NoError(t, err)
	assert.True(t, again.Cached())
	assert.JSONEq(t, dataJSON(t, res), dataJSON(t, again))
	assert.Equal(t, 1, f.count("/mlb/teams.asp"))

	flat, err := svc.Teams(ctx, "mlb", true)
	require.NoError(t, err)
	assert.JSONEq(t, `["Baltimore","Boston","Chicago White Sox"]`, dataJSON(t, flat))

	names, err := svc.Registry().Names(ctx, "mlb")
	require.NoError(t, err)
	assert.Equal(t, []string{"Baltimore", "Boston", "Chicago White Sox"}, names)
}

func TestRosterResolvesTeam(t *testing.T) {
	f := newFakeFetcher(map[string]string{
		"/mlb/teams.asp":                         mlbTeamsPage,
		"/mlb/teamstats.asp?teamno=2&type=roster": mlbRosterPage,
	})
	svc, _ := newTestService(t, f)

	res, err := svc.Roster(context.Background(), "mlb", "bos")
	require.NoError(t, err)

	var players []map[string]any
	require.NoError(t, json.Unmarshal([]byte(dataJSON(t, res)), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "Dustin Pedroia", players[0]["name"])
	assert.EqualValues(t, 69, players[0]["height"])
	assert.Equal(t, "R", players[0]["bats"])
}

func TestRosterRefreshBypassesCache(t *testing.T) {
	key := "/mlb/teamstats.asp?teamno=2&type=roster"
	f := newFakeFetcher(map[string]string{"/mlb/teams.asp": mlbTeamsPage, key: mlbRosterPage})
	svc, _ := newTestService(t, f)
	ctx := context.Background()

	_, err := svc.Roster(ctx, "mlb", "boston")
	require.NoError(t, err)
	_, err = svc.Roster(ctx, "mlb", "boston")
	require.NoError(t, err)
	assert.Equal(t, 1, f.count(key))

	res, err := svc.Roster(WithRefresh(ctx), "mlb", "boston")
	require.NoError(t, err)
	assert.False(t, res.Cached())
	assert.Equal(t, 2, f.count(key))
}

func TestTeamErrors(t *testing.T) {
	f := newFakeFetcher(map[string]string{"/mlb/teams.asp": mlbTeamsPage})
	svc, _ := newTestService(t, f)
	ctx := context.Background()

	_, err := svc.Roster(ctx, "xfl", "boston")
	assert.ErrorIs(t, err, ErrUnsupportedLeague)

	_, err = svc.Roster(ctx, "mls", "galaxy")
	assert.ErrorIs(t, err, ErrUnsupportedLeague)

	_, err = svc.Roster(ctx, "mlb", "bostn")
	require.ErrorIs(t, err, teams.ErrNotFound)
	var nf *teams.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Boston", nf.Suggestion)
	assert.Zero(t, f.count("/mlb/teamstats.asp?teamno=0&type=roster"))
}

func TestFetchFailureIsNotCached(t *testing.T) {
	f := newFakeFetcher(map[string]string{})
	f.errs["/mlb/standings.asp"] = &fetch.FetchError{URL: "http://stats.test/mlb/standings.asp", StatusCode: 503}
	svc, _ := newTestService(t, f)
	ctx := context.Background()

	_, err := svc.Standings(ctx, "mlb")
	var fe *fetch.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 503, fe.StatusCode)

	_, err = svc.Standings(ctx, "mlb")
	require.Error(t, err)
	assert.Equal(t, 2, f.count("/mlb/standings.asp"))
}

func TestStandingsLayoutMismatch(t *testing.T) {
	svc, _ := newTestService(t, newFakeFetcher(map[string]string{}))
	_, err := svc.Standings(context.Background(), "nba")
	require.Error(t, err)
	assert.True(t, isNoMatch(err))
}

func TestStandingsGroupedByDivision(t *testing.T) {
	page := `<table class="shsTable shsBorderTable">
<tr class="shsTableTtlRow"><td>Eastern Conference</td></tr>
<tr class="shsTableSubttlRow"><td>Atlantic Division</td></tr>
<tr class="shsColTtlRow"><td>Team</td><td>W</td><td>L</td><td>Pct</td><td>GB</td></tr>
<tr class="shsRow0Row"><td><a>New York</a></td><td>54</td><td>28</td><td>.659</td><td>-</td></tr>
<tr class="shsRow1Row"><td><a>Brooklyn</a></td><td>49</td><td>33</td><td>.598</td><td>5.0</td></tr>
</table>`
	svc, _ := newTestService(t, newFakeFetcher(map[string]string{"/nba/standings.asp": page}))

	res, err := svc.Standings(context.Background(), "nba")
	require.NoError(t, err)
	assert.Equal(t, cache.TTLStandings, res.TTL)
	assert.JSONEq(t, `{"eastern_conference":{"atlantic":[
		{"team":"New York","wins":54,"losses":28,"percentage":0.659,"games_behind":0},
		{"team":"Brooklyn","wins":49,"losses":33,"percentage":0.598,"games_behind":5}
	]}}`, dataJSON(t, res))
}

func scheduleMonth(rows string) string {
	return `<table class="shsTable shsBorderTable">
<tr class="shsColTtlRow"><td>Date</td><td>Opponent</td><td>Time</td><td>TV</td><td>Pitchers</td></tr>` + rows + `</table>`
}

func TestScheduleJoinsMonthsInOrder(t *testing.T) {
	month := func(m string) string {
		return "/mlb/teamstats.asp?" + url.Values{"month": {m}, "teamno": {"02"}, "type": {"schedule"}}.Encode()
	}
	f := newFakeFetcher(map[string]string{
		"/mlb/teams.asp": mlbTeamsPage,
		month("04"): scheduleMonth(`<tr class="shsRow0Row"><td>2</td><td>vs. Baltimore</td><td><span class="shsGMTZone">7:05 PM</span></td><td>NESN</td><td>TBA</td></tr>`),
		month("05"): scheduleMonth(`<tr class="shsRow0Row"><td>1</td><td>@ Chicago</td><td><span class="shsGMTZone">8:10 PM</span></td><td>NESN/MLBN</td><td>TBA</td></tr>`),
	})
	svc, _ := newTestService(t, f)

	res, err := svc.Schedule(context.Background(), "mlb", "boston")
	require.NoError(t, err)

	var games []map[string]any
	require.NoError(t, json.Unmarshal([]byte(dataJSON(t, res)), &games))
	require.Len(t, games, 2)
	assert.Equal(t, "Baltimore", games[0]["opponent"])
	assert.Equal(t, true, games[0]["is_home_game"])
	assert.Equal(t, "2 Apr 2013 7:05 PM", games[0]["date"])
	assert.Equal(t, "Chicago", games[1]["opponent"])
	assert.Equal(t, false, games[1]["is_home_game"])
	assert.Equal(t, []any{"NESN", "MLBN"}, games[1]["networks"])

	for m := 2; m < 11; m++ {
		assert.Equal(t, 1, f.count(month(parse.PadInt(m))), "month %d", m)
	}
}

func TestSeasonYear(t *testing.T) {
	hockey := seasons["nhl"]
	testCases := []struct {
		name     string
		now      time.Time
		month    int
		expected int
	}{
		{"autumn start", time.Date(2013, time.October, 1, 0, 0, 0, 0, time.UTC), 10, 2013},
		{"autumn next january", time.Date(2013, time.October, 1, 0, 0, 0, 0, time.UTC), 1, 2014},
		{"spring back to october", time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC), 10, 2013},
		{"spring same year", time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC), 3, 2014},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, seasonYear(tc.now, hockey, tc.month))
		})
	}
	assert.Equal(t, 2013, seasonYear(testNow, seasons["mlb"], 10))
}

func TestScoresWithoutGames(t *testing.T) {
	f := newFakeFetcher(map[string]string{
		"/multisport/today.js.asp?day=20130510&sport=mlb": `<table class="shsTable"><tr><td>No games</td></tr></table>`,
	})
	svc, _ := newTestService(t, f)

	res, err := svc.Scores(context.Background(), "mlb", nil)
	require.NoError(t, err)
	assert.Equal(t, cache.TTLNoGames, res.TTL)
	assert.JSONEq(t, `{"message":"No games scheduled for today"}`, dataJSON(t, res))

	day := time.Date(2013, time.September, 17, 0, 0, 0, 0, time.UTC)
	res, err = svc.Scores(context.Background(), "mlb", &day)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"No games scheduled for 9/17/2013"}`, dataJSON(t, res))
	assert.Equal(t, 1, f.count("/multisport/today.js.asp?day=20130917&sport=mlb"))

	// A hit keeps the TTL the message was stored with.
	res, err = svc.Scores(context.Background(), "mlb", &day)
	require.NoError(t, err)
	assert.True(t, res.Cached())
	assert.Equal(t, cache.TTLNoGames, res.TTL)
	assert.Equal(t, 1, f.count("/multisport/today.js.asp?day=20130917&sport=mlb"))
}

func TestScoresAssemblesGames(t *testing.T) {
	page := `<table class="shsTable">
<tr class="shsMiniRowSpacer"><td>Premier League</td></tr>
<tr><td><a>Arsenal</a></td><td>2</td><td class="shsMiniStatus"><a>Final</a></td></tr>
<tr><td><a>Chelsea</a></td><td>1</td></tr>
</table>`
	f := newFakeFetcher(map[string]string{"/multisport/today.js.asp?day=20130510&lg=epl&sport=ifb": page})
	svc, _ := newTestService(t, f)

	res, err := svc.Scores(context.Background(), "epl", nil)
	require.NoError(t, err)
	assert.Equal(t, cache.TTLScores, res.TTL)
	assert.JSONEq(t, `{"premier_league":[{
		"away":{"team":"Arsenal","score":2},
		"home":{"team":"Chelsea","score":1},
		"status":"final","time":null,"extra":null
	}]}`, dataJSON(t, res))
}

func TestRankingsByTour(t *testing.T) {
	tours := `<form><select name="tour"><option value="">Choose</option><option value="pga">PGA</option><option value="lpga">LPGA</option></select></form>`
	board := `<table class="shsTable shsBorderTable">
<tr class="shsColTtlRow"><td>Rank</td><td>Player</td><td>Country</td><td>Points</td><td>Earnings</td></tr>
<tr class="shsRow0Row"><td>1</td><td>Serena Williams</td><td>USA</td><td>12,260</td><td>$9,510,000</td></tr>
</table>`
	f := newFakeFetcher(map[string]string{
		"/tennis/rankings.asp":          tours,
		"/tennis/rankings.asp?tour=pga": board,
	})
	svc, _ := newTestService(t, f)

	res, err := svc.Rankings(context.Background(), "tennis")
	require.NoError(t, err)
	assert.Equal(t, cache.TTLRankings, res.TTL)
	assert.JSONEq(t, `{
		"pga":[{"position":1,"player":"Serena Williams","country":"USA","points":12260,"earnings_usd":9510000}],
		"lpga":[]
	}`, dataJSON(t, res))

	_, err = svc.Rankings(context.Background(), "cricket")
	assert.ErrorIs(t, err, ErrUnsupportedLeague)
}

func TestInjuriesByTeam(t *testing.T) {
	page := `<div id="shsMLBrecentinj">
<h2 class="shsTableTitle">Boston Red Sox</h2>
<table class="shsTable"><tr class="shsColTtlRow"><td>Date</td><td>Player</td><td>Status</td></tr>
<tr class="shsRow0Row"><td>Apr 2</td><td>John Lackey</td><td>15-day DL</td></tr></table>
<h2 class="shsTableTitle">New York Yankees</h2>
<table class="shsTable"><tr class="shsColTtlRow"><td>Date</td><td>Player</td><td>Status</td></tr></table>
</div>`
	f := newFakeFetcher(map[string]string{"/mlb/stats.asp?file=recentinj": page})
	svc, _ := newTestService(t, f)

	res, err := svc.Injuries(context.Background(), "mlb")
	require.NoError(t, err)

	ts := time.Date(2013, time.April, 2, 0, 0, 0, 0, time.UTC).Unix()
	raw, _ := json.Marshal(ts)
	assert.JSONEq(t, `{"boston_red_sox":[{"date":"Apr 2","ts":`+string(raw)+`,"player":"John Lackey","status":"15-day DL"}]}`, dataJSON(t, res))

	_, err = svc.Injuries(context.Background(), "nhl")
	assert.ErrorIs(t, err, ErrUnsupportedLeague)
}

func TestWarmRefreshesEveryLeague(t *testing.T) {
	f := newFakeFetcher(map[string]string{"/mlb/teams.asp": mlbTeamsPage})
	f.errs["/nhl/teams.asp"] = errors.New("connection refused")
	svc, _ := newTestService(t, f)
	ctx := context.Background()

	_, err := svc.Teams(ctx, "mlb", false)
	require.NoError(t, err)

	result := svc.Warm(ctx, []string{"mlb", "nhl"}, 4)
	assert.Equal(t, 6, result.Jobs)
	assert.Len(t, result.Results, 6)
	assert.Equal(t, result.Jobs, result.Succeeded+result.Failed)
	assert.Len(t, result.Errors, result.Failed)

	// mlb standings finds no table and nhl teams cannot be fetched.
	assert.True(t, result.Results[0].Success)
	assert.Equal(t, "teams", result.Results[0].Family)
	assert.False(t, result.Results[1].Success)
	assert.True(t, result.Results[2].Success)
	assert.False(t, result.Results[3].Success)
	assert.Equal(t, "nhl", result.Results[3].League)

	assert.Equal(t, 2, f.count("/mlb/teams.asp"))
	assert.Contains(t, result.Summary(), "jobs=6")
}

func TestWarmWithNoLeagues(t *testing.T) {
	svc, _ := newTestService(t, newFakeFetcher(nil))
	result := svc.Warm(context.Background(), nil, 2)
	assert.Zero(t, result.Jobs)
	assert.Empty(t, result.Errors)
}
