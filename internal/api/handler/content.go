package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-tables/internal/api/respond"
	"github.com/albapepper/scoracle-tables/internal/pipeline"
)

func (h *Handler) write(w http.ResponseWriter, r *http.Request, res *pipeline.Result, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	respond.WriteEnvelope(w, r, res.Envelope, res.TTL)
}

// GetTeams returns a league's teams.
// @Summary List teams
// @Description Teams grouped by league and division, or one list with flat_list.
// @Tags teams
// @Produce json
// @Param league path string true "League code" Enums(mlb, nhl, nfl, nba, mls, epl)
// @Param flat_list query bool false "Return a flat list"
// @Success 200 {object} envelope.Envelope
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /teams/{league} [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	flat := queryBool(r.URL.Query().Get("flat_list"))
	res, err := h.svc.Teams(r.Context(), chi.URLParam(r, "league"), flat)
	h.write(w, r, res, err)
}

// GetRoster returns a team's roster.
// @Summary Team roster
// @Tags teams
// @Produce json
// @Param league path string true "League code" Enums(mlb, nhl, nfl, nba)
// @Param team path string true "Team name prefix, e.g. red+sox"
// @Success 200 {object} envelope.Envelope
// @Failure 404 {object} respond.ErrorResponse
// @Router /roster/{league}/{team} [get]
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Roster(r.Context(), chi.URLParam(r, "league"), chi.URLParam(r, "team"))
	h.write(w, r, res, err)
}

// GetSchedule returns a team's season schedule.
// @Summary Team schedule
// @Tags teams
// @Produce json
// @Param league path string true "League code" Enums(mlb, nhl, nfl)
// @Param team path string true "Team name prefix"
// @Success 200 {object} envelope.Envelope
// @Failure 404 {object} respond.ErrorResponse
// @Router /schedule/{league}/{team} [get]
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Schedule(r.Context(), chi.URLParam(r, "league"), chi.URLParam(r, "team"))
	h.write(w, r, res, err)
}

// GetStats returns a team's player statistics.
// @Summary Team player stats
// @Tags teams
// @Produce json
// @Param league path string true "League code" Enums(mlb, nhl, nfl, nba)
// @Param team path string true "Team name prefix"
// @Success 200 {object} envelope.Envelope
// @Failure 404 {object} respond.ErrorResponse
// @Router /stats/{league}/{team} [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Stats(r.Context(), chi.URLParam(r, "league"), chi.URLParam(r, "team"))
	h.write(w, r, res, err)
}

// GetStandings returns league standings.
// @Summary League standings
// @Tags leagues
// @Produce json
// @Param league path string true "League code" Enums(mlb, nhl, nfl, nba, mls, epl)
// @Success 200 {object} envelope.Envelope
// @Failure 404 {object} respond.ErrorResponse
// @Router /standings/{league} [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Standings(r.Context(), chi.URLParam(r, "league"))
	h.write(w, r, res, err)
}

// GetRankings returns individual sport leaderboards keyed by tour.
// @Summary Rankings
// @Tags leagues
// @Produce json
// @Param sport path string true "Sport" Enums(golf, tennis)
// @Success 200 {object} envelope.Envelope
// @Failure 404 {object} respond.ErrorResponse
// @Router /rankings/{sport} [get]
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Rankings(r.Context(), chi.URLParam(r, "sport"))
	h.write(w, r, res, err)
}

// GetInjuries returns the recent injury report.
// @Summary Injury report
// @Tags leagues
// @Produce json
// @Param league path string true "League code" Enums(mlb)
// @Success 200 {object} envelope.Envelope
// @Failure 404 {object} respond.ErrorResponse
// @Router /injuries/{league} [get]
func (h *Handler) GetInjuries(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Injuries(r.Context(), chi.URLParam(r, "league"))
	h.write(w, r, res, err)
}

// GetScores returns a scoreboard, today's unless a date is in the path.
// @Summary Scoreboard
// @Tags leagues
// @Produce json
// @Param league path string true "League code" Enums(mlb, nhl, nfl, nba, epl)
// @Param year path int false "Year"
// @Param month path int false "Month"
// @Param day path int false "Day"
// @Success 200 {object} envelope.Envelope
// @Failure 400 {object} respond.ErrorResponse
// @Router /scores/{league} [get]
// @Router /scores/{league}/{year}/{month}/{day} [get]
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	var day *time.Time
	if chi.URLParam(r, "year") != "" {
		d, ok := parseDay(chi.URLParam(r, "year"), chi.URLParam(r, "month"), chi.URLParam(r, "day"))
		if !ok {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "Date must be a real calendar day")
			return
		}
		day = &d
	}
	res, err := h.svc.Scores(r.Context(), chi.URLParam(r, "league"), day)
	h.write(w, r, res, err)
}

// queryBool reports whether a query value is one of the accepted truthy
// tokens. Anything else, including an empty value, is false.
func queryBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes":
		return true
	}
	return false
}

// parseDay rejects dates that time.Date would normalise, e.g. 2/30.
func parseDay(year, month, day string) (time.Time, bool) {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
