package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/albapepper/scoracle-tables/internal/api/respond"
	"github.com/albapepper/scoracle-tables/internal/fetch"
	"github.com/albapepper/scoracle-tables/internal/pipeline"
	"github.com/albapepper/scoracle-tables/internal/table"
	"github.com/albapepper/scoracle-tables/internal/teams"
)

// writeError maps a pipeline failure onto an HTTP status and error code.
func writeError(w http.ResponseWriter, err error) {
	var (
		nf *teams.NotFoundError
		fe *fetch.FetchError
		nm *table.NoMatchError
	)
	switch {
	case errors.Is(err, pipeline.ErrUnsupportedLeague):
		respond.WriteErrorDetail(w, http.StatusNotFound, "UNSUPPORTED_LEAGUE", "League not supported", err.Error())
	case errors.As(err, &nf):
		respond.WriteErrorDetail(w, http.StatusNotFound, "TEAM_NOT_FOUND",
			fmt.Sprintf("No %s team matches %q", nf.League, nf.Query), notFoundDetail(nf))
	case errors.As(err, &fe):
		respond.WriteError(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Stats provider unavailable")
	case errors.As(err, &nm):
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_LAYOUT", "Stats provider page layout not recognised")
	default:
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func notFoundDetail(nf *teams.NotFoundError) string {
	switch {
	case len(nf.Candidates) > 0:
		return "ambiguous, matches " + strings.Join(nf.Candidates, ", ")
	case nf.Suggestion != "":
		return fmt.Sprintf("did you mean %q?", nf.Suggestion)
	}
	return ""
}
