package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObservers(t *testing.T) {
	m := New()

	m.UpstreamFetch("200", 120*time.Millisecond)
	m.UpstreamFetch("error", time.Second)
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)
	m.RegistryRebuild("mlb")
	m.ObserveRequest(http.MethodGet, http.StatusOK, 5*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `scoracle_upstream_fetches_total{status="200"} 1`)
	assert.Contains(t, body, `scoracle_upstream_fetches_total{status="error"} 1`)
	assert.Contains(t, body, `scoracle_upstream_fetch_seconds_count 2`)
	assert.Contains(t, body, `scoracle_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, body, `scoracle_cache_lookups_total{result="miss"} 2`)
	assert.Contains(t, body, `scoracle_team_registry_rebuilds_total{league="mlb"} 1`)
	assert.Contains(t, body, `scoracle_http_requests_total{method="GET",status="200"} 1`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.CacheLookup(true)
	assert.NotContains(t, scrape(t, b), `scoracle_cache_lookups_total{result="hit"}`)
}
