package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/scoracle-tables/internal/api/handler"
	"github.com/albapepper/scoracle-tables/internal/api/respond"
	"github.com/albapepper/scoracle-tables/internal/config"
)

// Telemetry is what the router needs from the metrics registry.
type Telemetry interface {
	RequestObserver
	Handler() http.Handler
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, tel Telemetry, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(TimingMiddleware)
	if tel != nil {
		r.Use(MetricsMiddleware(tel))
	}
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Routes ---

	// Root
	r.Get("/", h.Root)
	r.Get("/help", helpHandler(r))

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	if tel != nil {
		r.Method(http.MethodGet, "/metrics", tel.Handler())
	}

	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// Content families
	r.Get("/teams/{league}", h.GetTeams)
	r.Get("/roster/{league}/{team}", h.GetRoster)
	r.Get("/schedule/{league}/{team}", h.GetSchedule)
	r.Get("/stats/{league}/{team}", h.GetStats)
	r.Get("/standings/{league}", h.GetStandings)
	r.Get("/rankings/{sport}", h.GetRankings)
	r.Get("/injuries/{league}", h.GetInjuries)
	r.Route("/scores/{league}", func(r chi.Router) {
		r.Get("/", h.GetScores)
		r.Get("/{year}/{month}/{day}", h.GetScores)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No route for "+r.URL.Path+"; see /help")
	})

	return r
}

// helpHandler lists every registered route, read from the router itself.
func helpHandler(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var list []string
		_ = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			route = strings.ReplaceAll(route, "/*/", "/")
			if len(route) > 1 {
				route = strings.TrimSuffix(route, "/")
			}
			list = append(list, method+" "+route)
			return nil
		})
		sort.Strings(list)
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"routes": list})
	}
}
