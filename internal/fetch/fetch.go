// Package fetch retrieves upstream markup for a parameterized resource.
//
// Every fetch waits on a token bucket limiter so a burst of cache misses
// cannot hammer the provider, and the body is whitespace-collapsed before
// it reaches any structural selector.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// SportToken is substituted with Resource.Sport in resource paths.
const SportToken = "{{sport}}"

// Format declares how the upstream document is packaged.
type Format int

const (
	// FormatHTML is plain markup.
	FormatHTML Format = iota
	// FormatScript is markup embedded in document.write('...') calls.
	FormatScript
)

// Resource describes one upstream request. Build a fresh one per call.
type Resource struct {
	Path   string // e.g. "/{{sport}}/teamstats.asp"
	Sport  string
	Query  url.Values
	Format Format
}

// RequestPath returns the path with the sport token substituted.
func (r Resource) RequestPath() string {
	return strings.ReplaceAll(r.Path, SportToken, r.Sport)
}

// URL returns the absolute URL against base, including the query string.
func (r Resource) URL(base string) string {
	u := strings.TrimRight(base, "/") + r.RequestPath()
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// Document is raw markup ready for extraction. It is consumed once.
type Document struct {
	URL    string
	Body   string
	Format Format
}

// FetchError reports a network failure, timeout or non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: upstream returned %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Observer receives per-fetch outcomes; the metrics package implements it.
type Observer interface {
	UpstreamFetch(status string, elapsed time.Duration)
}

// Fetcher is the shared HTTP client for all upstream resources.
type Fetcher struct {
	http     *resty.Client
	baseURL  string
	limiter  *rate.Limiter
	logger   *slog.Logger
	observer Observer
}

// Options configures a Fetcher.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	UserAgent         string
	Logger            *slog.Logger
	Observer          Observer
}

// New creates a rate-limited Fetcher.
func New(opts Options) *Fetcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = 120
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	client.SetTimeout(timeout)
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Fetcher{
		http:     client,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		limiter:  rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		logger:   logger,
		observer: opts.Observer,
	}
}

// Fetch performs one GET for res and returns the normalized document.
func (f *Fetcher) Fetch(ctx context.Context, res Resource) (*Document, error) {
	target := res.URL(f.baseURL)

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	start := time.Now()
	resp, err := f.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(res.Query).
		Get(res.RequestPath())
	elapsed := time.Since(start)

	if err != nil {
		f.observe("error", elapsed)
		f.logger.Warn("Upstream fetch failed", "url", target, "duration", elapsed, "error", err)
		return nil, &FetchError{URL: target, Err: err}
	}
	if !resp.IsSuccess() {
		f.observe(fmt.Sprintf("%dxx", resp.StatusCode()/100), elapsed)
		f.logger.Warn("Upstream returned non-success status",
			"url", target, "status", resp.StatusCode(), "body", truncate(resp.Body(), 200))
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode()}
	}

	f.observe("ok", elapsed)
	f.logger.Debug("Fetched upstream resource", "url", target, "bytes", len(resp.Body()), "duration", elapsed)

	body := CollapseWhitespace(string(resp.Body()))
	if res.Format == FormatScript {
		body = UnwrapScript(body)
	}
	return &Document{URL: target, Body: body, Format: FormatHTML}, nil
}

func (f *Fetcher) observe(status string, elapsed time.Duration) {
	if f.observer != nil {
		f.observer.UpstreamFetch(status, elapsed)
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every whitespace run with a single space.
func CollapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

const (
	scriptOpen  = "document.write('"
	scriptClose = "');"
)

var scriptEscapes = strings.NewReplacer(`\'`, `'`, `\"`, `"`, `\/`, `/`)

// UnwrapScript strips document.write('...'); wrappers. Text missing either
// marker is returned unchanged.
func UnwrapScript(s string) string {
	if !strings.Contains(s, scriptOpen) || !strings.Contains(s, scriptClose) {
		return s
	}
	s = strings.ReplaceAll(s, scriptOpen, "")
	s = strings.ReplaceAll(s, scriptClose, "")
	return scriptEscapes.Replace(s)
}

// truncate returns a truncated string representation for log messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
