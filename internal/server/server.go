// Package server exposes the analysis service over HTTP: URL verdicts,
// service statistics, and blacklist intake.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/talhabaig007/PhishStop/internal/blacklist"
	"github.com/talhabaig007/PhishStop/internal/heuristic"
	"github.com/talhabaig007/PhishStop/internal/model"
	"github.com/talhabaig007/PhishStop/internal/stats"
)

// Store persists verdicts into the analysis ledger.
type Store interface {
	SaveVerdict(ctx context.Context, rec model.AnalysisRecord) error
}

// ContentAnalyzer scores a page's markup. Implemented by content.Analyzer.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, pageURL string) (int, []string)
}

// Config assembles the service dependencies.
type Config struct {
	// Store receives every computed verdict. Optional; verdicts are not
	// persisted without it.
	Store Store

	// Matcher answers blacklist lookups. A default-seeded matcher is used
	// when nil.
	Matcher *blacklist.Matcher

	// Content scores page markup for URLs whose running score exceeds the
	// content gate. Optional.
	Content ContentAnalyzer

	// Stats aggregates service statistics. A fresh aggregator is used when
	// nil.
	Stats *stats.Aggregator

	// Logger for request and pipeline logging. Defaults to slog.Default().
	Logger *slog.Logger

	// Now is the clock used to stamp verdicts. Defaults to time.Now.
	Now func() time.Time

	// RequestsPerSec caps the request rate across all clients; zero or
	// negative disables limiting.
	RequestsPerSec float64

	// Burst is the token bucket depth when rate limiting is enabled.
	Burst int
}

// Server computes service-side verdicts and serves them over HTTP.
type Server struct {
	store   Store
	matcher *blacklist.Matcher
	scorer  *heuristic.Scorer
	content ContentAnalyzer
	stats   *stats.Aggregator
	logger  *slog.Logger
	limiter *rate.Limiter
	now     func() time.Time
}

// New creates a server from the config, filling in defaults.
func New(cfg Config) *Server {
	matcher := cfg.Matcher
	if matcher == nil {
		matcher = blacklist.New(nil)
		matcher.SeedDefaults()
	}

	aggregator := cfg.Stats
	if aggregator == nil {
		aggregator = stats.New(stats.DefaultLedgerCapacity)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSec > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RequestsPerSec)
			if burst < 1 {
				burst = 1
			}
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), burst)
	}

	return &Server{
		store:   cfg.Store,
		matcher: matcher,
		scorer:  heuristic.NewScorer(heuristic.DefaultRules()),
		content: cfg.Content,
		stats:   aggregator,
		logger:  logger,
		limiter: limiter,
		now:     now,
	}
}

// Handler returns the routed handler with logging and rate limiting
// applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/statistics", s.handleStatistics)
	mux.HandleFunc("/blacklist", s.handleBlacklist)

	return s.loggingMiddleware(s.rateLimitMiddleware(mux))
}

// NewHTTPServer wraps the server in an http.Server bound to addr.
func NewHTTPServer(addr string, s *Server) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
