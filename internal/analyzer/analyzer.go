// Package analyzer coordinates remote URL analysis with a local heuristic
// fallback. Verdicts are memoized in a TTL cache keyed by normalized URL,
// and concurrent first-time lookups for the same URL collapse into a
// single upstream call.
package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/talhabaig007/PhishStop/internal/feature"
	"github.com/talhabaig007/PhishStop/internal/heuristic"
	"github.com/talhabaig007/PhishStop/internal/model"
	"golang.org/x/sync/singleflight"
)

// Defaults for the verdict cache and the remote call budget.
const (
	DefaultCacheTTL      = 5 * time.Minute
	DefaultCacheCapacity = 512
	DefaultRemoteTimeout = 3 * time.Second
)

// Config holds analyzer construction options. Zero values select the
// package defaults; Now exists so tests can substitute a clock.
type Config struct {
	Now           func() time.Time
	RemoteTimeout time.Duration
	CacheTTL      time.Duration
	CacheCapacity int
}

// Analyzer wraps a remote analysis client with caching, request
// collapsing, and the heuristic fallback of last resort.
type Analyzer struct {
	client    RemoteClient
	scorer    *heuristic.Scorer
	cache     *verdictCache
	logger    *slog.Logger
	now       func() time.Time
	observers []Observer
	group     singleflight.Group
	timeout   time.Duration
}

// New creates an analyzer around the given remote client. A nil client
// skips the remote path entirely and scores locally. Observers are
// notified of every newly computed verdict.
func New(client RemoteClient, cfg Config, logger *slog.Logger, observers ...Observer) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	timeout := cfg.RemoteTimeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	return &Analyzer{
		client:    client,
		scorer:    heuristic.NewScorer(heuristic.DefaultRules()),
		cache:     newVerdictCache(cfg.CacheTTL, cfg.CacheCapacity, now),
		logger:    logger,
		now:       now,
		observers: observers,
		timeout:   timeout,
	}
}

// Analyze classifies a URL. It never fails: remote trouble falls back to
// local heuristics, and unparseable input yields a conservative safe
// verdict with zero evidence. A cached verdict younger than its TTL is
// returned as-is without touching the remote service.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) model.Verdict {
	key, err := feature.NormalizeURL(rawURL)
	if err != nil {
		a.logger.Warn("refusing to score unparseable url", "url", rawURL, "error", err)
		v := safeDefault(rawURL, a.now())
		a.notify(v)
		return v
	}

	if v, ok := a.cache.get(key); ok {
		a.logger.Debug("verdict cache hit", "url", key)
		return v
	}

	result, _, _ := a.group.Do(key, func() (any, error) {
		// A racing caller may have populated the cache between our miss
		// and winning the flight.
		if v, ok := a.cache.get(key); ok {
			return v, nil
		}

		v := a.analyzeOnce(ctx, key)
		a.cache.put(key, v)
		a.notify(v)
		return v, nil
	})

	return result.(model.Verdict)
}

// analyzeOnce performs one upstream analysis under the bounded timeout,
// falling back to the local scorer on any failure.
func (a *Analyzer) analyzeOnce(ctx context.Context, url string) model.Verdict {
	if a.client == nil {
		return a.fallback(url)
	}

	rctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	v, err := a.client.Analyze(rctx, url)
	if err != nil {
		a.logger.Warn("remote analysis failed, using heuristic fallback",
			"url", url,
			"error", err)
		return a.fallback(url)
	}

	v.URL = url
	v.ComputedAt = a.now()

	a.logger.Debug("remote analysis succeeded",
		"url", url,
		"risk_score", v.RiskScore,
		"label", v.Label)

	return v
}

// fallback scores the URL locally. It never fails; input that cannot be
// parsed scores zero and stays safe.
func (a *Analyzer) fallback(url string) model.Verdict {
	f, err := feature.Extract(url)
	if err != nil {
		return safeDefault(url, a.now())
	}

	v := a.scorer.Evaluate(f, a.now())
	v.Methods = []model.DetectionMethod{model.MethodFallback}
	return v
}

func (a *Analyzer) notify(v model.Verdict) {
	for _, o := range a.observers {
		o.Record(v)
	}
}

// CacheSize reports the number of live cache entries.
func (a *Analyzer) CacheSize() int {
	return a.cache.size()
}

// Close releases background resources.
func (a *Analyzer) Close() error {
	a.cache.Close()
	return nil
}

// safeDefault is the verdict of last resort: zero score, zero confidence,
// zero evidence.
func safeDefault(url string, at time.Time) model.Verdict {
	return model.Verdict{
		ComputedAt: at,
		URL:        url,
		Label:      model.LabelSafe,
		Methods:    []model.DetectionMethod{model.MethodFallback},
	}
}
