package server

import (
	"context"

	"github.com/talhabaig007/PhishStop/internal/feature"
	"github.com/talhabaig007/PhishStop/internal/heuristic"
	"github.com/talhabaig007/PhishStop/internal/model"
)

// Blacklisted hosts carry more weight than any single heuristic rule.
const blacklistScore = 80

// blacklistReason mirrors the reason string served for blacklist hits.
const blacklistReason = "URL found in phishing blacklist"

// contentGate is the running score above which page content is fetched
// and inspected.
const contentGate = 30

// analyze runs the full service pipeline for one URL: blacklist lookup,
// heuristic rules, and (past the gate) content analysis. The verdict is
// persisted and counted before it is returned.
func (s *Server) analyze(ctx context.Context, rawURL string) (model.Verdict, error) {
	features, err := feature.Extract(rawURL)
	if err != nil {
		return model.Verdict{}, err
	}

	var (
		score   int
		hard    bool
		reasons []string
		methods []model.DetectionMethod
	)

	if entry, ok := s.matcher.Match(features.Host); ok {
		score += blacklistScore
		reasons = append(reasons, blacklistReason)
		methods = append(methods, model.MethodBlacklist)
		s.logger.Debug("Blacklist hit", "host", features.Host, "entry", entry)
	}

	hScore, hReasons, hHard := s.scorer.Score(features)
	score += hScore
	hard = hard || hHard
	reasons = append(reasons, hReasons...)
	if len(hReasons) > 0 {
		methods = append(methods, model.MethodHeuristic)
	}

	if s.content != nil && score > contentGate {
		cScore, cReasons := s.content.Analyze(ctx, features.NormalizedURL)
		if cScore > 0 {
			score += cScore
			reasons = append(reasons, cReasons...)
			methods = append(methods, model.MethodContent)
		}
	}

	if score > 100 {
		score = 100
	}

	verdict := model.Verdict{
		ComputedAt: s.now(),
		URL:        features.NormalizedURL,
		Label:      heuristic.Classify(score, hard),
		Methods:    methods,
		Reasons:    reasons,
		RiskScore:  score,
		Confidence: heuristic.Confidence(score),
	}

	s.record(ctx, verdict, features.Host)

	return verdict, nil
}

// record persists the verdict and adds it to the running statistics.
// Persistence failures are logged, never surfaced.
func (s *Server) record(ctx context.Context, v model.Verdict, host string) {
	s.stats.Record(v)

	if s.store == nil {
		return
	}

	if err := s.store.SaveVerdict(ctx, model.RecordFromVerdict(v, host)); err != nil {
		s.logger.Warn("Failed to persist verdict", "url", v.URL, "error", err)
	}
}
