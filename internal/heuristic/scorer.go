// Package heuristic scores URL features against an additive rule table
// and maps risk scores to tri-state verdict labels.
package heuristic

import (
	"time"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// Rule is one additive risk signal. Rules are evaluated independently;
// a matching rule contributes Delta to the score and Reason to the
// verdict evidence. A Hard rule forces the phishing label on its own.
type Rule struct {
	Match  func(model.URLFeatures) bool
	Name   string
	Reason string
	Delta  int
	Hard   bool
}

// Scorer evaluates a fixed rule table against extracted URL features.
type Scorer struct {
	rules []Rule
}

// NewScorer creates a scorer over the given rule table. Rule order fixes
// the order of reasons in every verdict.
func NewScorer(rules []Rule) *Scorer {
	return &Scorer{rules: rules}
}

// Score runs every rule against the features. All rules always run; none
// short-circuits another. Returns the clamped additive score, the reasons
// for each fired rule in table order, and whether a hard indicator fired.
func (s *Scorer) Score(f model.URLFeatures) (int, []string, bool) {
	var (
		score   int
		reasons []string
		hard    bool
	)

	for _, r := range s.rules {
		if r.Match(f) {
			score += r.Delta
			reasons = append(reasons, r.Reason)
			if r.Hard {
				hard = true
			}
		}
	}

	return clampScore(score), reasons, hard
}

// Evaluate runs the full local pipeline over extracted features and
// packages the result as a verdict stamped with the given time.
func (s *Scorer) Evaluate(f model.URLFeatures, at time.Time) model.Verdict {
	score, reasons, hard := s.Score(f)

	return model.Verdict{
		ComputedAt: at,
		URL:        f.NormalizedURL,
		Label:      Classify(score, hard),
		Methods:    []model.DetectionMethod{model.MethodHeuristic},
		Reasons:    reasons,
		RiskScore:  score,
		Confidence: Confidence(score),
	}
}

// Confidence derives verdict confidence from a risk score:
// min(score * 1.5, 100), in integer arithmetic. Confidence saturates
// before risk does.
func Confidence(score int) int {
	c := score * 3 / 2
	if c > 100 {
		return 100
	}
	return c
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
