package heuristic

import "github.com/talhabaig007/PhishStop/internal/model"

// Classification thresholds.
const (
	// PhishingThreshold is the minimum score classified as phishing.
	PhishingThreshold = 60
	// SuspiciousThreshold is the minimum score classified as suspicious.
	SuspiciousThreshold = 40
)

// Classify maps a risk score to its tri-state label. The label is a pure
// function of the score, except that a hard indicator (IP-literal host)
// always yields phishing: the override wins over the threshold table and
// is never downgraded by a low aggregate score.
func Classify(score int, hard bool) model.Label {
	switch {
	case hard:
		return model.LabelPhishing
	case score >= PhishingThreshold:
		return model.LabelPhishing
	case score >= SuspiciousThreshold:
		return model.LabelSuspicious
	default:
		return model.LabelSafe
	}
}
