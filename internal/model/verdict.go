// Package model defines the core domain types shared across the detection pipeline.
package model

import "time"

// Label is the tri-state classification of a URL.
type Label string

// Classification labels.
const (
	LabelSafe       Label = "safe"
	LabelSuspicious Label = "suspicious"
	LabelPhishing   Label = "phishing"
)

// Valid reports whether the label is one of the three classification states.
func (l Label) Valid() bool {
	return l == LabelSafe || l == LabelSuspicious || l == LabelPhishing
}

// DetectionMethod identifies which subsystem contributed to a verdict.
type DetectionMethod string

// Detection methods.
const (
	MethodHeuristic DetectionMethod = "heuristic"
	MethodRemote    DetectionMethod = "remote"
	MethodFallback  DetectionMethod = "fallback"
	MethodBlacklist DetectionMethod = "blacklist"
	MethodContent   DetectionMethod = "content_analysis"
)

// Verdict is the classification output for one URL at one point in time.
// Immutable once constructed; reasons keep rule evaluation order.
type Verdict struct {
	ComputedAt time.Time
	URL        string
	Label      Label
	Methods    []DetectionMethod
	Reasons    []string
	RiskScore  int
	Confidence int
}

// IsPhishing returns the wire tri-state for the label: true for phishing,
// false for safe, nil for suspicious.
func (v Verdict) IsPhishing() *bool {
	switch v.Label {
	case LabelPhishing:
		b := true
		return &b
	case LabelSafe:
		b := false
		return &b
	default:
		return nil
	}
}

// HasMethod reports whether the verdict carries the given detection method.
func (v Verdict) HasMethod(m DetectionMethod) bool {
	for _, got := range v.Methods {
		if got == m {
			return true
		}
	}
	return false
}

// LabelFromTriState maps the wire tri-state encoding back to a Label:
// nil means suspicious, true phishing, false safe.
func LabelFromTriState(isPhishing *bool) Label {
	switch {
	case isPhishing == nil:
		return LabelSuspicious
	case *isPhishing:
		return LabelPhishing
	default:
		return LabelSafe
	}
}
