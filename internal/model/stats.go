package model

import "time"

// StatsSnapshot is the O(1) summary view over the analysis ledger.
type StatsSnapshot struct {
	TotalAnalyzed    int64
	PhishingDetected int64
	AvgRiskScore     float64
}

// AnalysisRecord is one persisted row of the analysis ledger. It pairs a
// verdict with the host it was derived from so blacklist reports and
// exports do not have to re-parse the URL.
type AnalysisRecord struct {
	AnalyzedAt time.Time
	URL        string
	Host       string
	Label      Label
	Methods    []DetectionMethod
	Reasons    []string
	RiskScore  int
	Confidence int
}

// Verdict reconstructs the verdict carried by the record.
func (r AnalysisRecord) Verdict() Verdict {
	return Verdict{
		ComputedAt: r.AnalyzedAt,
		URL:        r.URL,
		Label:      r.Label,
		Methods:    r.Methods,
		Reasons:    r.Reasons,
		RiskScore:  r.RiskScore,
		Confidence: r.Confidence,
	}
}

// RecordFromVerdict pairs a verdict with its host for persistence.
func RecordFromVerdict(v Verdict, host string) AnalysisRecord {
	return AnalysisRecord{
		AnalyzedAt: v.ComputedAt,
		URL:        v.URL,
		Host:       host,
		Label:      v.Label,
		Methods:    v.Methods,
		Reasons:    v.Reasons,
		RiskScore:  v.RiskScore,
		Confidence: v.Confidence,
	}
}
