package model

import "time"

// ReportReason categorizes a user-submitted correction.
type ReportReason string

// Report reasons.
const (
	ReasonFalsePositive     ReportReason = "false_positive"
	ReasonConfirmedPhishing ReportReason = "confirmed_phishing"
)

// Valid reports whether the reason is one of the accepted codes.
func (r ReportReason) Valid() bool {
	return r == ReasonFalsePositive || r == ReasonConfirmedPhishing
}

// Report is a user-submitted correction destined for the blacklist store.
type Report struct {
	SubmittedAt time.Time
	ID          string
	URL         string
	Domain      string
	Description string
	Reason      ReportReason
}
