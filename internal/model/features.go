package model

// Scheme buckets a URL scheme into the categories relevant to scoring.
type Scheme string

// Scheme constants.
const (
	SchemeHTTP  Scheme = "http"
	SchemeHTTPS Scheme = "https"
	SchemeOther Scheme = "other"
)

// URLFeatures is the structural feature set extracted from a raw URL.
// Derived once per request and never mutated afterwards.
type URLFeatures struct {
	NormalizedURL      string
	Host               string
	TLD                string
	Scheme             Scheme
	Length             int
	SubdomainDepth     int
	IsIPLiteral        bool
	HasAtSymbol        bool
	HasSuspiciousChars bool
}
