package heuristic

import "github.com/talhabaig007/PhishStop/internal/model"

// TLDs with effectively free registration, heavily abused by phishing kits.
var suspiciousTLDs = map[string]bool{
	"tk": true,
	"ml": true,
	"ga": true,
	"cf": true,
	"gq": true,
}

// DefaultRules returns the built-in URL risk signals in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "Long URL",
			Reason: "Very long URL",
			Delta:  10,
			Match: func(f model.URLFeatures) bool {
				return f.Length > 100
			},
		},
		{
			Name:   "IP-literal host",
			Reason: "Uses IP address",
			Delta:  50,
			Hard:   true,
			Match: func(f model.URLFeatures) bool {
				return f.IsIPLiteral
			},
		},
		{
			Name:   "Suspicious TLD",
			Reason: "Suspicious TLD",
			Delta:  30,
			Match: func(f model.URLFeatures) bool {
				return suspiciousTLDs[f.TLD]
			},
		},
		{
			Name:   "Not HTTPS",
			Reason: "Not using HTTPS",
			Delta:  20,
			Match: func(f model.URLFeatures) bool {
				return f.Scheme != model.SchemeHTTPS
			},
		},
		{
			Name:   "Deep subdomains",
			Reason: "Excessive subdomains",
			Delta:  15,
			Match: func(f model.URLFeatures) bool {
				return f.SubdomainDepth > 2
			},
		},
	}
}
