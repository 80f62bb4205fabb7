// Package feature extracts structural scoring features from raw URLs.
package feature

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/talhabaig007/PhishStop/internal/common"
	"github.com/talhabaig007/PhishStop/internal/model"
	"golang.org/x/net/publicsuffix"
)

// Character runs commonly used to pad look-alike hostnames.
var suspiciousHostRuns = regexp.MustCompile(`[-_]{2,}`)

// Extract parses a raw URL into its scoring feature set. It is a pure
// function: no I/O, no side effects, and it never panics on hostile input.
// Returns ErrMalformedURL when the input cannot be parsed into scheme+host.
func Extract(raw string) (model.URLFeatures, error) {
	u, err := parse(raw)
	if err != nil {
		return model.URLFeatures{}, err
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	ip := net.ParseIP(host)

	f := model.URLFeatures{
		NormalizedURL:      normalize(u),
		Host:               host,
		Scheme:             schemeOf(u),
		Length:             len(raw),
		IsIPLiteral:        ip != nil,
		HasAtSymbol:        strings.Contains(raw, "@"),
		HasSuspiciousChars: suspiciousHostRuns.MatchString(host) || strings.Contains(rawAuthority(raw), "%"),
	}

	// TLD and subdomain depth are meaningless for IP hosts.
	if ip == nil {
		f.TLD, _ = publicsuffix.PublicSuffix(host)
		f.SubdomainDepth = subdomainDepth(host)
	}

	return f, nil
}

// NormalizeURL reduces a raw URL to its cache identity: lowercased scheme
// and host, fragment and default port stripped, trailing slash trimmed,
// query preserved, userinfo dropped.
func NormalizeURL(raw string) (string, error) {
	u, err := parse(raw)
	if err != nil {
		return "", err
	}
	return normalize(u), nil
}

func parse(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host in %q", common.ErrMalformedURL, raw)
	}
	return u, nil
}

func normalize(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)

	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}

	path := strings.TrimSuffix(u.EscapedPath(), "/")

	normalized := scheme + "://" + host + path
	if u.RawQuery != "" {
		normalized += "?" + u.RawQuery
	}

	return normalized
}

func schemeOf(u *url.URL) model.Scheme {
	switch strings.ToLower(u.Scheme) {
	case "http":
		return model.SchemeHTTP
	case "https":
		return model.SchemeHTTPS
	default:
		return model.SchemeOther
	}
}

// subdomainDepth counts host labels beyond registrable-domain length:
// labels minus two, floored at zero.
func subdomainDepth(host string) int {
	depth := strings.Count(host, ".") - 1
	if depth < 0 {
		return 0
	}
	return depth
}

// rawAuthority returns the authority portion of the URL as written,
// before any percent-decoding url.Parse applies to the host.
func rawAuthority(raw string) string {
	rest := raw
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	return rest
}
