// Package content inspects page markup for phishing signals the URL alone
// cannot reveal: credential-harvesting forms, pressure language, and pages
// assembled almost entirely from foreign resources.
package content

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds the page fetch.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much markup is read from a page.
const maxBodyBytes = 1 << 20

// Signal weights.
const (
	sensitiveFormScore    = 40
	suspiciousPhraseScore = 25
	externalResourceScore = 20

	// externalResourceLimit is the count above which a page is considered
	// assembled from foreign resources.
	externalResourceLimit = 10
)

// suspiciousPhrases is the pressure language scored wherever it appears
// in the page text.
var suspiciousPhrases = []string{
	"verify your identity",
	"confirm your account",
	"update your information",
	"suspended account",
	"unauthorized access",
	"security breach",
}

// sensitiveFieldMarkers flag form inputs that collect credentials or
// financial identifiers.
var sensitiveFieldMarkers = []string{
	"password", "passwd", "pwd",
	"card", "cvv", "cvc",
	"ssn", "social",
}

// Analyzer fetches a page and scores the phishing signals in its markup.
// Content analysis is additive evidence: every failure degrades to a zero
// score and never blocks the verdict.
type Analyzer struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAnalyzer creates a content analyzer with the given fetch timeout.
// Redirects are never followed; the page is scored where it answers.
func NewAnalyzer(timeout time.Duration, logger *slog.Logger) *Analyzer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Analyzer{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// Analyze fetches the page and returns the content score with its reasons.
// Fetch and parse failures return (0, nil).
func (a *Analyzer) Analyze(ctx context.Context, pageURL string) (int, []string) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		a.logger.Debug("Content analysis skipped", "url", pageURL, "error", err)
		return 0, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		a.logger.Debug("Content analysis skipped", "url", pageURL, "error", err)
		return 0, nil
	}
	req.Header.Set("User-Agent", "PhishStop/1.0")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Debug("Content analysis skipped", "url", pageURL, "error", err)
		return 0, nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		a.logger.Debug("Content analysis skipped", "url", pageURL, "status", resp.StatusCode)
		return 0, nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		a.logger.Debug("Content analysis skipped", "url", pageURL, "error", err)
		return 0, nil
	}

	return scoreDocument(doc, strings.ToLower(parsed.Hostname()))
}

func scoreDocument(doc *goquery.Document, pageHost string) (int, []string) {
	score := 0
	var reasons []string

	if hasSensitiveForm(doc) {
		score += sensitiveFormScore
		reasons = append(reasons, "Sensitive form fields detected")
	}

	text := strings.ToLower(doc.Text())
	for _, phrase := range suspiciousPhrases {
		if strings.Contains(text, phrase) {
			score += suspiciousPhraseScore
			reasons = append(reasons, "Suspicious content: "+phrase)
		}
	}

	if countExternalResources(doc, pageHost) > externalResourceLimit {
		score += externalResourceScore
		reasons = append(reasons, "Excessive external resources")
	}

	return score, reasons
}

// hasSensitiveForm reports whether any form collects a password, card, or
// social security style field.
func hasSensitiveForm(doc *goquery.Document) bool {
	found := false

	doc.Find("form input").Each(func(_ int, input *goquery.Selection) {
		if found {
			return
		}

		if inputType, _ := input.Attr("type"); strings.EqualFold(inputType, "password") {
			found = true
			return
		}

		name, _ := input.Attr("name")
		id, _ := input.Attr("id")
		placeholder, _ := input.Attr("placeholder")

		fieldText := strings.ToLower(name + " " + id + " " + placeholder)
		for _, marker := range sensitiveFieldMarkers {
			if strings.Contains(fieldText, marker) {
				found = true
				return
			}
		}
	})

	return found
}

// countExternalResources counts src/href references that resolve to an
// absolute URL on a different host than the page.
func countExternalResources(doc *goquery.Document, pageHost string) int {
	count := 0

	doc.Find("script[src], img[src], iframe[src], source[src], link[href]").Each(func(_ int, el *goquery.Selection) {
		ref, ok := el.Attr("src")
		if !ok {
			ref, ok = el.Attr("href")
		}
		if !ok {
			return
		}

		u, err := url.Parse(strings.TrimSpace(ref))
		if err != nil || !u.IsAbs() {
			return
		}

		if host := strings.ToLower(u.Hostname()); host != "" && host != pageHost {
			count++
		}
	})

	return count
}
