package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/talhabaig007/PhishStop/internal/common"
	"github.com/talhabaig007/PhishStop/internal/model"
)

// remoteRequest and remoteResponse mirror the analysis service wire
// format. A null is_phishing denotes a suspicious verdict.
type remoteRequest struct {
	URL string `json:"url"`
}

type remoteResponse struct {
	IsPhishing       *bool    `json:"is_phishing"`
	DetectionMethods []string `json:"detection_methods"`
	Reasons          []string `json:"reasons"`
	RiskScore        int      `json:"risk_score"`
	Confidence       int      `json:"confidence"`
}

// HTTPClient is the production RemoteClient backed by the external
// analysis service's POST /analyze endpoint.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPClient creates a client for the analysis service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	return &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Analyze posts the URL for authoritative scoring. Every failure mode
// (dial, timeout, non-2xx, undecodable body) wraps ErrRemoteUnavailable so
// the caller can fall back without inspecting the cause.
func (c *HTTPClient) Analyze(ctx context.Context, rawURL string) (model.Verdict, error) {
	body, err := json.Marshal(remoteRequest{URL: rawURL})
	if err != nil {
		return model.Verdict{}, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return model.Verdict{}, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return model.Verdict{}, fmt.Errorf("%w: unexpected status %d", common.ErrRemoteUnavailable, resp.StatusCode)
	}

	var decoded remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return model.Verdict{}, fmt.Errorf("%w: undecodable response: %v", common.ErrRemoteUnavailable, err)
	}

	return decoded.verdict(rawURL), nil
}

// verdict maps the wire response to a domain verdict. The remote method
// tag is always present on success, whatever the service reported.
func (r remoteResponse) verdict(url string) model.Verdict {
	score := r.RiskScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	methods := make([]model.DetectionMethod, 0, len(r.DetectionMethods)+1)
	for _, m := range r.DetectionMethods {
		methods = append(methods, model.DetectionMethod(m))
	}

	v := model.Verdict{
		URL:        url,
		Label:      model.LabelFromTriState(r.IsPhishing),
		Methods:    methods,
		Reasons:    r.Reasons,
		RiskScore:  score,
		Confidence: r.Confidence,
	}

	if !v.HasMethod(model.MethodRemote) {
		v.Methods = append(v.Methods, model.MethodRemote)
	}

	return v
}
