// Package report submits user corrections (false positives, confirmed
// phishing sites) to the analysis service's blacklist intake.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talhabaig007/PhishStop/internal/common"
	"github.com/talhabaig007/PhishStop/internal/feature"
	"github.com/talhabaig007/PhishStop/internal/model"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

type reportRequest struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// Client delivers reports to the analysis service. Delivery failures are
// surfaced to the caller and marked retryable; the client itself never
// retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
	newID      func() string
}

// NewClient creates a report client for the analysis service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Submit validates the report, derives the offending domain from the URL,
// and posts it to the service. The returned Report is the record that was
// delivered.
func (c *Client) Submit(ctx context.Context, rawURL string, reason model.ReportReason, description string) (model.Report, error) {
	if !reason.Valid() {
		return model.Report{}, common.NewUserError(
			fmt.Sprintf("Reason must be %q or %q.", model.ReasonFalsePositive, model.ReasonConfirmedPhishing),
			fmt.Errorf("unknown report reason %q", reason),
		)
	}

	features, err := feature.Extract(rawURL)
	if err != nil {
		return model.Report{}, common.NewUserError(
			"The reported URL could not be parsed. Include the scheme, e.g. https://example.com.",
			err,
		)
	}

	r := model.Report{
		SubmittedAt: c.now(),
		ID:          c.newID(),
		URL:         features.NormalizedURL,
		Domain:      features.Host,
		Description: description,
		Reason:      reason,
	}

	if err := c.deliver(ctx, r); err != nil {
		return model.Report{}, err
	}

	return r, nil
}

func (c *Client) deliver(ctx context.Context, r model.Report) error {
	body, err := json.Marshal(reportRequest{Domain: r.Domain, Reason: string(r.Reason)})
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/blacklist", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return deliveryError(fmt.Errorf("%w: %v", common.ErrReportDelivery, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return deliveryError(fmt.Errorf("%w: unexpected status %d", common.ErrReportDelivery, resp.StatusCode))
	}

	return nil
}

// deliveryError marks the failure retryable so callers may re-invoke
// Submit, and attaches the message shown to the user.
func deliveryError(cause error) error {
	return common.NewUserError(
		"Could not deliver the report. Check that the analysis service is reachable and try again.",
		&common.RetryableError{Err: cause, Retryable: true},
	)
}
