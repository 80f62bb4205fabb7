package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talhabaig007/PhishStop/internal/analyzer"
	"github.com/talhabaig007/PhishStop/internal/blacklist"
	"github.com/talhabaig007/PhishStop/internal/model"
	"github.com/talhabaig007/PhishStop/internal/testutil"
)

type testServer struct {
	http    *httptest.Server
	server  *Server
	db      *testutil.TestDB
	matcher *blacklist.Matcher
}

func newTestServer(t *testing.T, cfg Config) *testServer {
	t.Helper()

	db := testutil.SetupTestDB(t)

	matcher := cfg.Matcher
	if matcher == nil {
		matcher = blacklist.New(db.Storage)
		matcher.SeedDefaults()
	}

	cfg.Store = db.Storage
	cfg.Matcher = matcher
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return serverBase }
	}

	s := New(cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return &testServer{http: ts, server: s, db: db, matcher: matcher}
}

func (ts *testServer) post(t *testing.T, path, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(ts.http.URL+path, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func (ts *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := http.Get(ts.http.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := ts.get(t, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "phishstop", body["service"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := ts.post(t, "/analyze", `{"url":"http://192.168.1.5/login"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body analyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.NotNil(t, body.IsPhishing)
	assert.True(t, *body.IsPhishing)
	assert.Equal(t, "http://192.168.1.5/login", body.URL)
	assert.Equal(t, 70, body.RiskScore)
	assert.Equal(t, 100, body.Confidence)
	assert.Equal(t, []string{"heuristic"}, body.DetectionMethods)
	assert.Equal(t, []string{"Uses IP address", "Not using HTTPS"}, body.Reasons)
}

func TestAnalyzeEndpointSuspiciousSerializesNull(t *testing.T) {
	ts := newTestServer(t, Config{})

	// 30 TLD + 20 plain HTTP lands in the suspicious band.
	resp := ts.post(t, "/analyze", `{"url":"http://paypal-secure.tk/login"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw bytes.Buffer
	_, err := raw.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), `"is_phishing":null`)

	var body analyzeResponse
	require.NoError(t, json.Unmarshal(raw.Bytes(), &body))
	assert.Nil(t, body.IsPhishing)
	assert.Equal(t, 50, body.RiskScore)
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	ts := newTestServer(t, Config{})

	t.Run("wrong method", func(t *testing.T) {
		resp := ts.get(t, "/analyze")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("invalid json", func(t *testing.T) {
		resp := ts.post(t, "/analyze", `{url: nope}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing url", func(t *testing.T) {
		resp := ts.post(t, "/analyze", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed url", func(t *testing.T) {
		resp := ts.post(t, "/analyze", `{"url":"not a url"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Invalid URL", body["error"])
	})
}

func TestStatisticsEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	ts.post(t, "/analyze", `{"url":"http://192.168.1.5/login"}`)
	ts.post(t, "/analyze", `{"url":"https://example.com/"}`)

	resp := ts.get(t, "/statistics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body statisticsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(2), body.TotalAnalyzed)
	assert.Equal(t, int64(1), body.PhishingDetected)
	assert.InDelta(t, 35.0, body.AvgRiskScore, 1e-9)
}

func TestBlacklistEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := ts.post(t, "/blacklist", `{"domain":"Evil.COM","reason":"confirmed_phishing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])

	// The matcher picks it up immediately.
	analyzed := ts.post(t, "/analyze", `{"url":"https://portal.evil.com/login"}`)
	var verdict analyzeResponse
	require.NoError(t, json.NewDecoder(analyzed.Body).Decode(&verdict))
	assert.Contains(t, verdict.DetectionMethods, "blacklist")

	// And it lands in storage.
	entries, err := ts.db.Storage.ListBlacklistDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "evil.com", entries[0].Domain)
	assert.Equal(t, "confirmed_phishing", entries[0].Reason)

	t.Run("missing domain", func(t *testing.T) {
		resp := ts.post(t, "/blacklist", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid domain", func(t *testing.T) {
		resp := ts.post(t, "/blacklist", `{"domain":"two words"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wrong method", func(t *testing.T) {
		resp := ts.get(t, "/blacklist")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Config{RequestsPerSec: 1, Burst: 1})

	first := ts.get(t, "/health")
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second := ts.get(t, "/health")
	require.Equal(t, http.StatusTooManyRequests, second.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
	assert.Equal(t, "Rate limit exceeded", body["error"])
}

// The extension-side remote client speaks this server's wire format.
func TestRemoteClientRoundTrip(t *testing.T) {
	ts := newTestServer(t, Config{})

	client := analyzer.NewHTTPClient(ts.http.URL, time.Second)

	v, err := client.Analyze(context.Background(), "http://192.168.1.5/login")
	require.NoError(t, err)

	assert.Equal(t, model.LabelPhishing, v.Label)
	assert.Equal(t, 70, v.RiskScore)
	assert.Equal(t, 100, v.Confidence)
	assert.True(t, v.HasMethod(model.MethodHeuristic))
	assert.True(t, v.HasMethod(model.MethodRemote), "the client tags remote verdicts")
	assert.True(t, strings.HasPrefix(v.URL, "http://192.168.1.5"))
}
