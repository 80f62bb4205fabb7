package analyzer

import (
	"context"
	"sync"

	"github.com/talhabaig007/PhishStop/internal/common"
	"github.com/talhabaig007/PhishStop/internal/model"
)

// MockRemoteClient is a test implementation of the RemoteClient interface.
// It records every call for verification and can be gated to hold calls
// in flight.
type MockRemoteClient struct {
	verdicts map[string]model.Verdict
	err      error
	gate     chan struct{}
	calls    []string
	mu       sync.Mutex
}

// NewMockRemoteClient creates a mock client with no configured verdicts.
// Unconfigured URLs fail with ErrRemoteUnavailable.
func NewMockRemoteClient() *MockRemoteClient {
	return &MockRemoteClient{
		verdicts: make(map[string]model.Verdict),
	}
}

// SetVerdict fixes the verdict returned for a URL.
func (m *MockRemoteClient) SetVerdict(url string, v model.Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verdicts[url] = v
}

// SetError forces every call to fail with err.
func (m *MockRemoteClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Gate makes subsequent calls block until Release is invoked.
func (m *MockRemoteClient) Gate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = make(chan struct{})
}

// Release unblocks all gated calls.
func (m *MockRemoteClient) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate != nil {
		close(m.gate)
		m.gate = nil
	}
}

// Analyze returns the configured verdict or error for the URL.
func (m *MockRemoteClient) Analyze(ctx context.Context, url string) (model.Verdict, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	gate := m.gate
	err := m.err
	v, ok := m.verdicts[url]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return model.Verdict{}, ctx.Err()
		}
	}

	if err != nil {
		return model.Verdict{}, err
	}
	if !ok {
		return model.Verdict{}, common.ErrRemoteUnavailable
	}

	return v, nil
}

// CallCount returns the number of times Analyze was called.
func (m *MockRemoteClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of all recorded call URLs.
func (m *MockRemoteClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Reset clears all recorded calls.
func (m *MockRemoteClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
