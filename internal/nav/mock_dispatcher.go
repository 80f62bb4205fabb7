package nav

import (
	"context"
	"sync"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// Dispatched action kinds recorded by MockDispatcher.
const (
	DispatchBlock             = "block"
	DispatchWarning           = "warning"
	DispatchSuspiciousWarning = "suspicious_warning"
)

// DispatchedAction records one dispatcher invocation.
type DispatchedAction struct {
	Kind    string
	Verdict model.Verdict
	TabID   int
}

// MockDispatcher is a test implementation of the ActionDispatcher
// interface. It records every dispatched action for verification.
type MockDispatcher struct {
	err   error
	calls []DispatchedAction
	mu    sync.Mutex
}

// NewMockDispatcher creates a mock dispatcher.
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

// SetError forces every dispatch to fail with err.
func (m *MockDispatcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Block records a block action.
func (m *MockDispatcher) Block(_ context.Context, tabID int, v model.Verdict) error {
	return m.record(DispatchBlock, tabID, v)
}

// ShowWarning records a phishing warning action.
func (m *MockDispatcher) ShowWarning(_ context.Context, tabID int, v model.Verdict) error {
	return m.record(DispatchWarning, tabID, v)
}

// ShowSuspiciousWarning records a suspicious warning action.
func (m *MockDispatcher) ShowSuspiciousWarning(_ context.Context, tabID int, v model.Verdict) error {
	return m.record(DispatchSuspiciousWarning, tabID, v)
}

func (m *MockDispatcher) record(kind string, tabID int, v model.Verdict) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, DispatchedAction{
		Kind:    kind,
		Verdict: v,
		TabID:   tabID,
	})
	return m.err
}

// Calls returns a copy of all recorded actions.
func (m *MockDispatcher) Calls() []DispatchedAction {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]DispatchedAction, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of dispatched actions.
func (m *MockDispatcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears all recorded actions.
func (m *MockDispatcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
