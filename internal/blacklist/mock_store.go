package blacklist

import (
	"context"
	"sync"
)

// MockEntry records a single mutation seen by MockStore.
type MockEntry struct {
	Domain string
	Reason string
}

// MockStore is a Store test double that records mutations in memory.
type MockStore struct {
	addErr    error
	removeErr error
	added     []MockEntry
	removed   []string
	mu        sync.Mutex
}

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// SetAddError makes subsequent AddBlacklistDomain calls fail.
func (s *MockStore) SetAddError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addErr = err
}

// SetRemoveError makes subsequent RemoveBlacklistDomain calls fail.
func (s *MockStore) SetRemoveError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeErr = err
}

// AddBlacklistDomain records the addition.
func (s *MockStore) AddBlacklistDomain(_ context.Context, domain, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, MockEntry{Domain: domain, Reason: reason})
	return nil
}

// RemoveBlacklistDomain records the removal.
func (s *MockStore) RemoveBlacklistDomain(_ context.Context, domain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, domain)
	return nil
}

// Added returns the recorded additions.
func (s *MockStore) Added() []MockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]MockEntry, len(s.added))
	copy(out, s.added)
	return out
}

// Removed returns the recorded removals.
func (s *MockStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.removed))
	copy(out, s.removed)
	return out
}

// Reset clears all recorded mutations.
func (s *MockStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.added = nil
	s.removed = nil
	s.addErr = nil
	s.removeErr = nil
}
