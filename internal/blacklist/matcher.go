// Package blacklist maintains the set of known-bad domains and answers
// host lookups, matching subdomains of every listed entry.
package blacklist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// defaultDomains ships with the service: URL shorteners that hide the
// real destination plus the demo phishing hosts.
var defaultDomains = []string{
	"bit.ly",
	"tinyurl.com",
	"t.co",
	"goo.gl",
	"ow.ly",
	"phishing-site.com",
	"fake-login.net",
	"scam-bank.org",
}

// Store persists blacklist mutations. Implemented by storage.SQLiteStorage;
// a nil store keeps the matcher purely in memory.
type Store interface {
	AddBlacklistDomain(ctx context.Context, domain, reason string) error
	RemoveBlacklistDomain(ctx context.Context, domain string) error
}

// Matcher answers whether a host is blacklisted, directly or as a
// subdomain of a listed entry.
type Matcher struct {
	store   Store
	domains map[string]struct{}
	mu      sync.RWMutex
}

// New creates an empty matcher. Mutations are mirrored to store when one
// is provided.
func New(store Store) *Matcher {
	return &Matcher{
		store:   store,
		domains: make(map[string]struct{}),
	}
}

// SeedDefaults loads the built-in domain set (memory only).
func (m *Matcher) SeedDefaults() {
	m.Load(defaultDomains)
}

// Load bulk-adds domains without touching the store. Used at startup to
// replay persisted entries.
func (m *Matcher) Load(domains []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range domains {
		d, err := normalizeDomain(d)
		if err != nil {
			continue
		}
		m.domains[d] = struct{}{}
	}
}

// Add records the domain in memory and in the store. Adding an existing
// domain is a no-op.
func (m *Matcher) Add(ctx context.Context, domain, reason string) error {
	d, err := normalizeDomain(domain)
	if err != nil {
		return err
	}

	if m.store != nil {
		if err := m.store.AddBlacklistDomain(ctx, d, reason); err != nil {
			return fmt.Errorf("failed to persist blacklist domain: %w", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.domains[d] = struct{}{}

	return nil
}

// Remove drops the domain from memory and the store.
func (m *Matcher) Remove(ctx context.Context, domain string) error {
	d, err := normalizeDomain(domain)
	if err != nil {
		return err
	}

	if m.store != nil {
		if err := m.store.RemoveBlacklistDomain(ctx, d); err != nil {
			return fmt.Errorf("failed to remove blacklist domain: %w", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.domains, d)

	return nil
}

// Match reports whether host or any parent suffix of it is blacklisted,
// returning the entry that matched. "login.bit.ly" matches the entry
// "bit.ly".
func (m *Matcher) Match(host string) (string, bool) {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" {
		return "", false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for candidate := host; candidate != ""; {
		if _, ok := m.domains[candidate]; ok {
			return candidate, true
		}

		i := strings.Index(candidate, ".")
		if i < 0 {
			break
		}
		candidate = candidate[i+1:]
	}

	return "", false
}

// Contains reports whether the exact domain is listed.
func (m *Matcher) Contains(domain string) bool {
	d, err := normalizeDomain(domain)
	if err != nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.domains[d]
	return ok
}

// Domains returns the listed domains in sorted order.
func (m *Matcher) Domains() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.domains))
	for d := range m.domains {
		out = append(out, d)
	}
	sort.Strings(out)

	return out
}

// Len returns the number of listed domains.
func (m *Matcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.domains)
}

func normalizeDomain(domain string) (string, error) {
	d := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if d == "" || strings.ContainsAny(d, "/ ") {
		return "", fmt.Errorf("invalid blacklist domain %q", domain)
	}
	return d, nil
}
