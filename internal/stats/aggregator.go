// Package stats aggregates completed verdicts into a bounded, ordered
// ledger with O(1) derived counters.
package stats

import (
	"sync"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// DefaultLedgerCapacity bounds the in-memory verdict ledger.
const DefaultLedgerCapacity = 1000

// Aggregator records every completed verdict. The ledger is a FIFO ring:
// once full, each append overwrites the oldest entry. The counters are
// all-time aggregates and are never decremented by eviction; the running
// average is maintained incrementally, never by rescanning the ledger.
type Aggregator struct {
	ledger   []model.Verdict
	head     int
	size     int
	total    int64
	phishing int64
	avg      float64
	mu       sync.Mutex
}

// New creates an aggregator with the given ledger capacity. Non-positive
// capacities select the default.
func New(capacity int) *Aggregator {
	if capacity <= 0 {
		capacity = DefaultLedgerCapacity
	}
	return &Aggregator{ledger: make([]model.Verdict, capacity)}
}

// Record appends a verdict to the ledger, evicting the oldest entry once
// capacity is exceeded, and updates the counters.
func (a *Aggregator) Record(v model.Verdict) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tail := (a.head + a.size) % len(a.ledger)
	a.ledger[tail] = v
	if a.size == len(a.ledger) {
		a.head = (a.head + 1) % len(a.ledger)
	} else {
		a.size++
	}

	a.total++
	if v.Label == model.LabelPhishing {
		a.phishing++
	}
	a.avg += (float64(v.RiskScore) - a.avg) / float64(a.total)
}

// Snapshot returns the three derived counters. Read-only, O(1).
func (a *Aggregator) Snapshot() model.StatsSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	return model.StatsSnapshot{
		TotalAnalyzed:    a.total,
		PhishingDetected: a.phishing,
		AvgRiskScore:     a.avg,
	}
}

// Recent returns up to n ledger entries, newest first. Non-positive n
// returns the whole ledger.
func (a *Aggregator) Recent(n int) []model.Verdict {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n <= 0 || n > a.size {
		n = a.size
	}

	out := make([]model.Verdict, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, a.ledger[(a.head+a.size-1-i)%len(a.ledger)])
	}
	return out
}

// Size reports the number of entries currently held in the ledger.
func (a *Aggregator) Size() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.size
}

// Seed primes the counters from persisted aggregates on cold start,
// replacing any current counter state. The ledger itself is untouched;
// subsequent records continue the incremental mean from the seeded total.
func (a *Aggregator) Seed(total, phishing int64, avg float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total = total
	a.phishing = phishing
	a.avg = avg
}
