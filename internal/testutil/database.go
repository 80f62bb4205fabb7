// Package testutil provides shared helpers for tests that need a real
// database: in-memory storage setup, migrations, and ledger fixtures.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/talhabaig007/PhishStop/internal/model"
	"github.com/talhabaig007/PhishStop/internal/storage"
)

// TestDB wraps an in-memory, fully migrated storage instance.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates an in-memory database, runs all migrations, and
// registers cleanup with the test.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedRecords persists the given analysis records, failing the test on error.
func (db *TestDB) SeedRecords(records ...model.AnalysisRecord) {
	db.t.Helper()

	ctx := context.Background()
	for _, rec := range records {
		if err := db.Storage.SaveVerdict(ctx, rec); err != nil {
			db.t.Fatalf("failed to seed record for %s: %v", rec.URL, err)
		}
	}
}

// SeedBlacklist persists the given blacklist domains.
func (db *TestDB) SeedBlacklist(domains ...string) {
	db.t.Helper()

	ctx := context.Background()
	for _, d := range domains {
		if err := db.Storage.AddBlacklistDomain(ctx, d, "test seed"); err != nil {
			db.t.Fatalf("failed to seed blacklist domain %s: %v", d, err)
		}
	}
}

// RecordOption adjusts a fixture record.
type RecordOption func(*model.AnalysisRecord)

// WithLabel sets the record's label.
func WithLabel(label model.Label) RecordOption {
	return func(rec *model.AnalysisRecord) {
		rec.Label = label
	}
}

// WithScore sets the risk score and confidence.
func WithScore(score, confidence int) RecordOption {
	return func(rec *model.AnalysisRecord) {
		rec.RiskScore = score
		rec.Confidence = confidence
	}
}

// WithAnalyzedAt sets the analysis timestamp.
func WithAnalyzedAt(at time.Time) RecordOption {
	return func(rec *model.AnalysisRecord) {
		rec.AnalyzedAt = at
	}
}

// WithReasons sets the record's reasons.
func WithReasons(reasons ...string) RecordOption {
	return func(rec *model.AnalysisRecord) {
		rec.Reasons = reasons
	}
}

// WithMethods sets the record's detection methods.
func WithMethods(methods ...model.DetectionMethod) RecordOption {
	return func(rec *model.AnalysisRecord) {
		rec.Methods = methods
	}
}

// Record builds a plausible safe-by-default analysis record for tests.
func Record(url, host string, opts ...RecordOption) model.AnalysisRecord {
	rec := model.AnalysisRecord{
		AnalyzedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		URL:        url,
		Host:       host,
		Label:      model.LabelSafe,
		Methods:    []model.DetectionMethod{model.MethodHeuristic},
	}

	for _, opt := range opts {
		opt(&rec)
	}

	return rec
}
