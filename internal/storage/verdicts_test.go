package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talhabaig007/PhishStop/internal/common"
	"github.com/talhabaig007/PhishStop/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)

	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

var testBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleRecord(url string, at time.Time) model.AnalysisRecord {
	return model.AnalysisRecord{
		AnalyzedAt: at,
		URL:        url,
		Host:       "paypal-secure.tk",
		Label:      model.LabelSafe,
		Methods:    []model.DetectionMethod{model.MethodHeuristic},
		Reasons:    []string{"Suspicious TLD"},
		RiskScore:  30,
		Confidence: 45,
	}
}

// assertRecordEqual compares records with timezone-insensitive timestamps.
func assertRecordEqual(t *testing.T, want, got model.AnalysisRecord) {
	t.Helper()

	assert.True(t, got.AnalyzedAt.Equal(want.AnalyzedAt),
		"analyzed_at: want %v, got %v", want.AnalyzedAt, got.AnalyzedAt)
	got.AnalyzedAt = want.AnalyzedAt
	assert.Equal(t, want, got)
}

func TestSaveAndGetVerdict(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	rec := model.AnalysisRecord{
		AnalyzedAt: testBase,
		URL:        "http://192.168.1.5/login",
		Host:       "192.168.1.5",
		Label:      model.LabelPhishing,
		Methods:    []model.DetectionMethod{model.MethodHeuristic, model.MethodBlacklist},
		Reasons:    []string{"Uses IP address", "Not using HTTPS"},
		RiskScore:  70,
		Confidence: 100,
	}

	require.NoError(t, store.SaveVerdict(ctx, rec))

	got, err := store.GetVerdict(ctx, rec.URL)
	require.NoError(t, err)
	assertRecordEqual(t, rec, *got)
}

func TestSaveVerdictUpsert(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := sampleRecord("https://paypal-secure.tk/login", testBase)
	require.NoError(t, store.SaveVerdict(ctx, first))

	second := first
	second.AnalyzedAt = testBase.Add(time.Hour)
	second.RiskScore = 50
	second.Confidence = 75
	second.Label = model.LabelSuspicious
	require.NoError(t, store.SaveVerdict(ctx, second))

	got, err := store.GetVerdict(ctx, first.URL)
	require.NoError(t, err)
	assertRecordEqual(t, second, *got)

	snapshot, err := store.ReplayStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot.TotalAnalyzed, "re-analysis replaces the row, never duplicates it")
}

func TestGetVerdictNotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetVerdict(context.Background(), "https://never-seen.example/")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveVerdictValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		mutate func(*model.AnalysisRecord)
		name   string
	}{
		{
			name:   "missing url",
			mutate: func(r *model.AnalysisRecord) { r.URL = "" },
		},
		{
			name:   "zero analysis time",
			mutate: func(r *model.AnalysisRecord) { r.AnalyzedAt = time.Time{} },
		},
		{
			name:   "unknown label",
			mutate: func(r *model.AnalysisRecord) { r.Label = "sketchy" },
		},
		{
			name:   "score above range",
			mutate: func(r *model.AnalysisRecord) { r.RiskScore = 101 },
		},
		{
			name:   "negative score",
			mutate: func(r *model.AnalysisRecord) { r.RiskScore = -1 },
		},
		{
			name:   "confidence above range",
			mutate: func(r *model.AnalysisRecord) { r.Confidence = 150 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord("https://example.com/", testBase)
			tt.mutate(&rec)

			err := store.SaveVerdict(ctx, rec)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestVerdictEmptyCollectionsRoundtrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	rec := model.AnalysisRecord{
		AnalyzedAt: testBase,
		URL:        "https://example.com",
		Host:       "example.com",
		Label:      model.LabelSafe,
	}

	require.NoError(t, store.SaveVerdict(ctx, rec))

	got, err := store.GetVerdict(ctx, rec.URL)
	require.NoError(t, err)
	assert.Nil(t, got.Methods)
	assert.Nil(t, got.Reasons)
}

func TestRecentVerdicts(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	urls := []string{"https://u1.example", "https://u2.example", "https://u3.example", "https://u4.example", "https://u5.example"}
	for i, u := range urls {
		require.NoError(t, store.SaveVerdict(ctx, sampleRecord(u, testBase.Add(time.Duration(i)*time.Minute))))
	}

	t.Run("newest first, limited", func(t *testing.T) {
		records, err := store.RecentVerdicts(ctx, 3)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "https://u5.example", records[0].URL)
		assert.Equal(t, "https://u4.example", records[1].URL)
		assert.Equal(t, "https://u3.example", records[2].URL)
	})

	t.Run("limit beyond row count", func(t *testing.T) {
		records, err := store.RecentVerdicts(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, records, len(urls))
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := store.RecentVerdicts(ctx, 0)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	})
}

func TestReplayStats(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	t.Run("empty ledger", func(t *testing.T) {
		snapshot, err := store.ReplayStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.StatsSnapshot{}, snapshot)
	})

	t.Run("aggregates the ledger", func(t *testing.T) {
		seed := []struct {
			url   string
			label model.Label
			score int
		}{
			{"https://a.example", model.LabelPhishing, 80},
			{"https://b.example", model.LabelPhishing, 90},
			{"https://c.example", model.LabelSafe, 20},
			{"https://d.example", model.LabelSuspicious, 10},
		}

		for i, s := range seed {
			rec := sampleRecord(s.url, testBase.Add(time.Duration(i)*time.Minute))
			rec.Label = s.label
			rec.RiskScore = s.score
			require.NoError(t, store.SaveVerdict(ctx, rec))
		}

		snapshot, err := store.ReplayStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), snapshot.TotalAnalyzed)
		assert.Equal(t, int64(2), snapshot.PhishingDetected)
		assert.InDelta(t, 50.0, snapshot.AvgRiskScore, 1e-9)
	})
}
