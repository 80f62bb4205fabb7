package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talhabaig007/PhishStop/internal/model"
)

func verdict(url string, score int, label model.Label) model.Verdict {
	return model.Verdict{
		URL:       url,
		Label:     label,
		RiskScore: score,
	}
}

func TestAggregatorCounters(t *testing.T) {
	agg := New(10)

	agg.Record(verdict("a", 90, model.LabelPhishing))
	agg.Record(verdict("b", 10, model.LabelSafe))
	agg.Record(verdict("c", 50, model.LabelSuspicious))

	snap := agg.Snapshot()
	assert.Equal(t, int64(3), snap.TotalAnalyzed)
	assert.Equal(t, int64(1), snap.PhishingDetected)
	assert.InDelta(t, 50.0, snap.AvgRiskScore, 1e-9)
}

func TestAggregatorIncrementalMean(t *testing.T) {
	agg := New(10)

	scores := []int{13, 87, 42, 99, 5, 61}
	sum := 0
	for i, s := range scores {
		agg.Record(verdict(fmt.Sprintf("u%d", i), s, model.LabelSafe))
		sum += s
	}

	snap := agg.Snapshot()
	assert.InDelta(t, float64(sum)/float64(len(scores)), snap.AvgRiskScore, 1e-9)
}

func TestAggregatorEvictionKeepsCounters(t *testing.T) {
	agg := New(3)

	for i := 1; i <= 5; i++ {
		agg.Record(verdict(fmt.Sprintf("u%d", i), i*10, model.LabelPhishing))
	}

	// The ledger holds only the newest three, but the counters cover all
	// five recordings.
	assert.Equal(t, 3, agg.Size())

	snap := agg.Snapshot()
	assert.Equal(t, int64(5), snap.TotalAnalyzed)
	assert.Equal(t, int64(5), snap.PhishingDetected)
	assert.InDelta(t, 30.0, snap.AvgRiskScore, 1e-9)
}

func TestAggregatorRecent(t *testing.T) {
	agg := New(3)

	for i := 1; i <= 5; i++ {
		agg.Record(verdict(fmt.Sprintf("u%d", i), i, model.LabelSafe))
	}

	t.Run("newest first", func(t *testing.T) {
		recent := agg.Recent(0)
		require.Len(t, recent, 3)
		assert.Equal(t, "u5", recent[0].URL)
		assert.Equal(t, "u4", recent[1].URL)
		assert.Equal(t, "u3", recent[2].URL)
	})

	t.Run("limited", func(t *testing.T) {
		recent := agg.Recent(2)
		require.Len(t, recent, 2)
		assert.Equal(t, "u5", recent[0].URL)
		assert.Equal(t, "u4", recent[1].URL)
	})

	t.Run("limit beyond size", func(t *testing.T) {
		assert.Len(t, agg.Recent(100), 3)
	})
}

func TestAggregatorEmpty(t *testing.T) {
	agg := New(10)

	snap := agg.Snapshot()
	assert.Equal(t, int64(0), snap.TotalAnalyzed)
	assert.Equal(t, int64(0), snap.PhishingDetected)
	assert.Zero(t, snap.AvgRiskScore)
	assert.Empty(t, agg.Recent(0))
}

func TestAggregatorSeed(t *testing.T) {
	agg := New(10)
	agg.Seed(10, 2, 50.0)

	snap := agg.Snapshot()
	assert.Equal(t, int64(10), snap.TotalAnalyzed)
	assert.Equal(t, int64(2), snap.PhishingDetected)
	assert.InDelta(t, 50.0, snap.AvgRiskScore, 1e-9)

	// The incremental mean continues from the seeded population size.
	agg.Record(verdict("new", 100, model.LabelPhishing))

	snap = agg.Snapshot()
	assert.Equal(t, int64(11), snap.TotalAnalyzed)
	assert.Equal(t, int64(3), snap.PhishingDetected)
	assert.InDelta(t, 50.0+(100.0-50.0)/11.0, snap.AvgRiskScore, 1e-9)
}
