package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateFreshDatabase(t *testing.T) {
	store := newTestStorage(t)

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	for _, table := range []string{"url_analysis", "blacklist"} {
		var count int
		err := store.db.QueryRow(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type='table' AND name=?
		`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s must exist", table)
	}

	for _, index := range []string{"idx_url_analysis_host", "idx_url_analysis_analyzed_at", "idx_url_analysis_label"} {
		var count int
		err := store.db.QueryRow(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type='index' AND name=?
		`, index).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "index %s must exist", index)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)

	// newTestStorage already migrated once.
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestSchemaVersion(t *testing.T) {
	store := newTestStorage(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}
