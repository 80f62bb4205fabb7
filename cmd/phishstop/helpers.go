package main

import (
	"context"
	"fmt"

	"github.com/talhabaig007/PhishStop/internal/blacklist"
	"github.com/talhabaig007/PhishStop/internal/config"
	"github.com/talhabaig007/PhishStop/internal/storage"
)

// initStorage opens the sqlite database at the configured path and brings
// the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadMatcher builds a blacklist matcher seeded with the built-in domains
// plus everything persisted in storage.
func loadMatcher(ctx context.Context, store *storage.SQLiteStorage) (*blacklist.Matcher, error) {
	matcher := blacklist.New(store)
	matcher.SeedDefaults()

	entries, err := store.ListBlacklistDomains(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blacklist: %w", err)
	}

	domains := make([]string, len(entries))
	for i, e := range entries {
		domains[i] = e.Domain
	}
	matcher.Load(domains)

	return matcher, nil
}
