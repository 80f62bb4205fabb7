package storage

import (
	"context"
	"fmt"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// AddBlacklistDomain inserts a blacklist entry, refreshing the reason when
// the domain is already listed.
func (s *SQLiteStorage) AddBlacklistDomain(ctx context.Context, domain, reason string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(domain, "domain"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blacklist (domain, reason)
		VALUES (?, ?)
		ON CONFLICT(domain) DO UPDATE SET reason = excluded.reason
	`, domain, reason)

	if err != nil {
		return fmt.Errorf("failed to add blacklist domain: %w", err)
	}

	return nil
}

// RemoveBlacklistDomain deletes the entry. Removing an unlisted domain is
// a no-op.
func (s *SQLiteStorage) RemoveBlacklistDomain(ctx context.Context, domain string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(domain, "domain"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM blacklist WHERE domain = ?`, domain); err != nil {
		return fmt.Errorf("failed to remove blacklist domain: %w", err)
	}

	return nil
}

// ListBlacklistDomains returns every entry ordered by domain.
func (s *SQLiteStorage) ListBlacklistDomains(ctx context.Context) ([]model.BlacklistEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, reason, added_at
		FROM blacklist
		ORDER BY domain
	`)

	if err != nil {
		return nil, fmt.Errorf("failed to query blacklist: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.BlacklistEntry
	for rows.Next() {
		var entry model.BlacklistEntry
		if err := rows.Scan(&entry.Domain, &entry.Reason, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
