package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/talhabaig007/PhishStop/internal/common"
	"github.com/talhabaig007/PhishStop/internal/model"
)

// SaveVerdict upserts one analysis record keyed by its normalized URL.
// Re-analyzing a URL replaces the previous row.
func (s *SQLiteStorage) SaveVerdict(ctx context.Context, rec model.AnalysisRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(&rec); err != nil {
		return err
	}

	reasons, err := json.Marshal(rec.Reasons)
	if err != nil {
		return fmt.Errorf("failed to encode reasons: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO url_analysis (
			url, host, risk_score, label, confidence,
			detection_methods, reasons, analyzed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			host = excluded.host,
			risk_score = excluded.risk_score,
			label = excluded.label,
			confidence = excluded.confidence,
			detection_methods = excluded.detection_methods,
			reasons = excluded.reasons,
			analyzed_at = excluded.analyzed_at
	`,
		rec.URL,
		rec.Host,
		rec.RiskScore,
		string(rec.Label),
		rec.Confidence,
		joinMethods(rec.Methods),
		string(reasons),
		rec.AnalyzedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save verdict: %w", err)
	}

	return nil
}

// GetVerdict retrieves the persisted record for a normalized URL.
func (s *SQLiteStorage) GetVerdict(ctx context.Context, url string) (*model.AnalysisRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(url, "url"); err != nil {
		return nil, err
	}

	var (
		rec        model.AnalysisRecord
		labelStr   string
		methodsStr sql.NullString
		reasonsStr sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT url, host, risk_score, label, confidence,
		       detection_methods, reasons, analyzed_at
		FROM url_analysis
		WHERE url = ?
	`, url).Scan(
		&rec.URL,
		&rec.Host,
		&rec.RiskScore,
		&labelStr,
		&rec.Confidence,
		&methodsStr,
		&reasonsStr,
		&rec.AnalyzedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no verdict for %s", common.ErrNotFound, url)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verdict: %w", err)
	}

	rec.Label = model.Label(labelStr)
	if methodsStr.Valid {
		rec.Methods = splitMethods(methodsStr.String)
	}
	if reasonsStr.Valid && reasonsStr.String != "" {
		if err := json.Unmarshal([]byte(reasonsStr.String), &rec.Reasons); err != nil {
			return nil, fmt.Errorf("failed to parse reasons: %w", err)
		}
	}

	return &rec, nil
}

// RecentVerdicts returns up to limit records, newest first.
func (s *SQLiteStorage) RecentVerdicts(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, host, risk_score, label, confidence,
		       detection_methods, reasons, analyzed_at
		FROM url_analysis
		ORDER BY analyzed_at DESC, id DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to query recent verdicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.AnalysisRecord
	for rows.Next() {
		var (
			rec        model.AnalysisRecord
			labelStr   string
			methodsStr sql.NullString
			reasonsStr sql.NullString
		)

		err := rows.Scan(
			&rec.URL,
			&rec.Host,
			&rec.RiskScore,
			&labelStr,
			&rec.Confidence,
			&methodsStr,
			&reasonsStr,
			&rec.AnalyzedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verdict: %w", err)
		}

		rec.Label = model.Label(labelStr)
		if methodsStr.Valid {
			rec.Methods = splitMethods(methodsStr.String)
		}
		if reasonsStr.Valid && reasonsStr.String != "" {
			if err := json.Unmarshal([]byte(reasonsStr.String), &rec.Reasons); err != nil {
				return nil, fmt.Errorf("failed to parse reasons: %w", err)
			}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// ReplayStats aggregates the whole ledger into a snapshot. Used to rebuild
// the in-memory statistics after a restart.
func (s *SQLiteStorage) ReplayStats(ctx context.Context) (model.StatsSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return model.StatsSnapshot{}, err
	}

	var snapshot model.StatsSnapshot

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN label = ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(risk_score), 0)
		FROM url_analysis
	`, string(model.LabelPhishing)).Scan(
		&snapshot.TotalAnalyzed,
		&snapshot.PhishingDetected,
		&snapshot.AvgRiskScore,
	)

	if err != nil {
		return model.StatsSnapshot{}, fmt.Errorf("failed to replay stats: %w", err)
	}

	return snapshot, nil
}

// joinMethods encodes detection methods as a comma separated list.
func joinMethods(methods []model.DetectionMethod) string {
	parts := make([]string, len(methods))
	for i, m := range methods {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}

func splitMethods(s string) []model.DetectionMethod {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	methods := make([]model.DetectionMethod, len(parts))
	for i, p := range parts {
		methods[i] = model.DetectionMethod(p)
	}
	return methods
}
