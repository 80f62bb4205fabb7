// Package storage provides the persistence layer for analysis verdicts
// and the domain blacklist.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidLimit  = errors.New("limit must be positive")
	ErrInvalidRecord = errors.New("invalid analysis record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateLimit ensures a row limit is positive.
func validateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}

// validateRecord validates an analysis record before persistence.
func validateRecord(rec *model.AnalysisRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if strings.TrimSpace(rec.URL) == "" {
		return fmt.Errorf("%w: missing URL", ErrInvalidRecord)
	}
	if rec.AnalyzedAt.IsZero() {
		return fmt.Errorf("%w: missing analysis time", ErrInvalidRecord)
	}
	if !rec.Label.Valid() {
		return fmt.Errorf("%w: unknown label %q", ErrInvalidRecord, rec.Label)
	}
	if rec.RiskScore < 0 || rec.RiskScore > 100 {
		return fmt.Errorf("%w: risk score %d out of range", ErrInvalidRecord, rec.RiskScore)
	}
	if rec.Confidence < 0 || rec.Confidence > 100 {
		return fmt.Errorf("%w: confidence %d out of range", ErrInvalidRecord, rec.Confidence)
	}
	return nil
}
