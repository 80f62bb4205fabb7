// Package export writes the analysis ledger to spreadsheet files.
package export

import (
	"fmt"
	"strings"

	"github.com/talhabaig007/PhishStop/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported ledger.
const SheetName = "Analysis"

var columns = []struct {
	header string
	width  float64
}{
	{"Analyzed At", 20},
	{"URL", 48},
	{"Host", 28},
	{"Label", 12},
	{"Risk Score", 11},
	{"Confidence", 11},
	{"Detection Methods", 26},
	{"Reasons", 56},
}

// WriteXLSX writes the given ledger rows to an .xlsx workbook at path,
// newest row first when the caller passes them that way. An empty slice
// produces a header-only workbook.
func WriteXLSX(path string, rows []model.AnalysisRecord) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		cell, cellErr := excelize.CoordinatesToCellName(i+1, 1)
		if cellErr != nil {
			return fmt.Errorf("failed to address header cell: %w", cellErr)
		}
		if setErr := f.SetCellValue(SheetName, cell, col.header); setErr != nil {
			return fmt.Errorf("failed to write header %q: %w", col.header, setErr)
		}

		name, nameErr := excelize.ColumnNumberToName(i + 1)
		if nameErr != nil {
			return fmt.Errorf("failed to resolve column name: %w", nameErr)
		}
		if widthErr := f.SetColWidth(SheetName, name, name, col.width); widthErr != nil {
			return fmt.Errorf("failed to set column width: %w", widthErr)
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return fmt.Errorf("failed to address header range: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for r, rec := range rows {
		values := []any{
			rec.AnalyzedAt.Format("2006-01-02 15:04:05"),
			rec.URL,
			rec.Host,
			string(rec.Label),
			rec.RiskScore,
			rec.Confidence,
			joinMethods(rec.Methods),
			strings.Join(rec.Reasons, "; "),
		}

		for c, v := range values {
			cell, cellErr := excelize.CoordinatesToCellName(c+1, r+2)
			if cellErr != nil {
				return fmt.Errorf("failed to address cell: %w", cellErr)
			}
			if setErr := f.SetCellValue(SheetName, cell, v); setErr != nil {
				return fmt.Errorf("failed to write row %d: %w", r+1, setErr)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func joinMethods(methods []model.DetectionMethod) string {
	parts := make([]string, len(methods))
	for i, m := range methods {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}
