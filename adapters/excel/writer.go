// Package excel exports a finished analysis as an xlsx workbook so results
// can leave the tool in a shape reviewers actually exchange.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"statengine/app"
	"statengine/domain/report"
	"statengine/domain/stats"
)

// sheet names are a stable contract with downstream spreadsheets.
const (
	sheetSummary     = "Summary"
	sheetAssumptions = "Assumptions"
	sheetPosthoc     = "Posthoc"
)

// WorkbookWriter renders analysis results into xlsx workbooks.
type WorkbookWriter struct{}

// NewWorkbookWriter creates a workbook writer.
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// Write streams a workbook for one analysis result.
func (w *WorkbookWriter) Write(result *app.AnalysisResult, out io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummary(f, result); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := w.writeAssumptions(f, result); err != nil {
		return fmt.Errorf("failed to write assumptions sheet: %w", err)
	}
	if result.Outcome.Posthoc != nil {
		if err := w.writePosthoc(f, result); err != nil {
			return fmt.Errorf("failed to write posthoc sheet: %w", err)
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *WorkbookWriter) writeSummary(f *excelize.File, result *app.AnalysisResult) error {
	// The default sheet becomes the summary.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Analysis ID", result.ID.String()},
		{"Input fingerprint", result.Fingerprint.String()},
		{"Method", result.Outcome.Method.String()},
		{"Statistic", result.Outcome.Statistic},
		{"P-value", report.FormatPValue(result.Outcome.PValue)},
		{"Verdict (EN)", result.Reports.EN.Verdict},
		{"Verdict (JP)", result.Reports.JP.Verdict},
		{"Rationale (EN)", result.Reports.EN.Rationale},
		{"Rationale (JP)", result.Reports.JP.Rationale},
	}
	return writeRows(f, sheetSummary, rows)
}

func (w *WorkbookWriter) writeAssumptions(f *excelize.File, result *app.AnalysisResult) error {
	if _, err := f.NewSheet(sheetAssumptions); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Check", "Target", "P-value", "Passed"},
	}
	// Iterate in input order so re-exports are byte-comparable.
	for _, name := range result.GroupNames {
		p := result.Summary.NormalityP[name]
		rows = append(rows, []interface{}{
			"Normality (Shapiro-Wilk)", name, report.FormatPValue(p), p > stats.SignificanceLevel,
		})
	}
	rows = append(rows, []interface{}{
		"Equal variance (Levene)", "all groups", report.FormatPValue(result.Summary.VarianceP), result.Summary.EqualVariance,
	})
	return writeRows(f, sheetAssumptions, rows)
}

func (w *WorkbookWriter) writePosthoc(f *excelize.File, result *app.AnalysisResult) error {
	if _, err := f.NewSheet(sheetPosthoc); err != nil {
		return err
	}

	table := result.Outcome.Posthoc
	rows := [][]interface{}{
		{"Procedure", table.Procedure},
		{"Group A", "Group B", "Statistic", "Adjusted P", "Significant", "Label"},
	}
	for _, c := range table.Comparisons {
		rows = append(rows, []interface{}{
			c.GroupA, c.GroupB, c.Statistic, report.FormatPValue(c.PValue), c.Significant, c.Label,
		})
	}
	return writeRows(f, sheetPosthoc, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
