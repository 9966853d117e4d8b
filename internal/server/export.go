package server

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// buildReport renders the audit workbook for a decision: a summary
// sheet with checks and risks, plus one trace sheet per document so a
// reviewer can see exactly which extraction strategies ran.
func buildReport(req *ReportRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	// The default sheet is renamed rather than deleted so the workbook
	// always has an active sheet.
	if err := f.SetSheetName(f.GetSheetName(0), summary); err != nil {
		return nil, err
	}

	dec := req.Decision
	rows := [][]any{
		{"Case ID", dec.CaseID},
		{"Case Type", dec.CaseType},
		{"Subject", dec.Subject},
		{"Recommended Outcome", dec.RecommendedOutcome},
		{"Confidence", dec.Confidence},
		{},
		{"Checks"},
	}
	for _, c := range dec.Checks {
		rows = append(rows, []any{"", c})
	}
	rows = append(rows, []any{}, []any{"Risks"})
	for _, r := range dec.Risks {
		rows = append(rows, []any{"", r})
	}
	if err := writeRows(f, summary, rows); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summary, "A", "A", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summary, "B", "B", 90); err != nil {
		return nil, err
	}

	for _, t := range []struct {
		sheet string
		trace []string
	}{
		{"Case Trace", req.CaseTrace},
		{"GR Trace", req.GRTrace},
	} {
		if len(t.trace) == 0 {
			continue
		}
		if _, err := f.NewSheet(t.sheet); err != nil {
			return nil, err
		}
		rows := [][]any{{"#", "Stage Entry"}}
		for i, e := range t.trace {
			rows = append(rows, []any{i + 1, e})
		}
		if err := writeRows(f, t.sheet, rows); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(t.sheet, "B", "B", 100); err != nil {
			return nil, err
		}
	}

	idx, err := f.GetSheetIndex(summary)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for ri, row := range rows {
		for ci, val := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", ci+1, ri+1, err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}
	return nil
}
