package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportPlacementsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placements.xlsx")

	if err := ExportPlacementsXLSX(path, buildTestResult()); err != nil {
		t.Fatalf("ExportPlacementsXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetPlacements)
	if err != nil {
		t.Fatalf("cannot read %s: %v", SheetPlacements, err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[1][1] != "Front" {
		t.Errorf("unexpected first rows %v / %v", rows[0], rows[1])
	}
	if rows[2][6] != "20.5" {
		t.Errorf("expected x of 20.5cm for Back, got %q", rows[2][6])
	}
	if rows[2][10] != "TRUE" {
		t.Errorf("expected rotated TRUE, got %q", rows[2][10])
	}

	failures, err := f.GetRows(SheetFailures)
	if err != nil {
		t.Fatalf("cannot read %s: %v", SheetFailures, err)
	}
	if len(failures) != 2 || failures[1][2] != "no space" {
		t.Errorf("unexpected failures sheet %v", failures)
	}

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("cannot read %s: %v", SheetSummary, err)
	}
	if len(summary) < 3 || summary[2][1] != "25" {
		t.Errorf("expected used length 25cm, got %v", summary)
	}
}

func TestExportPlacementsXLSX_NoFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placements.xlsx")

	result := buildTestResult()
	result.Failed = nil
	if err := ExportPlacementsXLSX(path, result); err != nil {
		t.Fatalf("ExportPlacementsXLSX returned error: %v", err)
	}
}

func TestRound2(t *testing.T) {
	if got := round2(20.000000000004); got != 20 {
		t.Errorf("round2 = %v, want 20", got)
	}
	if got := round2(1.236); got != 1.24 {
		t.Errorf("round2 = %v, want 1.24", got)
	}
}
