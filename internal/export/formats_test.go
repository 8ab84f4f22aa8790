package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GangSheet/internal/model"
)

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{" PDF", "json", "pdf", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != FormatPDF || got[1] != FormatJSON {
		t.Errorf("unexpected formats %v", got)
	}

	all, err := ParseFormats([]string{"all"})
	if err != nil || len(all) != len(Formats) {
		t.Errorf("expected every format, got %v (%v)", all, err)
	}

	if _, err := ParseFormats([]string{"svg"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	written, err := ExportAll(dir, "club", Formats, buildTestResult(), buildTestOptions())
	if err != nil {
		t.Fatalf("ExportAll returned error: %v", err)
	}
	if len(written) != len(Formats) {
		t.Fatalf("expected %d files, got %v", len(Formats), written)
	}
	for _, p := range written {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("%s was not created: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
	if written[1] != OutputPath(dir, "club", FormatPDF) {
		t.Errorf("unexpected proof path %s", written[1])
	}
}

func TestExportAll_NothingPlaced(t *testing.T) {
	dir := t.TempDir()

	result := model.PackResult{
		Canvas: buildTestResult().Canvas,
		Failed: []model.FailureRecord{{AssetID: "x", Label: "x", Reason: model.ReasonDecodeError}},
	}
	written, err := ExportAll(dir, "empty", Formats, result, ReportOptions{})
	if err != nil {
		t.Fatalf("ExportAll returned error: %v", err)
	}
	if len(written) != 1 || written[0] != OutputPath(dir, "empty", FormatJSON) {
		t.Errorf("expected only the manifest, got %v", written)
	}
}
