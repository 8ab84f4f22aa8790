package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/GangSheet/internal/model"
)

func TestWriteLayoutJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLayoutJSON(&buf, buildTestResult(), buildTestOptions()); err != nil {
		t.Fatalf("WriteLayoutJSON returned error: %v", err)
	}

	var m LayoutManifest
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if m.Version != manifestVersion {
		t.Errorf("expected version %d, got %d", manifestVersion, m.Version)
	}
	if m.JobName != "Club order" {
		t.Errorf("expected job name, got %q", m.JobName)
	}
	if len(m.Result.Packed) != 3 || len(m.Result.Failed) != 1 {
		t.Errorf("unexpected counts %d packed / %d failed", len(m.Result.Packed), len(m.Result.Failed))
	}
	if m.UsedLengthPx != 2500 {
		t.Errorf("expected used length 2500px, got %d", m.UsedLengthPx)
	}
	if m.Usage.BilledLengthCm != 25 {
		t.Errorf("expected billed 25cm, got %v", m.Usage.BilledLengthCm)
	}
	if !m.Result.Packed[1].Rotated {
		t.Error("rotation flag lost")
	}
}

func TestWriteLayoutJSON_EmptyListsNotNull(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLayoutJSON(&buf, model.PackResult{}, ReportOptions{}); err != nil {
		t.Fatalf("WriteLayoutJSON returned error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, `"packed": null`) || strings.Contains(out, `"failed": null`) {
		t.Errorf("expected empty arrays, got %s", out)
	}
}

func TestExportLayoutJSON_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := ExportLayoutJSON(path, buildTestResult(), ReportOptions{}); err != nil {
		t.Fatalf("ExportLayoutJSON returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if !json.Valid(data) {
		t.Error("file does not contain valid JSON")
	}
}

func TestExportLayoutJSON_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "layout.json")

	if err := ExportLayoutJSON(path, buildTestResult(), ReportOptions{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
