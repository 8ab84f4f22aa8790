package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("File,Label,Qty\nfront.png,Front,2\nback.png,Back,1\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("File;Label;Qty\nfront.png;Front;2\nback.png;Back;1\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("File\tLabel\tQty\nfront.png\tFront\t2\nback.png\tBack\t1\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("File|Label|Qty\nfront.png|Front|2\nback.png|Back|1\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"File", "Label", "Quantity"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Path != 0 || mapping.Label != 1 || mapping.Quantity != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{" QTY ", "Name", "Artwork"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Quantity != 0 || mapping.Label != 1 || mapping.Path != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"front.png", "Front", "2"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Path != 0 || mapping.Label != 1 || mapping.Quantity != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "File,Label,Quantity\nfront.png,Front,2\nback.png,Back,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', "/jobs/club")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(result.Assets))
	}

	if result.Assets[0].Label != "Front #1" || result.Assets[1].Label != "Front #2" {
		t.Errorf("expected numbered copies, got %q and %q", result.Assets[0].Label, result.Assets[1].Label)
	}
	if result.Assets[2].Label != "Back" {
		t.Errorf("expected single copy without suffix, got %q", result.Assets[2].Label)
	}
	if result.Assets[0].Path != filepath.Join("/jobs/club", "front.png") {
		t.Errorf("expected resolved path, got %s", result.Assets[0].Path)
	}
	if result.Assets[0].ID == result.Assets[1].ID {
		t.Error("copies must get distinct ids")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "front.png,Front,2\nback.png\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', "")

	if len(result.Assets) != 3 {
		t.Fatalf("expected 3 assets, got %d (errors: %v)", len(result.Assets), result.Errors)
	}
	if result.Assets[2].Label != "back" {
		t.Errorf("expected label from file name, got %q", result.Assets[2].Label)
	}
	if result.Assets[2].Path != "back.png" {
		t.Errorf("expected unresolved path, got %s", result.Assets[2].Path)
	}
}

func TestImportCSVFromReader_AbsolutePathKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "logo.png")
	result := ImportCSVFromReader(strings.NewReader("File\n"+abs+"\n"), ',', "/elsewhere")

	if len(result.Assets) != 1 || result.Assets[0].Path != abs {
		t.Errorf("expected absolute path to be kept, got %+v", result.Assets)
	}
}

func TestImportCSVFromReader_InvalidQuantity(t *testing.T) {
	data := "File,Qty\na.png,two\nb.png,0\nc.png,-1\nd.png,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', "")

	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %v", result.Errors)
	}
	if len(result.Assets) != 3 {
		t.Errorf("expected the valid row to expand to 3 assets, got %d", len(result.Assets))
	}
}

func TestImportCSVFromReader_MissingFile(t *testing.T) {
	data := "File,Label\n,Orphan\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', "")

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Line 2") {
		t.Errorf("expected one error for line 2, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingFileColumn(t *testing.T) {
	data := "Label,Qty\nFront,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', "")

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "File") {
		t.Errorf("expected missing column error, got %v", result.Errors)
	}
	if len(result.Assets) != 0 {
		t.Errorf("expected no assets, got %d", len(result.Assets))
	}
}

func TestImportCSVFromReader_UnsupportedExtensionWarns(t *testing.T) {
	data := "File\nnotes.docx\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', "")

	if len(result.Assets) != 1 {
		t.Fatalf("expected the asset to be kept, got %d", len(result.Assets))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "notes.docx") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about notes.docx, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "File\na.png\n,\n\nb.png\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', "")

	if len(result.Assets) != 2 {
		t.Errorf("expected 2 assets, got %d (errors: %v)", len(result.Assets), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',', "")

	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_FileResolvesAgainstManifestDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.csv")
	content := "File;Label;Qty\nart/front.png;Front;1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Assets) != 1 {
		t.Fatalf("expected 1 asset, got %d (errors: %v)", len(result.Assets), result.Errors)
	}
	if result.Assets[0].Path != filepath.Join(dir, "art", "front.png") {
		t.Errorf("unexpected path %s", result.Assets[0].Path)
	}
	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Copies", "Image"},
		{"Front", 3, "front.png"},
		{"Sleeve", 1, "sleeve.webp"},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Assets) != 4 {
		t.Fatalf("expected 4 assets, got %d", len(result.Assets))
	}
	if result.Assets[3].Label != "Sleeve" {
		t.Errorf("expected 'Sleeve', got '%s'", result.Assets[3].Label)
	}
	if result.Assets[0].Path != filepath.Join(filepath.Dir(path), "front.png") {
		t.Errorf("unexpected path %s", result.Assets[0].Path)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"front.png", "Front", 2},
	})

	result := ImportExcel(path)

	if len(result.Assets) != 2 {
		t.Errorf("expected 2 assets, got %d (errors: %v)", len(result.Assets), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/path/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.xlsx")
	if err := os.WriteFile(path, []byte("not an excel file"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportExcel(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid Excel file")
	}
}
