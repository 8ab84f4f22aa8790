package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GangSheet/internal/model"
)

// buildTestResult creates a realistic pack result on a 58cm roll at 254 DPI,
// where one centimetre is exactly 100 pixels.
func buildTestResult() model.PackResult {
	return model.PackResult{
		Canvas: model.CanvasSpec{
			WidthPx:       5800,
			HeightPx:      25000,
			PaddingPx:     50,
			AllowRotation: true,
			DPI:           254,
		},
		Packed: []model.PackedItem{
			{ID: "a1", Label: "Front", X: 0, Y: 0, Width: 2000, Height: 1500, OriginalWidth: 2000, OriginalHeight: 1500},
			{ID: "a2", Label: "Back", X: 2050, Y: 0, Width: 1000, Height: 2500, Rotated: true, OriginalWidth: 2500, OriginalHeight: 1000},
			{ID: "a3", Label: "Sleeve", X: 0, Y: 1550, Width: 800, Height: 400, OriginalWidth: 400, OriginalHeight: 200},
		},
		Failed: []model.FailureRecord{
			{AssetID: "a4", Label: "Banner", Reason: model.ReasonNoSpace},
		},
	}
}

func buildTestOptions() ReportOptions {
	return ReportOptions{
		JobName:       "Club order",
		Settings:      model.DefaultPackSettings(),
		PricePerMetre: 12.5,
	}
}

func TestExportLayoutPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proof.pdf")

	err := ExportLayoutPDF(path, buildTestResult(), buildTestOptions())
	if err != nil {
		t.Fatalf("ExportLayoutPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLayoutPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	result := model.PackResult{Canvas: buildTestResult().Canvas}
	if err := ExportLayoutPDF(path, result, ReportOptions{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportLayoutPDF_LongRollSpansPages(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.pdf")
	long := filepath.Join(dir, "long.pdf")

	result := buildTestResult()
	if err := ExportLayoutPDF(short, result, ReportOptions{}); err != nil {
		t.Fatalf("ExportLayoutPDF returned error: %v", err)
	}

	// 2m of film needs several proof pages
	result.Packed = append(result.Packed, model.PackedItem{
		ID: "a5", Label: "Banner", X: 3100, Y: 0, Width: 1000, Height: 20000,
		OriginalWidth: 1000, OriginalHeight: 20000,
	})
	if err := ExportLayoutPDF(long, result, ReportOptions{}); err != nil {
		t.Fatalf("ExportLayoutPDF returned error: %v", err)
	}

	shortInfo, err := os.Stat(short)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	longInfo, err := os.Stat(long)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if longInfo.Size() <= shortInfo.Size() {
		t.Errorf("expected multi-page proof to be larger: %d <= %d", longInfo.Size(), shortInfo.Size())
	}
}

func TestExportLayoutPDF_UnknownDPI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodpi.pdf")

	result := buildTestResult()
	result.Canvas.DPI = 0
	if err := ExportLayoutPDF(path, result, ReportOptions{}); err != nil {
		t.Fatalf("ExportLayoutPDF returned error: %v", err)
	}
}

func TestExportLayoutPDF_ManyItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_items.pdf")

	// More items than colors, and more failures than fit a page
	result := buildTestResult()
	result.Packed = nil
	for i := 0; i < 40; i++ {
		result.Packed = append(result.Packed, model.PackedItem{
			ID:    fmt.Sprintf("p%d", i),
			Label: fmt.Sprintf("Logo %d", i+1),
			X:     (i % 5) * 1100, Y: (i / 5) * 900,
			Width: 1000, Height: 800,
			Rotated:       i%3 == 0,
			OriginalWidth: 1000, OriginalHeight: 800,
		})
	}
	for i := 0; i < 60; i++ {
		result.Failed = append(result.Failed, model.FailureRecord{
			AssetID: fmt.Sprintf("f%d", i),
			Label:   fmt.Sprintf("Broken %d", i),
			Reason:  model.ReasonDecodeError,
			Detail:  "image: unknown format with a rather long explanation attached",
		})
	}

	if err := ExportLayoutPDF(path, result, buildTestOptions()); err != nil {
		t.Fatalf("ExportLayoutPDF returned error: %v", err)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 20, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestCanvasDPI(t *testing.T) {
	if got := canvasDPI(model.CanvasSpec{DPI: 150}); got != 150 {
		t.Errorf("canvasDPI = %v, want 150", got)
	}
	if got := canvasDPI(model.CanvasSpec{}); got != fallbackDPI {
		t.Errorf("canvasDPI without dpi = %v, want %v", got, fallbackDPI)
	}
	if got := pxToMm(254, 254); got < 25.39 || got > 25.41 {
		t.Errorf("pxToMm(254, 254) = %v, want 25.4", got)
	}
}
