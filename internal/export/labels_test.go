package export

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GangSheet/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	err := ExportLabels(path, buildTestResult())
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
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

func TestExportLabels_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no_placements.pdf")

	result := buildTestResult()
	result.Packed = nil
	if err := ExportLabels(path, result); err == nil {
		t.Fatal("expected error for result with no placements, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestResult())

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	if labels[0].Label != "Front" || labels[0].ID != "a1" {
		t.Errorf("expected first label to be a1 'Front', got %s %q", labels[0].ID, labels[0].Label)
	}
	if math.Abs(labels[0].WidthCm-20) > 1e-6 || math.Abs(labels[0].HeightCm-15) > 1e-6 {
		t.Errorf("wrong dimensions: got %.2fx%.2f, want 20x15", labels[0].WidthCm, labels[0].HeightCm)
	}
	if labels[0].Rotated {
		t.Error("expected first label not rotated")
	}

	if !labels[1].Rotated {
		t.Error("expected second label to be rotated")
	}
	if math.Abs(labels[1].XCm-20.5) > 1e-6 {
		t.Errorf("expected x 20.5cm, got %.2f", labels[1].XCm)
	}

	if math.Abs(labels[2].YCm-15.5) > 1e-6 {
		t.Errorf("expected y 15.5cm, got %.2f", labels[2].YCm)
	}
}

func TestLabelInfo_QRPayload(t *testing.T) {
	info := CollectLabelInfos(buildTestResult())[1]

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, key := range []string{"id", "label", "width_cm", "height_cm", "x_cm", "y_cm", "rotated"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("payload is missing %q", key)
		}
	}
	if decoded["rotated"] != true {
		t.Error("rotated flag mismatch")
	}
}

func TestExportLabels_ManyItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_labels.pdf")

	// More items than fit on one label sheet
	result := buildTestResult()
	result.Packed = nil
	for i := 0; i < 35; i++ {
		result.Packed = append(result.Packed, model.PackedItem{
			ID:    fmt.Sprintf("p%02d", i),
			Label: "Sponsor logo with a very long descriptive name " + fmt.Sprint(i),
			X:     i * 110, Y: 10,
			Width: 100 + i*10, Height: 50 + i*5,
		})
	}

	if err := ExportLabels(path, result); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}
