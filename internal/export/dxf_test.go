package export

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/GangSheet/internal/model"
)

func TestExportCutDXF_Contours(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.dxf")

	if err := ExportCutDXF(path, buildTestResult()); err != nil {
		t.Fatalf("ExportCutDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	var polys []*entity.LwPolyline
	for _, ent := range drawing.Entities() {
		if lw, ok := ent.(*entity.LwPolyline); ok {
			polys = append(polys, lw)
		}
	}
	if len(polys) != 4 {
		t.Fatalf("expected roll outline plus 3 contours, got %d polylines", len(polys))
	}

	// Roll outline: 580mm wide, 250mm used
	roll := polys[0].Vertices
	if len(roll) != 4 || !near(roll[2][0], 580) || !near(roll[2][1], 250) {
		t.Errorf("unexpected roll outline %v", roll)
	}

	// Front sits at the top left: 200x150mm, flipped so its top is at Y=250
	front := polys[1].Vertices
	if !near(front[0][0], 0) || !near(front[0][1], 100) || !near(front[2][0], 200) || !near(front[2][1], 250) {
		t.Errorf("unexpected contour for Front %v", front)
	}
}

func TestExportCutDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	if err := ExportCutDXF(path, model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestRectVertices(t *testing.T) {
	v := rectVertices(1, 2, 3, 4)
	want := [][]float64{{1, 2}, {4, 2}, {4, 6}, {1, 6}}
	for i := range want {
		if v[i][0] != want[i][0] || v[i][1] != want[i][1] {
			t.Errorf("vertex %d = %v, want %v", i, v[i], want[i])
		}
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}
