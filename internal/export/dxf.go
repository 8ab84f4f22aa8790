package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/GangSheet/internal/model"
)

// DXF layer names used for cutter import.
const (
	LayerRoll = "ROLL"
	LayerCut  = "CUT"
)

// ExportCutDXF writes a cut file for a contour cutter: one closed rectangle
// per placed item on the CUT layer and the used part of the roll on the ROLL
// layer. Coordinates are in millimetres with the origin at the bottom left of
// the used length, so the top of the roll has the largest Y.
func ExportCutDXF(path string, result model.PackResult) error {
	if len(result.Packed) == 0 {
		return fmt.Errorf("no placed items to export")
	}

	dpi := canvasDPI(result.Canvas)
	rollW := pxToMm(result.Canvas.WidthPx, dpi)
	usedH := pxToMm(result.UsedLengthPx(), dpi)

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerRoll, color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add %s layer: %w", LayerRoll, err)
	}
	if _, err := d.LwPolyline(true, rectVertices(0, 0, rollW, usedH)...); err != nil {
		return fmt.Errorf("failed to draw roll outline: %w", err)
	}

	if _, err := d.AddLayer(LayerCut, color.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add %s layer: %w", LayerCut, err)
	}
	for _, p := range result.Packed {
		x := pxToMm(p.X, dpi)
		w := pxToMm(p.Width, dpi)
		h := pxToMm(p.Height, dpi)
		y := usedH - pxToMm(p.Y, dpi) - h
		if _, err := d.LwPolyline(true, rectVertices(x, y, w, h)...); err != nil {
			return fmt.Errorf("failed to draw contour for %q: %w", p.Label, err)
		}
	}

	return d.SaveAs(path)
}

// rectVertices returns the corners of an axis-aligned rectangle, counter-clockwise.
func rectVertices(x, y, w, h float64) [][]float64 {
	return [][]float64{
		{x, y},
		{x + w, y},
		{x + w, y + h},
		{x, y + h},
	}
}
