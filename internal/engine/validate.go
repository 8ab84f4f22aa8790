package engine

import (
	"fmt"

	"github.com/piwi3910/GangSheet/internal/model"
)

// CheckLayout re-checks a finished layout independently of the packer that
// produced it. It reports images that leave the canvas, pairs of images
// closer together than the canvas padding, and assets that appear more than
// once across placed and failed records.
//
// Each image is assumed to own the rectangle from its top-left corner
// extended by PaddingPx on the right and bottom, which is how the pipeline
// reserves space.
func CheckLayout(result model.PackResult) []model.LayoutViolation {
	var violations []model.LayoutViolation
	canvas := result.Canvas
	pad := canvas.PaddingPx

	for i, p := range result.Packed {
		if p.X < 0 || p.Y < 0 || p.Right() > canvas.WidthPx || p.Bottom() > canvas.HeightPx {
			violations = append(violations, model.LayoutViolation{
				Kind:      model.ViolationOutOfBounds,
				ItemIndex: i,
				ItemID:    p.ID,
				ItemLabel: p.Label,
			})
		}
	}

	for i := 0; i < len(result.Packed); i++ {
		a := reservedRect(result.Packed[i], pad)
		for j := i + 1; j < len(result.Packed); j++ {
			b := reservedRect(result.Packed[j], pad)
			if !rectsOverlap(a, b) {
				continue
			}
			violations = append(violations, model.LayoutViolation{
				Kind:       model.ViolationOverlap,
				ItemIndex:  i,
				ItemID:     result.Packed[i].ID,
				ItemLabel:  result.Packed[i].Label,
				OtherID:    result.Packed[j].ID,
				OtherLabel: result.Packed[j].Label,
				OverlapPx:  intersectionArea(a, b),
			})
		}
	}

	return append(violations, duplicateRecords(result)...)
}

func reservedRect(p model.PackedItem, pad int) rect {
	return rect{x: p.X, y: p.Y, w: p.Width + pad, h: p.Height + pad}
}

func intersectionArea(a, b rect) int64 {
	w := min(a.right(), b.right()) - max(a.x, b.x)
	h := min(a.bottom(), b.bottom()) - max(a.y, b.y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return int64(w) * int64(h)
}

// duplicateRecords keeps at most one violation per repeated asset ID.
func duplicateRecords(result model.PackResult) []model.LayoutViolation {
	seen := make(map[string]bool)
	reported := make(map[string]bool)
	var violations []model.LayoutViolation

	check := func(index int, id, label string) {
		if id == "" {
			return
		}
		if seen[id] && !reported[id] {
			reported[id] = true
			violations = append(violations, model.LayoutViolation{
				Kind:      model.ViolationDuplicate,
				ItemIndex: index,
				ItemID:    id,
				ItemLabel: label,
			})
		}
		seen[id] = true
	}

	for i, p := range result.Packed {
		check(i, p.ID, p.Label)
	}
	for _, f := range result.Failed {
		check(-1, f.AssetID, f.Label)
	}
	return violations
}

// FormatViolations produces human-readable warning messages from violations.
func FormatViolations(violations []model.LayoutViolation) []string {
	var warnings []string
	for _, v := range violations {
		var msg string
		switch v.Kind {
		case model.ViolationOutOfBounds:
			msg = fmt.Sprintf("Image %q (%s) extends past the canvas edge", v.ItemLabel, v.ItemID)
		case model.ViolationOverlap:
			msg = fmt.Sprintf("Images %q and %q are closer than the cutting gap (%d px² shared)",
				v.ItemLabel, v.OtherLabel, v.OverlapPx)
		case model.ViolationDuplicate:
			msg = fmt.Sprintf("Asset %q (%s) is reported more than once", v.ItemLabel, v.ItemID)
		default:
			msg = fmt.Sprintf("Image %q: %s", v.ItemLabel, v.Kind)
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
