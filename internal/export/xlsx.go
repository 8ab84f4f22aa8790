package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GangSheet/internal/model"
)

// Sheet names of the placement workbook.
const (
	SheetPlacements = "Placements"
	SheetFailures   = "Failures"
	SheetSummary    = "Summary"
)

var placementHeaders = []string{
	"ID", "Label", "X (px)", "Y (px)", "Width (px)", "Height (px)",
	"X (cm)", "Y (cm)", "Width (cm)", "Height (cm)", "Rotated", "Effective DPI",
}

var failureHeaders = []string{"ID", "Label", "Reason", "Detail"}

// ExportPlacementsXLSX writes a workbook with one row per placed item, one
// row per failure and a short summary sheet.
func ExportPlacementsXLSX(path string, result model.PackResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPlacements); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetFailures); err != nil {
		return fmt.Errorf("failed to add %s sheet: %w", SheetFailures, err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to add %s sheet: %w", SheetSummary, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	dpi := canvasDPI(result.Canvas)
	rows := make([][]interface{}, 0, len(result.Packed))
	for _, p := range result.Packed {
		rows = append(rows, []interface{}{
			p.ID, p.Label, p.X, p.Y, p.Width, p.Height,
			round2(model.PxToCm(p.X, dpi)), round2(model.PxToCm(p.Y, dpi)),
			round2(model.PxToCm(p.Width, dpi)), round2(model.PxToCm(p.Height, dpi)),
			p.Rotated, round2(p.EffectiveDPI(result.Canvas.DPI)),
		})
	}
	if err := writeTable(f, SheetPlacements, placementHeaders, rows, headerStyle); err != nil {
		return err
	}

	rows = rows[:0]
	for _, fr := range result.Failed {
		rows = append(rows, []interface{}{fr.AssetID, fr.Label, fr.Reason, fr.Detail})
	}
	if err := writeTable(f, SheetFailures, failureHeaders, rows, headerStyle); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Roll width (cm)", round2(model.PxToCm(result.Canvas.WidthPx, dpi))},
		{"Used length (cm)", round2(model.PxToCm(result.UsedLengthPx(), dpi))},
		{"Efficiency (%)", round2(result.Efficiency())},
		{"Placed", len(result.Packed)},
		{"Failed", len(result.Failed)},
		{"DPI", result.Canvas.DPI},
		{"Gap (px)", result.Canvas.PaddingPx},
	}
	if err := writeTable(f, SheetSummary, []string{"Metric", "Value"}, summary, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeTable writes a styled header row followed by rows into sheet.
func writeTable(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, r+2, err)
			}
		}
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
