// Package export writes packed gang sheet layouts to proof, label, cut and
// manifest files.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/GangSheet/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors mirrors the color scheme used by the terminal summary.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 30.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// lowResolutionDPI is the effective print resolution below which the summary
// flags an item.
const lowResolutionDPI = 150.0

// fallbackDPI is used for unit conversion when the canvas carries no DPI.
const fallbackDPI = 300.0

// ReportOptions carries job details printed on the proof.
type ReportOptions struct {
	JobName       string
	Settings      model.PackSettings
	PricePerMetre float64
}

// ExportLayoutPDF generates a layout proof of a packed gang sheet. The used
// part of the roll is split into page-sized segments, each drawn to scale
// with a coloured box and dashed gap outline per item, followed by a summary
// page with length, efficiency, failures and cost.
func ExportLayoutPDF(path string, result model.PackResult, opts ReportOptions) error {
	if len(result.Packed) == 0 {
		return fmt.Errorf("no placed items to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	dpi := canvasDPI(result.Canvas)
	rollWidthMm := pxToMm(result.Canvas.WidthPx, dpi)
	usedMm := pxToMm(result.UsedLengthPx(), dpi)

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := drawWidth / rollWidthMm
	segmentMm := drawHeight / scale
	pages := int(math.Ceil(usedMm/segmentMm - 1e-9))
	if pages < 1 {
		pages = 1
	}

	for i := 0; i < pages; i++ {
		pdf.AddPage()
		seg := segment{
			index: i + 1,
			total: pages,
			start: float64(i) * segmentMm,
			end:   math.Min(usedMm, float64(i+1)*segmentMm),
		}
		renderSegmentPage(pdf, result, opts, seg, scale)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, opts)

	return pdf.OutputFileAndClose(path)
}

// segment is the slice of the roll, in millimetres from the top edge, drawn
// on one proof page.
type segment struct {
	index, total int
	start, end   float64
}

// renderSegmentPage draws one roll segment on the current PDF page.
func renderSegmentPage(pdf *fpdf.Fpdf, result model.PackResult, opts ReportOptions, seg segment, scale float64) {
	dpi := canvasDPI(result.Canvas)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Gang sheet proof %d/%d", seg.index, seg.total)
	if opts.JobName != "" {
		title = fmt.Sprintf("%s: %s", opts.JobName, title)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Roll %.1f cm wide | Showing %.1f - %.1f cm | Items: %d | Efficiency: %.1f%%",
		pxToMm(result.Canvas.WidthPx, dpi)/10, seg.start/10, seg.end/10, len(result.Packed), result.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	offsetX := marginLeft
	offsetY := drawAreaTop
	filmW := pxToMm(result.Canvas.WidthPx, dpi) * scale
	filmH := (seg.end - seg.start) * scale

	// Film background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, filmW, filmH, "FD")

	pdf.ClipRect(offsetX, offsetY, filmW, filmH, false)
	padMm := pxToMm(result.Canvas.PaddingPx, dpi)
	for i, p := range result.Packed {
		top := pxToMm(p.Y, dpi)
		bottom := pxToMm(p.Bottom(), dpi)
		if bottom+padMm <= seg.start || top >= seg.end {
			continue
		}

		col := itemColors[i%len(itemColors)]
		px := offsetX + pxToMm(p.X, dpi)*scale
		py := offsetY + (top-seg.start)*scale
		pw := pxToMm(p.Width, dpi) * scale
		ph := pxToMm(p.Height, dpi) * scale

		// Reserved gap around the item
		if padMm > 0 {
			pdf.SetDrawColor(150, 150, 150)
			pdf.SetLineWidth(0.1)
			pdf.SetDashPattern([]float64{0.8, 0.8}, 0)
			pdf.Rect(px, py, pw+padMm*scale, ph+padMm*scale, "D")
			pdf.SetDashPattern([]float64{}, 0)
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 12 && ph > 6 {
			drawItemLabel(pdf, p, dpi, px, py, pw, ph)
		}
	}
	pdf.ClipEnd()

	drawDimensionAnnotations(pdf, pxToMm(result.Canvas.WidthPx, dpi), seg, offsetX, offsetY, filmW, filmH)
	drawItemsLegend(pdf, result, seg, offsetY+filmH+8)
}

// drawItemLabel centres the item label and its printed size in the box.
func drawItemLabel(pdf *fpdf.Fpdf, p model.PackedItem, dpi, px, py, pw, ph float64) {
	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)

	label := p.Label
	if p.Rotated {
		label += " (R)"
	}
	dims := fmt.Sprintf("%.1fx%.1f cm", pxToMm(p.Width, dpi)/10, pxToMm(p.Height, dpi)/10)

	labelW := pdf.GetStringWidth(label)
	dimsW := pdf.GetStringWidth(dims)

	if labelW < pw-2 {
		pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
	if ph > 12 && dimsW < pw-2 {
		pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
		pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations labels the roll width below the segment and the
// segment range to its left.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, rollWidthMm float64, seg segment, offsetX, offsetY, filmW, filmH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.1f cm", rollWidthMm/10)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(filmW-wLabelW)/2, offsetY+filmH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.1f - %.1f cm", seg.start/10, seg.end/10)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+filmH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+filmH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawItemsLegend renders a compact legend of the items starting in the segment.
func drawItemsLegend(pdf *fpdf.Fpdf, result model.PackResult, seg segment, startY float64) {
	dpi := canvasDPI(result.Canvas)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	maxY := pageHeight - marginBottom - 4

	for i, p := range result.Packed {
		top := pxToMm(p.Y, dpi)
		if top < seg.start || top >= seg.end {
			continue
		}
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%.1fx%.1f)", p.Label, pxToMm(p.Width, dpi)/10, pxToMm(p.Height, dpi)/10)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > maxY {
			pdf.SetXY(xPos, startY-5)
			pdf.CellFormat(10, 4, "...", "", 0, "L", false, 0, "")
			return
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, opts ReportOptions) {
	dpi := canvasDPI(result.Canvas)
	usage := model.EstimateRollUsage(result, opts.PricePerMetre)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Gang Sheet Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Roll Width", fmt.Sprintf("%.2f cm (%d px)", pxToMm(result.Canvas.WidthPx, dpi)/10, result.Canvas.WidthPx)},
		{"Used Length", fmt.Sprintf("%.2f cm (%d px)", pxToMm(result.UsedLengthPx(), dpi)/10, result.UsedLengthPx())},
		{"Billed Length", fmt.Sprintf("%.0f cm", usage.BilledLengthCm)},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
		{"Items Placed", fmt.Sprintf("%d", len(result.Packed))},
		{"Items Failed", fmt.Sprintf("%d", len(result.Failed))},
	}
	if usage.EstimatedCost > 0 {
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{"Estimated Cost", fmt.Sprintf("%.2f", usage.EstimatedCost)})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(result.Failed) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(180, 7, "WARNING: Items not placed", "", 0, "L", false, 0, "")
		y += 8

		colWidths := []float64{30, 70, 30, 50}
		headers := []string{"ID", "Label", "Reason", "Detail"}
		y = drawTableHeader(pdf, colWidths, headers, y)

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
		for i, f := range result.Failed {
			if y > pageHeight-marginBottom-20 {
				pdf.SetXY(marginLeft, y)
				pdf.CellFormat(180, 5, fmt.Sprintf("... and %d more", len(result.Failed)-i), "", 0, "L", false, 0, "")
				y += 6
				break
			}
			y = drawTableRow(pdf, colWidths, []string{f.AssetID, f.Label, f.Reason, truncate(pdf, f.Detail, colWidths[3]-2)}, y, i)
		}
	}

	var lowRes []model.PackedItem
	for _, p := range result.Packed {
		if d := p.EffectiveDPI(result.Canvas.DPI); d > 0 && d < lowResolutionDPI {
			lowRes = append(lowRes, p)
		}
	}
	if len(lowRes) > 0 && y < pageHeight-marginBottom-30 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(150, 100, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(180, 7, "Low resolution items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, p := range lowRes {
			if y > pageHeight-marginBottom-30 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(180, 5, fmt.Sprintf("- %s: %.0f dpi effective", p.Label, p.EffectiveDPI(result.Canvas.DPI)), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pack Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Algorithm", string(opts.Settings.Algorithm)},
		{"Resolution", fmt.Sprintf("%.0f dpi", result.Canvas.DPI)},
		{"Gap", fmt.Sprintf("%.2f cm (%d px)", pxToMm(result.Canvas.PaddingPx, dpi)/10, result.Canvas.PaddingPx)},
		{"Rotation", yesNo(result.Canvas.AllowRotation)},
		{"Trim Transparent Margins", yesNo(opts.Settings.Trim)},
		{"Auto Scale", yesNo(opts.Settings.AutoScale)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by GangSheet - DTF Gang Sheet Builder", "", 0, "C", false, 0, "")
}

func drawTableHeader(pdf *fpdf.Fpdf, colWidths []float64, headers []string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	return y + 6
}

func drawTableRow(pdf *fpdf.Fpdf, colWidths []float64, cells []string, y float64, row int) float64 {
	if row%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	xPos := marginLeft
	for j, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[j], 5, cell, "1", 0, "L", true, 0, "")
		xPos += colWidths[j]
	}
	return y + 5
}

// truncate shortens s with an ellipsis until it fits into width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 30:
		return 8
	case minDim > 15:
		return 7
	default:
		return 6
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// canvasDPI returns the canvas resolution, or fallbackDPI when it is unknown.
func canvasDPI(c model.CanvasSpec) float64 {
	if c.DPI > 0 {
		return c.DPI
	}
	return fallbackDPI
}

// pxToMm converts pixels to millimetres at dpi.
func pxToMm(px int, dpi float64) float64 {
	return model.PxToCm(px, dpi) * 10
}
