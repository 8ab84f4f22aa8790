package model

import "math"

// RollUsageEstimate holds the material consumption of one packed layout.
type RollUsageEstimate struct {
	UsedLengthPx   int     `json:"used_length_px"`
	UsedLengthCm   float64 `json:"used_length_cm"`
	UsedLengthM    float64 `json:"used_length_m"`
	BilledLengthCm float64 `json:"billed_length_cm"` // Used length rounded up to whole centimetres
	Efficiency     float64 `json:"efficiency"`       // Percentage of the consumed roll covered by images
	ImageAreaCm2   float64 `json:"image_area_cm2"`   // Total printed area
	PricePerMetre  float64 `json:"price_per_metre"`  // Price used for estimation
	EstimatedCost  float64 `json:"estimated_cost"`   // Billed length times price, 0 without pricing
}

// EstimateRollUsage computes how much roll a layout consumes and what it costs.
// Without a known DPI only the pixel length and efficiency are filled in.
func EstimateRollUsage(result PackResult, pricePerMetre float64) RollUsageEstimate {
	est := RollUsageEstimate{
		UsedLengthPx:  result.UsedLengthPx(),
		Efficiency:    result.Efficiency(),
		PricePerMetre: pricePerMetre,
	}

	dpi := result.Canvas.DPI
	if dpi <= 0 {
		return est
	}

	est.UsedLengthCm = PxToCm(est.UsedLengthPx, dpi)
	est.UsedLengthM = est.UsedLengthCm / 100.0
	est.BilledLengthCm = math.Ceil(est.UsedLengthCm - 1e-9)

	pxPerCm := dpi / cmPerInch
	est.ImageAreaCm2 = float64(result.UsedArea()) / (pxPerCm * pxPerCm)

	if pricePerMetre > 0 {
		est.EstimatedCost = est.BilledLengthCm / 100.0 * pricePerMetre
	}
	return est
}
