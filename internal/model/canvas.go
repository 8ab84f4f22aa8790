package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCanvas is returned (wrapped) whenever a canvas configuration
// cannot be packed into: non-positive size, negative gap or missing DPI.
var ErrInvalidCanvas = errors.New("invalid canvas configuration")

// cmPerInch is the fixed conversion factor between centimetres and inches.
const cmPerInch = 2.54

// CmToPx converts a physical length in centimetres to whole pixels at the given
// resolution, rounding down. The small epsilon absorbs float noise so that
// exact multiples (e.g. 2.54cm at 300 DPI) do not lose a pixel.
func CmToPx(cm, dpi float64) int {
	return int(math.Floor(cm/cmPerInch*dpi + 1e-9))
}

// PxToCm converts a pixel length back to centimetres at the given resolution.
// Returns 0 when the resolution is unknown.
func PxToCm(px int, dpi float64) float64 {
	if dpi <= 0 {
		return 0
	}
	return float64(px) / dpi * cmPerInch
}

// CanvasSpec describes the packing area in pixels. It is derived once per run
// and never mutated.
type CanvasSpec struct {
	WidthPx       int     `json:"width_px"`
	HeightPx      int     `json:"height_px"`
	PaddingPx     int     `json:"padding_px"`     // Cutting gap reserved around every image
	AllowRotation bool    `json:"allow_rotation"` // Whether 90° rotation is permitted
	DPI           float64 `json:"dpi,omitempty"`  // Resolution the pixels were derived at; 0 = unknown
}

// Validate reports a descriptive error wrapping ErrInvalidCanvas when the
// canvas cannot hold anything. It never clamps.
func (c CanvasSpec) Validate() error {
	if c.WidthPx <= 0 {
		return fmt.Errorf("canvas width must be positive, got %dpx: %w", c.WidthPx, ErrInvalidCanvas)
	}
	if c.HeightPx <= 0 {
		return fmt.Errorf("canvas height must be positive, got %dpx: %w", c.HeightPx, ErrInvalidCanvas)
	}
	if c.PaddingPx < 0 {
		return fmt.Errorf("canvas padding must not be negative, got %dpx: %w", c.PaddingPx, ErrInvalidCanvas)
	}
	if c.DPI < 0 {
		return fmt.Errorf("canvas dpi must not be negative, got %g: %w", c.DPI, ErrInvalidCanvas)
	}
	return nil
}

// Area returns the canvas area in square pixels.
func (c CanvasSpec) Area() int64 {
	return int64(c.WidthPx) * int64(c.HeightPx)
}

// PhysicalCanvas is the user-facing description of a roll or sheet.
type PhysicalCanvas struct {
	WidthCm       float64 `json:"width_cm" yaml:"width_cm"`
	HeightCm      float64 `json:"height_cm" yaml:"height_cm"`
	DPI           float64 `json:"dpi" yaml:"dpi"`
	GapCm         float64 `json:"gap_cm" yaml:"gap_cm"`
	AllowRotation bool    `json:"allow_rotation" yaml:"allow_rotation"`
}

// ToCanvasSpec converts physical units to pixels and validates the result.
func (p PhysicalCanvas) ToCanvasSpec() (CanvasSpec, error) {
	if p.DPI <= 0 {
		return CanvasSpec{}, fmt.Errorf("dpi must be positive, got %g: %w", p.DPI, ErrInvalidCanvas)
	}
	if p.WidthCm <= 0 || p.HeightCm <= 0 {
		return CanvasSpec{}, fmt.Errorf("canvas size must be positive, got %gx%gcm: %w", p.WidthCm, p.HeightCm, ErrInvalidCanvas)
	}
	if p.GapCm < 0 {
		return CanvasSpec{}, fmt.Errorf("gap must not be negative, got %gcm: %w", p.GapCm, ErrInvalidCanvas)
	}

	spec := CanvasSpec{
		WidthPx:       CmToPx(p.WidthCm, p.DPI),
		HeightPx:      CmToPx(p.HeightCm, p.DPI),
		PaddingPx:     CmToPx(p.GapCm, p.DPI),
		AllowRotation: p.AllowRotation,
		DPI:           p.DPI,
	}
	if err := spec.Validate(); err != nil {
		return CanvasSpec{}, err
	}
	return spec, nil
}
