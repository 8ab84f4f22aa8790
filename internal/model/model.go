package model

import (
	"image"

	"github.com/google/uuid"
)

// SourceAsset is one input image as handed over by the caller: an identifier
// plus an undecoded reference. Either Data or Path is set; Data wins.
type SourceAsset struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path,omitempty"`
	Data  []byte `json:"-"`
}

func NewSourceAsset(label, path string) SourceAsset {
	return SourceAsset{
		ID:    uuid.New().String()[:8],
		Label: label,
		Path:  path,
	}
}

// NewSourceAssetFromBytes wraps already-loaded image bytes.
func NewSourceAssetFromBytes(label string, data []byte) SourceAsset {
	return SourceAsset{
		ID:    uuid.New().String()[:8],
		Label: label,
		Data:  data,
	}
}

// PreparedItem is an asset after decoding, trimming and (conditionally)
// scaling. Width and Height are the dimensions used for packing;
// OriginalWidth and OriginalHeight are the trimmed, pre-scale dimensions.
type PreparedItem struct {
	ID             string
	Label          string
	Image          image.Image
	Width          int
	Height         int
	OriginalWidth  int
	OriginalHeight int
	Trimmed        bool
	Scaled         bool
}

// MaxSide returns the longer of the two packing dimensions.
func (p PreparedItem) MaxSide() int {
	if p.Width > p.Height {
		return p.Width
	}
	return p.Height
}

// MinSide returns the shorter of the two packing dimensions.
func (p PreparedItem) MinSide() int {
	if p.Width < p.Height {
		return p.Width
	}
	return p.Height
}

// Area returns the packing area in square pixels.
func (p PreparedItem) Area() int64 {
	return int64(p.Width) * int64(p.Height)
}

// Placement is the position chosen by the packer for one request.
type Placement struct {
	X       int  `json:"x"`       // Pixels from the left edge
	Y       int  `json:"y"`       // Pixels from the top edge
	Rotated bool `json:"rotated"` // Whether the item was turned 90°
}

// PackedItem is the final placed record. Width and Height are the footprint
// on the canvas: post-scale and already swapped when Rotated.
type PackedItem struct {
	ID             string      `json:"id"`
	Label          string      `json:"label"`
	X              int         `json:"x"`
	Y              int         `json:"y"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	Rotated        bool        `json:"rotated"`
	OriginalWidth  int         `json:"original_width"`
	OriginalHeight int         `json:"original_height"`
	Image          image.Image `json:"-"`
}

// Right returns the x coordinate just past the image.
func (p PackedItem) Right() int { return p.X + p.Width }

// Bottom returns the y coordinate just past the image.
func (p PackedItem) Bottom() int { return p.Y + p.Height }

// Area returns the footprint area in square pixels.
func (p PackedItem) Area() int64 {
	return int64(p.Width) * int64(p.Height)
}

// Bounds returns the footprint as an image rectangle.
func (p PackedItem) Bounds() image.Rectangle {
	return image.Rect(p.X, p.Y, p.Right(), p.Bottom())
}

// Downscaled reports whether the footprint is smaller than the source pixels,
// i.e. the image will print at a lower resolution than it was supplied at.
func (p PackedItem) Downscaled() bool {
	w, h := p.Width, p.Height
	if p.Rotated {
		w, h = h, w
	}
	return w < p.OriginalWidth || h < p.OriginalHeight
}

// EffectiveDPI returns the resolution the source pixels end up printed at
// when the canvas is printed at canvasDPI. Callers use it for quality warnings.
func (p PackedItem) EffectiveDPI(canvasDPI float64) float64 {
	w := p.Width
	if p.Rotated {
		w = p.Height
	}
	if w <= 0 || canvasDPI <= 0 {
		return 0
	}
	return canvasDPI * float64(p.OriginalWidth) / float64(w)
}

// Failure reasons reported in FailureRecord.Reason.
const (
	ReasonNoSpace     = "no space"
	ReasonDecodeError = "decode error"
)

// FailureRecord describes an asset that did not make it onto the canvas.
type FailureRecord struct {
	AssetID string `json:"asset_id"`
	Label   string `json:"label"`
	Reason  string `json:"reason"`
	Detail  string `json:"detail,omitempty"`
}

// PackResult holds the full outcome of one pipeline run.
type PackResult struct {
	Canvas CanvasSpec      `json:"canvas"`
	Packed []PackedItem    `json:"packed"`
	Failed []FailureRecord `json:"failed"`
}

// UsedLengthPx returns how far down the canvas the layout reaches, i.e. the
// bottom edge of the lowest image. Zero when nothing was placed.
func (r PackResult) UsedLengthPx() int {
	var maxBottom int
	for _, p := range r.Packed {
		if b := p.Bottom(); b > maxBottom {
			maxBottom = b
		}
	}
	return maxBottom
}

// UsedLengthCm converts UsedLengthPx using the canvas DPI.
func (r PackResult) UsedLengthCm() float64 {
	return PxToCm(r.UsedLengthPx(), r.Canvas.DPI)
}

// UsedArea returns the total area covered by placed images.
func (r PackResult) UsedArea() int64 {
	var total int64
	for _, p := range r.Packed {
		total += p.Area()
	}
	return total
}

// Efficiency returns the usage percentage of the consumed part of the roll
// (full width times used length).
func (r PackResult) Efficiency() float64 {
	consumed := int64(r.Canvas.WidthPx) * int64(r.UsedLengthPx())
	if consumed == 0 {
		return 0
	}
	return float64(r.UsedArea()) / float64(consumed) * 100.0
}

// FailedByReason counts failures with the given reason.
func (r PackResult) FailedByReason(reason string) int {
	n := 0
	for _, f := range r.Failed {
		if f.Reason == reason {
			n++
		}
	}
	return n
}
