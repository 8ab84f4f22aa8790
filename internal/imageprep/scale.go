package imageprep

import (
	"image"

	"github.com/piwi3910/GangSheet/internal/model"
)

// ScaleToFit shrinks the packing dimensions of item uniformly so that its
// shorter side equals maxDim. It only acts when the shorter side exceeds
// maxDim and never enlarges. Dimensions are floored in exact integer
// arithmetic. The pixel buffer is left alone; resampling is up to whoever
// renders the layout.
func ScaleToFit(item model.PreparedItem, maxDim int) model.PreparedItem {
	short := item.MinSide()
	if maxDim <= 0 || short <= maxDim {
		return item
	}

	item.Width = scaleDim(item.Width, maxDim, short)
	item.Height = scaleDim(item.Height, maxDim, short)
	item.Scaled = true
	return item
}

// scaleDim returns floor(dim * num / den), at least 1.
func scaleDim(dim, num, den int) int {
	v := int(int64(dim) * int64(num) / int64(den))
	if v < 1 {
		v = 1
	}
	return v
}

// Prepare builds the packing record for a decoded asset, trimming
// transparent margins first when trim is set.
func Prepare(asset model.SourceAsset, img image.Image, trim bool, threshold uint8) model.PreparedItem {
	item := model.PreparedItem{
		ID:    asset.ID,
		Label: asset.Label,
		Image: img,
	}
	if trim {
		trimmed := Trim(img, threshold)
		item.Trimmed = trimmed.Bounds() != img.Bounds()
		item.Image = trimmed
	}
	b := item.Image.Bounds()
	item.Width, item.Height = b.Dx(), b.Dy()
	item.OriginalWidth, item.OriginalHeight = item.Width, item.Height
	return item
}
