package imageprep

import (
	"image"

	"github.com/disintegration/imaging"
)

// TrimBounds scans every pixel once and returns the tightest rectangle that
// contains all content pixels. A pixel is content when its 8-bit alpha is
// strictly greater than threshold, so threshold 0 means "any alpha at all".
// found is false when no pixel qualifies.
func TrimBounds(img image.Image, threshold uint8) (box image.Rectangle, found bool) {
	b := img.Bounds()
	if b.Empty() {
		return image.Rectangle{}, false
	}

	switch src := img.(type) {
	case *image.NRGBA:
		return scanAlphaBytes(src.Pix, src.Stride, src.Rect, 4, 3, threshold)
	case *image.RGBA:
		return scanAlphaBytes(src.Pix, src.Stride, src.Rect, 4, 3, threshold)
	case *image.Alpha:
		return scanAlphaBytes(src.Pix, src.Stride, src.Rect, 1, 0, threshold)
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		// Always opaque
		return b, true
	}

	left, top, right, bottom := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if uint8(a>>8) <= threshold {
				continue
			}
			if x < left {
				left = x
			}
			if x > right {
				right = x
			}
			if y < top {
				top = y
			}
			bottom = y
		}
	}
	if right < left {
		return image.Rectangle{}, false
	}
	return image.Rect(left, top, right+1, bottom+1), true
}

// scanAlphaBytes finds the content box of a packed pixel buffer where each
// pixel is bpp bytes wide and its alpha sits at offset alphaOff.
func scanAlphaBytes(pix []byte, stride int, rect image.Rectangle, bpp, alphaOff int, threshold uint8) (image.Rectangle, bool) {
	w, h := rect.Dx(), rect.Dy()
	left, top, right, bottom := w, h, -1, -1
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*bpp]
		for x := 0; x < w; x++ {
			if row[x*bpp+alphaOff] <= threshold {
				continue
			}
			if x < left {
				left = x
			}
			if x > right {
				right = x
			}
			if y < top {
				top = y
			}
			bottom = y
		}
	}
	if right < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(left, top, right+1, bottom+1).Add(rect.Min), true
}

// Trim crops img to its content box. When there is no content pixel, or the
// content already fills the image, img itself is returned unchanged. The
// input is never modified; a crop is always a fresh bitmap.
func Trim(img image.Image, threshold uint8) image.Image {
	box, found := TrimBounds(img, threshold)
	if !found || box == img.Bounds() {
		return img
	}
	return imaging.Crop(img, box)
}
