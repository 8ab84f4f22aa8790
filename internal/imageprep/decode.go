// Package imageprep turns source assets into packable items: decoding,
// transparent-margin trimming and fit-to-width scaling.
package imageprep

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/piwi3910/GangSheet/internal/model"
)

// ErrNoImageData is returned when an asset carries neither bytes nor a path.
var ErrNoImageData = errors.New("asset has no image data")

// Decoder loads the pixels behind a source asset. It is invoked once per
// asset per run.
type Decoder interface {
	Decode(asset model.SourceAsset) (image.Image, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(asset model.SourceAsset) (image.Image, error)

func (f DecoderFunc) Decode(asset model.SourceAsset) (image.Image, error) {
	return f(asset)
}

// FileDecoder decodes PNG, JPEG, GIF, BMP, TIFF and WebP from an asset's
// in-memory bytes or, failing that, its file path.
type FileDecoder struct {
	// AutoOrientation applies the EXIF orientation tag of JPEG files.
	AutoOrientation bool
}

// NewFileDecoder returns a decoder with EXIF auto-orientation enabled.
func NewFileDecoder() FileDecoder {
	return FileDecoder{AutoOrientation: true}
}

func (d FileDecoder) Decode(asset model.SourceAsset) (image.Image, error) {
	var r io.Reader
	switch {
	case len(asset.Data) > 0:
		r = bytes.NewReader(asset.Data)
	case asset.Path != "":
		f, err := os.Open(asset.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		r = f
	default:
		return nil, ErrNoImageData
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(d.AutoOrientation))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("image has empty bounds %v", b)
	}
	return img, nil
}
