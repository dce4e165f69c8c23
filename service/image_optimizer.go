package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// DefaultPreviewWidth is the width in pixels of page thumbnails
const DefaultPreviewWidth = 400

// ScalePreview shrinks a page screenshot to width pixels, keeping the aspect
// ratio, and re-encodes it as PNG. Images already narrower are re-encoded
// unchanged.
func ScalePreview(imageData []byte, width int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var scaled image.Image = img
	if width > 0 && img.Bounds().Dx() > width {
		scaled = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}
	return buf.Bytes(), nil
}
