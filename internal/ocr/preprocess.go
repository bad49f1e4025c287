package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// maxUpscale caps how far a small image is enlarged.
const maxUpscale = 4

// Preprocess converts img to grayscale, enlarges it when it is shorter than
// minHeight pixels and returns it PNG-encoded. A minHeight of zero disables
// scaling.
func Preprocess(img image.Image, minHeight int) ([]byte, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("preprocess: empty image")
	}

	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)

	var out image.Image = gray
	if factor := scaleFactor(b.Dy(), minHeight); factor > 1 {
		scaled := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), gray, gray.Bounds(), draw.Src, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("preprocess: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func scaleFactor(height, minHeight int) int {
	if minHeight <= 0 || height <= 0 || height >= minHeight {
		return 1
	}
	factor := (minHeight + height - 1) / height
	if factor > maxUpscale {
		factor = maxUpscale
	}
	return factor
}
