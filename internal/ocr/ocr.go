// Package ocr defines the text recognition contract used for image résumés
// and the preprocessing applied before recognition.
package ocr

import (
	"context"
	"errors"
)

// Accuracy selects the recognition trade-off.
type Accuracy int

const (
	// AccuracyAccurate runs full page layout analysis.
	AccuracyAccurate Accuracy = iota
	// AccuracyFast treats the image as a single uniform block.
	AccuracyFast
)

// Input is a single encoded image submitted for recognition.
type Input struct {
	// Image is a PNG or JPEG payload.
	Image     []byte
	Languages []string
	Accuracy  Accuracy
}

// Line is one recognized text line, in the order reported by the engine.
type Line struct {
	Text       string
	Confidence float64
}

// Recognizer turns an image into text lines.
type Recognizer interface {
	Recognize(ctx context.Context, in Input) ([]Line, error)
}

// ErrNotConfigured is returned by the placeholder recognizer.
var ErrNotConfigured = errors.New("ocr recognizer not configured")

// PlaceholderRecognizer is used when no OCR engine is available in the build.
type PlaceholderRecognizer struct{}

// Recognize returns ErrNotConfigured.
func (PlaceholderRecognizer) Recognize(ctx context.Context, in Input) ([]Line, error) {
	_ = ctx
	_ = in
	return nil, ErrNotConfigured
}
