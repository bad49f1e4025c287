// Package tesseract implements ocr.Recognizer with the gosseract bindings to
// the Tesseract engine. Building it requires the tesseract and leptonica
// development headers.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"coverletter/internal/ocr"
)

// Engine recognizes text lines with a fresh gosseract client per call.
type Engine struct {
	tessdataPrefix string
	clientFactory  func() *gosseract.Client
}

// New constructs an Engine. An empty tessdataPrefix uses the library default.
func New(tessdataPrefix string) *Engine {
	return &Engine{tessdataPrefix: tessdataPrefix, clientFactory: gosseract.NewClient}
}

// Recognize runs Tesseract over the full image and returns its text lines in
// reading order. Blank lines are dropped.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) ([]ocr.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := e.clientFactory()
	defer c.Close()

	if e.tessdataPrefix != "" {
		if err := c.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetPageSegMode(pageSegMode(in.Accuracy)); err != nil {
		return nil, fmt.Errorf("set page seg mode: %w", err)
	}
	if err := c.SetImageFromBytes(in.Image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	lines := make([]ocr.Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, ocr.Line{Text: text, Confidence: b.Confidence / 100.0})
	}
	return lines, nil
}

func pageSegMode(a ocr.Accuracy) gosseract.PageSegMode {
	if a == ocr.AccuracyFast {
		return gosseract.PSM_SINGLE_BLOCK
	}
	return gosseract.PSM_AUTO
}

var _ ocr.Recognizer = (*Engine)(nil)
