// Package extract produces plain text from a selected résumé file.
// Libraries used: github.com/ledongthuc/pdf (PDF text), github.com/pdfcpu/pdfcpu
// (relaxed repair of PDFs the text reader rejects) and an ocr.Recognizer for images.
package extract

import (
	"context"
	"fmt"
	"time"

	"coverletter/internal/async"
	"coverletter/internal/ocr"
	"coverletter/internal/shared/metrics"
	"coverletter/internal/shared/telemetry"
)

// Options configures an Extractor.
type Options struct {
	Recognizer ocr.Recognizer
	Languages  []string
	// MinHeight is the pixel height below which images are upscaled before OCR.
	MinHeight int
	// DisableRepair skips the pdfcpu repair pass for PDFs that fail to open.
	DisableRepair bool
}

// Extractor turns documents and images into plain text.
type Extractor struct {
	recognizer ocr.Recognizer
	languages  []string
	minHeight  int
	repair     bool
}

// New constructs an Extractor. A nil Recognizer fails every image extraction.
func New(opts Options) *Extractor {
	rec := opts.Recognizer
	if rec == nil {
		rec = ocr.PlaceholderRecognizer{}
	}
	langs := opts.Languages
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	return &Extractor{
		recognizer: rec,
		languages:  langs,
		minHeight:  opts.MinHeight,
		repair:     !opts.DisableRepair,
	}
}

// Extract runs the extraction matching kind and blocks until it completes.
func (e *Extractor) Extract(ctx context.Context, path string, kind Kind) (string, error) {
	if kind != KindDocument && kind != KindImage {
		return "", e.unsupported(path, kind)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	metrics.IncExtractionStarted()

	var (
		text string
		err  error
	)
	if kind == KindDocument {
		text, err = e.extractDocument(ctx, path)
	} else {
		text, err = e.extractImage(ctx, path)
	}

	fields := map[string]any{
		"path":        path,
		"kind":        kind.String(),
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	}
	if err != nil {
		metrics.IncExtractionFailed()
		fields["err"] = err
		telemetry.Error("extract.failed", fields)
		return "", err
	}
	metrics.IncExtractionCompleted()
	fields["chars"] = len(text)
	telemetry.Info("extract.complete", fields)
	return text, nil
}

// unsupported fails without touching the file or the context.
func (e *Extractor) unsupported(path string, kind Kind) error {
	metrics.IncExtractionStarted()
	metrics.IncExtractionFailed()
	err := fmt.Errorf("%w: %s", ErrUnsupportedFileType, path)
	telemetry.Error("extract.failed", map[string]any{"path": path, "kind": kind.String(), "err": err})
	return err
}

// Start begins extraction and returns its completion. Documents are extracted
// on the calling goroutine, so the returned future is already resolved.
// Images are recognized on a background goroutine. Unsupported files resolve
// immediately with ErrUnsupportedFileType.
func (e *Extractor) Start(ctx context.Context, path string, kind Kind) *async.Future[string] {
	switch kind {
	case KindImage:
		return e.ExtractAsync(ctx, path, kind)
	default:
		text, err := e.Extract(ctx, path, kind)
		return async.Resolved(text, err)
	}
}

// ExtractAsync runs Extract on a new goroutine.
func (e *Extractor) ExtractAsync(ctx context.Context, path string, kind Kind) *async.Future[string] {
	return async.Go(func() (string, error) {
		return e.Extract(ctx, path, kind)
	})
}
