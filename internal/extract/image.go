package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"coverletter/internal/ocr"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read: %v", ErrImageUnreadable, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrImageUnreadable, err)
	}
	prepared, err := ocr.Preprocess(img, e.minHeight)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageUnreadable, err)
	}

	lines, err := e.recognizer.Recognize(ctx, ocr.Input{
		Image:     prepared,
		Languages: e.languages,
		Accuracy:  ocr.AccuracyAccurate,
	})
	if err != nil {
		return "", fmt.Errorf("%w: recognize: %v", ErrImageUnreadable, err)
	}

	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	return strings.Join(texts, "\n"), nil
}
