package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"coverletter/internal/shared/telemetry"
)

func (e *Extractor) extractDocument(ctx context.Context, path string) (string, error) {
	text, err := readPDFText(path)
	if err == nil {
		return text, nil
	}
	if !e.repair {
		return "", fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	telemetry.Debug("extract.pdf.repair", map[string]any{"path": path, "err": err})
	repaired, cleanup, repairErr := repairPDF(ctx, path)
	if repairErr != nil {
		return "", fmt.Errorf("%w: %v (repair: %v)", ErrDocumentUnreadable, err, repairErr)
	}
	defer cleanup()

	text, err = readPDFText(repaired)
	if err != nil {
		return "", fmt.Errorf("%w: repaired copy: %v", ErrDocumentUnreadable, err)
	}
	return text, nil
}

// readPDFText concatenates each page's text followed by a newline. Pages
// without a text layer, or whose text cannot be decoded, are skipped.
func readPDFText(path string) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("pdf reader panic: %v", rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}
