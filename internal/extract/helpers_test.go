package extract

import (
	"context"
	"sync"
	"testing"

	"coverletter/internal/extract/extracttest"
	"coverletter/internal/ocr"
)

func buildPDF(pages []string) []byte {
	return extracttest.BuildPDF(pages...)
}

func writeFile(t *testing.T, name string, data []byte) string {
	return extracttest.WriteFile(t, name, data)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	return extracttest.PNG(w, h)
}

type fakeRecognizer struct {
	mu    sync.Mutex
	lines []ocr.Line
	err   error
	block chan struct{}
	calls []ocr.Input
}

func (f *fakeRecognizer) Recognize(ctx context.Context, in ocr.Input) ([]ocr.Line, error) {
	f.mu.Lock()
	f.calls = append(f.calls, in)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.lines, f.err
}

func (f *fakeRecognizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
