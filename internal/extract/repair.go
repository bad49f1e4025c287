package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// repairPDF rewrites path through pdfcpu in relaxed validation mode, which
// rebuilds broken cross-reference tables. The caller must invoke cleanup.
func repairPDF(ctx context.Context, path string) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	disableConfigDir.Do(api.DisableConfigDir)

	tmpDir, err := os.MkdirTemp("", "coverletter-repair-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	out := filepath.Join(tmpDir, "repaired.pdf")
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	if err := optimizeFile(path, out, cfg); err != nil {
		cleanup()
		return "", nil, err
	}
	return out, cleanup, nil
}

// optimizeFile guards against pdfcpu panicking on hostile input.
func optimizeFile(in, out string, cfg *model.Configuration) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdfcpu panic: %v", rec)
		}
	}()
	return api.OptimizeFile(in, out, cfg)
}
