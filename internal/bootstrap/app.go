package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"coverletter/internal/extract"
	"coverletter/internal/generation"
	"coverletter/internal/ocr"
	"coverletter/internal/picker"
	"coverletter/internal/session"
	"coverletter/internal/shared/config"
	localstore "coverletter/internal/shared/storage/object/local"
	"coverletter/internal/shared/telemetry"
)

const stagingNamespace = "selections"

// App holds the wired client dependencies.
type App struct {
	Config    config.Config
	Store     *localstore.Store
	Extractor *extract.Extractor
	Generator generation.Client
	Picker    *picker.PathPicker
	Session   *session.Session
}

// Options overrides dependencies that are otherwise built from config.
type Options struct {
	// Source asks the user for a file. Required.
	Source picker.Source
	// Recognizer runs OCR for images. When nil, image imports fail with
	// extract.ErrImageUnreadable.
	Recognizer ocr.Recognizer
	// Generator defaults to an HTTP client for cfg.GenerationBaseURL.
	Generator generation.Client
}

// Build prepares the session and its collaborators.
func Build(cfg config.Config, opts Options) (*App, error) {
	if opts.Source == nil {
		return nil, errors.New("bootstrap: picker source is required")
	}
	telemetry.SetLevel(cfg.LogLevel)

	stagingDir := filepath.Join(cfg.StagingDir, "coverletter")
	if err := os.MkdirAll(stagingDir, 0o700); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	store := localstore.New(stagingDir)

	extractor := extract.New(extract.Options{
		Recognizer: opts.Recognizer,
		Languages:  cfg.OCRLanguages,
		MinHeight:  cfg.OCRMinHeight,
	})

	gen := opts.Generator
	if gen == nil {
		client, err := generation.NewHTTPClient(cfg.GenerationBaseURL, cfg.GenerationTimeout)
		if err != nil {
			return nil, err
		}
		gen = client
	}

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":         cfg.Env,
		"staging_dir": stagingDir,
		"base_url":    cfg.GenerationBaseURL,
		"languages":   cfg.OCRLanguages,
	})

	return &App{
		Config:    cfg,
		Store:     store,
		Extractor: extractor,
		Generator: gen,
		Picker:    picker.NewPathPicker(opts.Source, store, stagingNamespace),
		Session:   session.New(extractor, gen),
	}, nil
}

// Import runs the picker and feeds its result to the session, waiting for
// extraction to finish. Picker errors are recorded on the session and also
// returned.
func (a *App) Import(ctx context.Context) (session.Snapshot, error) {
	path, err := a.Picker.Pick(ctx)
	switch {
	case errors.Is(err, picker.ErrCancelled):
		a.Session.PickerCancelled()
		return a.Session.Snapshot(), err
	case err != nil:
		a.Session.PickerFailed(err)
		return a.Session.Snapshot(), err
	}
	a.Session.SelectFile(ctx, path)
	return a.Session.WaitExtraction(ctx)
}

// Close removes staged files.
func (a *App) Close(ctx context.Context) error {
	return a.Picker.Close(ctx)
}
