// Package picker stages user-chosen files so extraction never reads from a
// location the user may move or delete while work is in flight.
package picker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"coverletter/internal/shared/storage/object"
	"coverletter/internal/shared/telemetry"
)

// ErrCancelled is returned when the user dismisses the picker.
var ErrCancelled = errors.New("selection cancelled")

// Picker yields the path of a file ready for extraction.
type Picker interface {
	Pick(ctx context.Context) (string, error)
}

// Source asks the user for a file. An empty path means the user cancelled.
type Source func(ctx context.Context) (string, error)

// StaticSource always offers path.
func StaticSource(path string) Source {
	return func(context.Context) (string, error) {
		return path, nil
	}
}

// Store is an object store whose objects can be read by path.
type Store interface {
	object.ObjectStore
	object.PathResolver
}

// PathPicker copies the chosen file into a staging store and returns the
// staged path. Only the most recent staged copy is kept.
type PathPicker struct {
	source    Source
	store     Store
	namespace string

	mu      sync.Mutex
	current string
}

// NewPathPicker returns a picker staging files from source into store under
// namespace.
func NewPathPicker(source Source, store Store, namespace string) *PathPicker {
	return &PathPicker{source: source, store: store, namespace: namespace}
}

// Pick asks the source for a file and stages it. The staged file keeps the
// original base name as its suffix so extension classification is unchanged.
func (p *PathPicker) Pick(ctx context.Context) (string, error) {
	src, err := p.source(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(src) == "" {
		return "", ErrCancelled
	}

	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open selection: %w", err)
	}
	defer f.Close()

	key, size, mimeType, err := p.store.Save(ctx, p.namespace, filepath.Base(src), f)
	if err != nil {
		return "", fmt.Errorf("stage selection: %w", err)
	}
	staged, err := p.store.Path(key)
	if err != nil {
		_ = p.store.Remove(ctx, key)
		return "", fmt.Errorf("resolve staged selection: %w", err)
	}

	p.mu.Lock()
	previous := p.current
	p.current = key
	p.mu.Unlock()

	if previous != "" {
		if err := p.store.Remove(ctx, previous); err != nil {
			telemetry.Error("picker.cleanup_failed", map[string]any{"key": previous, "err": err})
		}
	}

	telemetry.Debug("picker.staged", map[string]any{
		"source":    src,
		"key":       key,
		"sizeBytes": size,
		"mimeType":  mimeType,
	})
	return staged, nil
}

// Close removes the staged copy, if any.
func (p *PathPicker) Close(ctx context.Context) error {
	p.mu.Lock()
	key := p.current
	p.current = ""
	p.mu.Unlock()
	if key == "" {
		return nil
	}
	return p.store.Remove(ctx, key)
}
var _ Picker = (*PathPicker)(nil)
