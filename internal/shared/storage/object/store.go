package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for staging and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, namespace string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Remove(ctx context.Context, storageKey string) error
}

// PathResolver is implemented by stores whose objects live on the local
// filesystem and can be handed to path-based readers.
type PathResolver interface {
	Path(storageKey string) (string, error)
}
