package extract

import (
	"path/filepath"
	"strings"
)

// Kind is the classification of a selected file.
type Kind int

const (
	KindUnsupported Kind = iota
	KindDocument
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindImage:
		return "image"
	default:
		return "unsupported"
	}
}

// Classify maps a path to a Kind by its extension, ignoring case.
func Classify(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindDocument
	case ".png", ".jpg", ".jpeg":
		return KindImage
	default:
		return KindUnsupported
	}
}
