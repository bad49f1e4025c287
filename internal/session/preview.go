package session

// PreviewKind tags the variant held by a Preview.
type PreviewKind int

const (
	PreviewNone PreviewKind = iota
	PreviewDocument
	PreviewImage
	PreviewUnsupported
)

func (k PreviewKind) String() string {
	switch k {
	case PreviewDocument:
		return "document"
	case PreviewImage:
		return "image"
	case PreviewUnsupported:
		return "unsupported"
	default:
		return "none"
	}
}

// Preview describes what the shell should show for the selected file.
// Path is set only for the document and image variants.
type Preview struct {
	Kind PreviewKind
	Path string
}

// PreviewRenderer is implemented by shells that can display a preview.
type PreviewRenderer interface {
	RenderNone()
	RenderDocument(path string)
	RenderImage(path string)
	RenderUnsupported()
}

// Render dispatches p to the matching renderer method.
func (p Preview) Render(r PreviewRenderer) {
	switch p.Kind {
	case PreviewDocument:
		r.RenderDocument(p.Path)
	case PreviewImage:
		r.RenderImage(p.Path)
	case PreviewUnsupported:
		r.RenderUnsupported()
	default:
		r.RenderNone()
	}
}
