package extract

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrDocumentUnreadable  = errors.New("document unreadable")
	ErrImageUnreadable     = errors.New("image unreadable")
)

const (
	PlaceholderUnsupported = "Unsupported file type."
	PlaceholderDocument    = "Unable to extract text from PDF."
	PlaceholderImage       = "Unable to extract text from image."
)

// Placeholder returns the user-facing text shown in place of extracted text
// when extraction fails.
func Placeholder(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFileType):
		return PlaceholderUnsupported
	case errors.Is(err, ErrDocumentUnreadable):
		return PlaceholderDocument
	case errors.Is(err, ErrImageUnreadable):
		return PlaceholderImage
	default:
		return "Unable to extract text: " + err.Error()
	}
}
