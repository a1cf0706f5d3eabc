package documents

import "errors"

var (
	// ErrNotFound means the document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput means the upload request was malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedType means the file is not a PDF, DOCX, or text document.
	ErrUnsupportedType = errors.New("unsupported document type")
)
