package documents

import "time"

// Document is an uploaded medical source document (case report, literature
// article) held in object storage.
type Document struct {
	ID               string
	FileName         string
	OriginalFilename string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
}
