package documents

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"causality-backend/internal/extract"
	"causality-backend/internal/shared/metrics"
	"causality-backend/internal/shared/storage/object"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return Document{}, ErrUnsupportedType
	}

	id := uuid.NewString()
	storageKey, size, mimeType, err := s.Store.Save(ctx, id, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:               id,
		FileName:         fileName,
		OriginalFilename: fileName,
		MimeType:         mimeType,
		SizeBytes:        size,
		StorageProvider:  "local",
		StorageKey:       storageKey,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	metrics.IncDocumentUploaded()
	return doc, nil
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, documentID)
}

// List returns documents newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Document, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Text returns the document's extracted text, extracting and caching it on
// first use. Empty text is valid; scanned PDFs often have no text layer.
func (s *Service) Text(ctx context.Context, documentID string) (string, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return "", err
	}

	if doc.ExtractedTextKey != "" {
		body, err := s.Store.Open(ctx, doc.ExtractedTextKey)
		if err == nil {
			defer body.Close()
			raw, readErr := io.ReadAll(body)
			if readErr == nil {
				return string(raw), nil
			}
		}
		// fall through and re-extract when the cached copy is unreadable
	}

	text, err := extract.Text(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if err := s.Repo.UpdateExtraction(ctx, doc.ID, doc.StorageKey+".extracted.txt", now); err != nil {
		return "", err
	}
	return text, nil
}
