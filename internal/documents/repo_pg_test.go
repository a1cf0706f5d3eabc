package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateDefaultsProviderAndName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID:         "doc-1",
		FileName:   "case.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
		StorageKey: "case.pdf",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.FileName,
			doc.FileName, // original_filename falls back to file_name
			doc.MimeType,
			doc.SizeBytes,
			"local",
			sqlmock.AnyArg(), // storage_key
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id, file_name").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "file_name", "original_filename", "mime_type", "size_bytes",
			"storage_provider", "storage_key", "extracted_text_key", "extracted_at", "created_at",
		}))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateExtraction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	extractedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE documents").
		WithArgs("case.pdf.extracted.txt", extractedAt, "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateExtraction(context.Background(), "doc-1", "case.pdf.extracted.txt", extractedAt); err != nil {
		t.Fatalf("UpdateExtraction: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
