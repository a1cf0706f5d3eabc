package analyses

import (
	"context"
	"time"
)

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	ListByDocument(ctx context.Context, documentID string, limit, offset int) ([]Analysis, error)
	UpdateStatusResultAndError(ctx context.Context, analysisID, status string, result *DocumentResult, errorCode, errorMessage *string, retryable *bool, startedAt, completedAt *time.Time) error
}
