package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	analyses map[string]Analysis
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{analyses: make(map[string]Analysis)}
}

var _ Repo = (*MemoryRepo)(nil)

// Create stores a new analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses[analysis.ID] = analysis
	return nil
}

// GetByID fetches an analysis by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.analyses[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// ListByDocument returns a document's analyses ordered newest-first.
func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID string, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Analysis, 0)
	for _, analysis := range r.analyses {
		if analysis.DocumentID == documentID {
			out = append(out, analysis)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Analysis{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// UpdateStatusResultAndError applies a status transition with its payload.
func (r *MemoryRepo) UpdateStatusResultAndError(ctx context.Context, analysisID, status string, result *DocumentResult, errorCode, errorMessage *string, retryable *bool, startedAt, completedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.analyses[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.Status = status
	if result != nil {
		analysis.Result = result
	}
	if errorCode != nil {
		analysis.ErrorCode = *errorCode
	}
	if errorMessage != nil {
		analysis.ErrorMsg = *errorMessage
	}
	if retryable != nil {
		analysis.Retryable = *retryable
	}
	if startedAt != nil {
		analysis.StartedAt = startedAt
	}
	if completedAt != nil {
		analysis.CompletedAt = completedAt
	}
	r.analyses[analysisID] = analysis
	return nil
}
