package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo is a Postgres-backed Repo.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
    id,
    document_id,
    status,
    threshold,
    marker_boost,
    preprocess,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.DocumentID,
		analysis.Status,
		analysis.Threshold,
		analysis.MarkerBoost,
		analysis.Preprocess,
		analysis.CreatedAt,
	)
	return err
}

const selectColumns = `
SELECT id, document_id, status, threshold, marker_boost, preprocess, result, error_code, error_message, retryable, started_at, completed_at, created_at
FROM analyses`

func scanAnalysis(scan func(dest ...any) error) (Analysis, error) {
	var analysis Analysis
	var result []byte
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var retryable sql.NullBool
	var startedAt sql.NullTime
	var completedAt sql.NullTime
	err := scan(
		&analysis.ID,
		&analysis.DocumentID,
		&analysis.Status,
		&analysis.Threshold,
		&analysis.MarkerBoost,
		&analysis.Preprocess,
		&result,
		&errorCode,
		&errorMessage,
		&retryable,
		&startedAt,
		&completedAt,
		&analysis.CreatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	if len(result) > 0 {
		parsed := &DocumentResult{}
		if err := json.Unmarshal(result, parsed); err != nil {
			return Analysis{}, fmt.Errorf("decode analysis result: %w", err)
		}
		analysis.Result = parsed
	}
	if errorCode.Valid {
		analysis.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		analysis.ErrorMsg = errorMessage.String
	}
	if retryable.Valid {
		analysis.Retryable = retryable.Bool
	}
	if startedAt.Valid {
		analysis.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		analysis.CompletedAt = &completedAt.Time
	}
	return analysis, nil
}

// GetByID fetches an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = selectColumns + `
WHERE id = $1
LIMIT 1`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// ListByDocument returns a document's analyses ordered newest-first.
func (r *PGRepo) ListByDocument(ctx context.Context, documentID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = selectColumns + `
WHERE document_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, documentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Analysis, 0)
	for rows.Next() {
		analysis, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

// UpdateStatusResultAndError applies a status transition with its payload.
// Nil fields are left untouched.
func (r *PGRepo) UpdateStatusResultAndError(ctx context.Context, analysisID, status string, result *DocumentResult, errorCode, errorMessage *string, retryable *bool, startedAt, completedAt *time.Time) error {
	const query = `
UPDATE analyses
SET status = $1,
    result = COALESCE($2, result),
    error_code = COALESCE($3, error_code),
    error_message = COALESCE($4, error_message),
    retryable = COALESCE($5, retryable),
    started_at = COALESCE($6, started_at),
    completed_at = COALESCE($7, completed_at)
WHERE id = $8`

	var resultJSON any
	if result != nil {
		encoded, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode analysis result: %w", err)
		}
		resultJSON = encoded
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		status,
		resultJSON,
		errorCode,
		errorMessage,
		retryable,
		startedAt,
		completedAt,
		analysisID,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
