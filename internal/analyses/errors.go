package analyses

import (
	"context"
	"errors"
	"strings"

	"causality-backend/internal/classifier"
)

var ErrNotFound = errors.New("not found")

const (
	ErrorCodeValidation            = "VALIDATION_ERROR"
	ErrorCodeExtraction            = "EXTRACTION_ERROR"
	ErrorCodeClassifierUnavailable = "CLASSIFIER_UNAVAILABLE"
	ErrorCodeClassifierTimeout     = "CLASSIFIER_TIMEOUT"
	ErrorCodeStorage               = "STORAGE_ERROR"
	ErrorCodeInternal              = "INTERNAL_ERROR"
)

// classifyFailure maps a pipeline error to a stage error code plus whether
// a retry could succeed without operator action.
func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeClassifierTimeout, true
	}
	if errors.Is(err, classifier.ErrUnavailable) {
		return ErrorCodeClassifierUnavailable, true
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") && strings.Contains(msg, "classif") {
		return ErrorCodeClassifierTimeout, true
	}
	if strings.Contains(msg, "extract") || strings.Contains(msg, "unsupported file type") {
		return ErrorCodeExtraction, false
	}
	if strings.Contains(msg, "validation") {
		return ErrorCodeValidation, false
	}
	if strings.Contains(msg, "document") || strings.Contains(msg, "storage") || strings.Contains(msg, "analysis result") || strings.Contains(msg, "set processing") {
		return ErrorCodeStorage, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
