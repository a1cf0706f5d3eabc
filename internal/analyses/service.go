package analyses

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"causality-backend/internal/classifier"
	"causality-backend/internal/documents"
	"causality-backend/internal/enrich"
	"causality-backend/internal/entities"
	"causality-backend/internal/scoring"
	"causality-backend/internal/segment"
	"causality-backend/internal/shared/metrics"
	"causality-backend/internal/shared/telemetry"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	maxTopFindings    = 10
	findingTextLength = 150
)

// Options are per-analysis overrides of the scoring configuration.
type Options struct {
	Threshold   *float64 `json:"threshold,omitempty"`
	MarkerBoost *bool    `json:"markerBoost,omitempty"`
	Preprocess  *bool    `json:"preprocess,omitempty"`
}

// Service contains business logic for analyses.
type Service struct {
	Repo       Repo
	Docs       *documents.Service
	Classifier classifier.Client
	Config     scoring.Config
	Extractor  *entities.Extractor
	Enricher   *enrich.Client
}

func (s *Service) extractor() *entities.Extractor {
	if s.Extractor == nil {
		return entities.NewExtractor()
	}
	return s.Extractor
}

func (s *Service) resolveConfig(opts Options) scoring.Config {
	cfg := s.Config
	if cfg.Threshold == 0 {
		cfg = scoring.DefaultConfig()
	}
	if opts.Threshold != nil {
		cfg.Threshold = *opts.Threshold
	}
	if opts.MarkerBoost != nil {
		cfg.MarkerBoost = *opts.MarkerBoost
	}
	if opts.Preprocess != nil {
		cfg.Preprocess = *opts.Preprocess
	}
	return cfg
}

// Create enqueues a new analysis and kicks off asynchronous completion.
func (s *Service) Create(ctx context.Context, documentID string, opts Options) (Analysis, error) {
	if documentID == "" {
		return Analysis{}, errors.New("documentID is required")
	}
	if opts.Threshold != nil && (*opts.Threshold <= 0 || *opts.Threshold >= 1) {
		return Analysis{}, errors.New("threshold must be in (0, 1)")
	}

	if _, err := s.Docs.Get(ctx, documentID); err != nil {
		return Analysis{}, err
	}

	cfg := s.resolveConfig(opts)
	analysis := Analysis{
		ID:          uuid.NewString(),
		DocumentID:  documentID,
		Status:      StatusQueued,
		Threshold:   cfg.Threshold,
		MarkerBoost: cfg.MarkerBoost,
		Preprocess:  cfg.Preprocess,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	go s.completeAsync(backgroundWithRequestID(ctx), analysis.ID)

	return analysis, nil
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, errors.New("analysisID is required")
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// ListByDocument returns a document's analyses ordered newest-first.
func (s *Service) ListByDocument(ctx context.Context, documentID string, limit, offset int) ([]Analysis, error) {
	if documentID == "" {
		return nil, errors.New("documentID is required")
	}
	return s.Repo.ListByDocument(ctx, documentID, limit, offset)
}

func (s *Service) completeAsync(ctx context.Context, analysisID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failAnalysis(ctx, analysisID, "", fmt.Errorf("panic: %v", r), nil)
		}
	}()
	startedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatusResultAndError(ctx, analysisID, StatusProcessing, nil, nil, nil, nil, &startedAt, nil); err != nil {
		s.failAnalysis(ctx, analysisID, "", fmt.Errorf("set processing failed: %w", err), &startedAt)
		return
	}

	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		s.failAnalysis(ctx, analysisID, "", fmt.Errorf("analysis lookup: %w", err), &startedAt)
		return
	}
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"document_id":       analysis.DocumentID,
		"analysis_id":       analysis.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	if s.Docs == nil || s.Classifier == nil {
		s.failAnalysis(ctx, analysisID, analysis.DocumentID, errors.New("missing pipeline dependencies"), &startedAt)
		return
	}

	text, err := s.Docs.Text(ctx, analysis.DocumentID)
	if err != nil {
		s.failAnalysis(ctx, analysisID, analysis.DocumentID, fmt.Errorf("document %s: extract text: %w", analysis.DocumentID, err), &startedAt)
		return
	}

	cfg := scoring.Config{
		Threshold:   analysis.Threshold,
		MarkerBoost: analysis.MarkerBoost,
		Preprocess:  analysis.Preprocess,
	}
	result, err := s.AnalyzeText(ctx, text, cfg)
	if err != nil {
		s.failAnalysis(ctx, analysisID, analysis.DocumentID, fmt.Errorf("score document: %w", err), &startedAt)
		return
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatusResultAndError(ctx, analysisID, StatusCompleted, &result, nil, nil, nil, nil, &completedAt); err != nil {
		s.failAnalysis(ctx, analysisID, analysis.DocumentID, fmt.Errorf("set analysis result failed: %w", err), &startedAt)
		return
	}
	metrics.IncAnalysisCompleted()
	metrics.AddSentencesClassified(result.TotalSentences)
	metrics.ObserveAnalysisDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("analysis.status", map[string]any{
		"request_id":           requestIDFromContext(ctx),
		"document_id":          analysis.DocumentID,
		"analysis_id":          analysis.ID,
		"status":               StatusCompleted,
		"status_transition":    "processing->completed",
		"duration_ms":          durationMs(&startedAt, &completedAt),
		"total_sentences":      result.TotalSentences,
		"related_count":        result.RelatedCount,
		"classifier_available": result.ClassifierAvailable,
	})
}

// AnalyzeText runs the full pipeline on raw document text: segmentation,
// entity extraction, per-sentence scoring, aggregation, and enrichment.
// A classifier outage degrades to the lexical fallback instead of failing.
func (s *Service) AnalyzeText(ctx context.Context, text string, cfg scoring.Config) (DocumentResult, error) {
	if cfg.Threshold == 0 {
		cfg = s.resolveConfig(Options{})
	}
	extractor := s.extractor()
	sentences := segment.Sentences(segment.HeuristicSplitter{}, text)

	scorer := scoring.New(s.Classifier, cfg)
	available := true

	results := make([]SentenceResult, 0, len(sentences))
	for _, sent := range sentences {
		assessment, err := scorer.Score(ctx, sent.Text)
		if err != nil {
			if !errors.Is(err, classifier.ErrUnavailable) {
				return DocumentResult{}, err
			}
			// Model sidecar is down: rescore everything lexically so the
			// document is judged by one consistent scorer.
			telemetry.Error("analysis.classifier_unavailable", map[string]any{
				"request_id": requestIDFromContext(ctx),
				"error":      sanitizeError(err),
			})
			metrics.IncClassifierFallback()
			available = false
			scorer = scoring.New(classifier.Fallback{}, cfg)
			results = results[:0]
			break
		}
		results = append(results, sentenceResult(extractor, sent, assessment))
	}
	if !available {
		for _, sent := range sentences {
			assessment, err := scorer.Score(ctx, sent.Text)
			if err != nil {
				return DocumentResult{}, err
			}
			results = append(results, sentenceResult(extractor, sent, assessment))
		}
	}

	relatedCount := 0
	for _, r := range results {
		if r.Label == scoring.Related {
			relatedCount++
		}
	}

	result := DocumentResult{
		Sentences:           results,
		TotalSentences:      len(results),
		RelatedCount:        relatedCount,
		Drugs:               extractor.DrugNames(text),
		Events:              extractor.EventNames(text),
		Stats:               Aggregate(results),
		Demographics:        entities.ExtractDemographics(text),
		Conditions:          entities.ExtractConditions(text),
		Factors:             entities.ExtractContextualFactors(text),
		Related:             relatedCount > 0,
		TopFindings:         topFindings(results),
		ClassifierAvailable: available,
	}
	if result.TotalSentences > 0 {
		result.DocumentConfidence = float64(relatedCount) / float64(result.TotalSentences)
	}

	if s.Enricher != nil && len(result.Stats) > 0 {
		top := result.Stats[0]
		if len(top.AssociatedEvents) > 0 {
			result.Enrichment = s.Enricher.Enrich(ctx, top.Drug, top.AssociatedEvents)
		}
	}

	return result, nil
}

func sentenceResult(extractor *entities.Extractor, sent segment.Sentence, assessment scoring.Assessment) SentenceResult {
	return SentenceResult{
		Index:      sent.Index,
		Text:       sent.Text,
		Section:    sent.Section,
		Drugs:      extractor.DrugNames(sent.Text),
		Events:     extractor.EventNames(sent.Text),
		Assessment: assessment,
	}
}

func topFindings(results []SentenceResult) []Finding {
	related := make([]SentenceResult, 0, len(results))
	for _, r := range results {
		if r.Label == scoring.Related {
			related = append(related, r)
		}
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].Confidence != related[j].Confidence {
			return related[i].Confidence > related[j].Confidence
		}
		return related[i].Index < related[j].Index
	})
	if len(related) > maxTopFindings {
		related = related[:maxTopFindings]
	}
	out := make([]Finding, 0, len(related))
	for _, r := range related {
		text := r.Text
		if runes := []rune(text); len(runes) > findingTextLength {
			text = string(runes[:findingTextLength]) + "…"
		}
		out = append(out, Finding{Index: r.Index, Text: text, Confidence: r.Confidence})
	}
	return out
}

func (s *Service) failAnalysis(ctx context.Context, analysisID, documentID string, err error, startedAt *time.Time) {
	code, retryable := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.UpdateStatusResultAndError(context.Background(), analysisID, StatusFailed, nil, &code, &msg, &retryable, nil, &completedAt); updateErr != nil {
		telemetry.Error("analysis.fail_update", map[string]any{
			"analysis_id": analysisID,
			"error":       updateErr.Error(),
			"original":    msg,
		})
	}
	metrics.IncAnalysisFailed()
	if startedAt != nil {
		metrics.ObserveAnalysisDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"document_id":       documentID,
		"analysis_id":       analysisID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}
