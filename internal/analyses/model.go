package analyses

import (
	"time"

	"causality-backend/internal/enrich"
	"causality-backend/internal/entities"
	"causality-backend/internal/scoring"
)

// Analysis represents a document analysis job.
type Analysis struct {
	ID          string          `json:"id"`
	DocumentID  string          `json:"documentId"`
	Status      string          `json:"status"`
	Threshold   float64         `json:"threshold"`
	MarkerBoost bool            `json:"markerBoost"`
	Preprocess  bool            `json:"preprocess"`
	Result      *DocumentResult `json:"result,omitempty"`
	ErrorCode   string          `json:"errorCode,omitempty"`
	ErrorMsg    string          `json:"errorMessage,omitempty"`
	Retryable   bool            `json:"retryable,omitempty"`
	StartedAt   *time.Time      `json:"startedAt,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SentenceResult is the verdict for one sentence of the document.
type SentenceResult struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Section string   `json:"section"`
	Drugs   []string `json:"drugs,omitempty"`
	Events  []string `json:"events,omitempty"`

	scoring.Assessment
}

// DrugStatistics aggregates the sentences mentioning one drug.
type DrugStatistics struct {
	Drug             string          `json:"drug"`
	TotalMentions    int             `json:"totalMentions"`
	RelatedCount     int             `json:"relatedCount"`
	MaxConfidence    float64         `json:"maxConfidence"`
	AssociatedEvents []string        `json:"associatedEvents,omitempty"`
	SectionCounts    map[string]int  `json:"sectionCounts,omitempty"`
	TopSentence      *SentenceResult `json:"topSentence,omitempty"`
}

// Finding is one related sentence kept for the document-level digest.
type Finding struct {
	Index      int     `json:"index"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// DocumentResult is the complete outcome of an analysis pipeline run.
type DocumentResult struct {
	Sentences      []SentenceResult `json:"sentences"`
	TotalSentences int              `json:"totalSentences"`
	RelatedCount   int              `json:"relatedCount"`

	Drugs  []string         `json:"drugs,omitempty"`
	Events []string         `json:"events,omitempty"`
	Stats  []DrugStatistics `json:"drugStatistics,omitempty"`

	Demographics entities.Demographics      `json:"demographics"`
	Conditions   []string                   `json:"conditions,omitempty"`
	Factors      entities.ContextualFactors `json:"contextualFactors"`
	Enrichment   []enrich.PairSummary       `json:"faersEnrichment,omitempty"`

	// Related is the document verdict: at least one related sentence.
	Related            bool      `json:"related"`
	DocumentConfidence float64   `json:"documentConfidence"`
	TopFindings        []Finding `json:"topFindings,omitempty"`

	// ClassifierAvailable is false when the model sidecar could not be
	// reached and the lexical fallback scored the document instead.
	ClassifierAvailable bool `json:"classifierAvailable"`
}
