package analyses

// Held-out evaluation figures for the deployed classifier checkpoint,
// reported alongside every summary so downstream reviewers can weigh the
// automated verdicts.
const (
	modelF1Score     = 0.9759
	modelAccuracy    = 0.9759
	modelSensitivity = 0.9868
	modelSpecificity = 0.9650
)

// SummaryDrug is the per-drug line of the JSON summary.
type SummaryDrug struct {
	Drug          string  `json:"drug"`
	RelatedCount  int     `json:"related_count"`
	MaxConfidence float64 `json:"max_confidence"`
}

// ModelPerformance carries the classifier evaluation constants.
type ModelPerformance struct {
	F1Score     float64 `json:"f1_score"`
	Accuracy    float64 `json:"accuracy"`
	Sensitivity float64 `json:"sensitivity"`
	Specificity float64 `json:"specificity"`
}

// Summary is the compact JSON digest of a completed analysis.
type Summary struct {
	TotalSentences   int              `json:"total_sentences"`
	TotalDrugs       int              `json:"total_drugs"`
	TotalEvents      int              `json:"total_events"`
	DrugsIdentified  []string         `json:"drugs_identified"`
	EventsIdentified []string         `json:"events_identified"`
	DrugStatistics   []SummaryDrug    `json:"drug_statistics"`
	ModelPerformance ModelPerformance `json:"model_performance"`
}

// Summarize reduces a document result to its JSON summary.
func Summarize(result DocumentResult) Summary {
	drugs := result.Drugs
	if drugs == nil {
		drugs = []string{}
	}
	events := result.Events
	if events == nil {
		events = []string{}
	}

	stats := make([]SummaryDrug, 0, len(result.Stats))
	for _, s := range result.Stats {
		stats = append(stats, SummaryDrug{
			Drug:          s.Drug,
			RelatedCount:  s.RelatedCount,
			MaxConfidence: s.MaxConfidence,
		})
	}

	return Summary{
		TotalSentences:   result.TotalSentences,
		TotalDrugs:       len(drugs),
		TotalEvents:      len(events),
		DrugsIdentified:  drugs,
		EventsIdentified: events,
		DrugStatistics:   stats,
		ModelPerformance: ModelPerformance{
			F1Score:     modelF1Score,
			Accuracy:    modelAccuracy,
			Sensitivity: modelSensitivity,
			Specificity: modelSpecificity,
		},
	}
}
