package analyses

import (
	"sort"
	"strings"
	"time"

	"causality-backend/internal/reports"
	"causality-backend/internal/scoring"
)

// DrugCaseFor slices a document result down to one drug for report
// rendering. An empty drug selects the top-ranked drug. The second return
// is false when the named drug does not appear in the result.
func DrugCaseFor(result DocumentResult, drug, source string, date time.Time) (reports.DrugCase, bool) {
	c := reports.DrugCase{
		Source:              source,
		Date:                date,
		TotalSentences:      result.TotalSentences,
		Demographics:        result.Demographics,
		Conditions:          result.Conditions,
		Factors:             result.Factors,
		ClassifierAvailable: result.ClassifierAvailable,
	}

	var stats *DrugStatistics
	if drug == "" {
		if len(result.Stats) > 0 {
			stats = &result.Stats[0]
		}
	} else {
		want := strings.ToLower(drug)
		for i := range result.Stats {
			if strings.ToLower(result.Stats[i].Drug) == want {
				stats = &result.Stats[i]
				break
			}
		}
		if stats == nil {
			return reports.DrugCase{}, false
		}
	}
	if stats == nil {
		// No drugs identified: report renders the no-drug sections.
		c.Events = result.Events
		return c, true
	}

	c.Drug = stats.Drug
	c.TotalSentences = stats.TotalMentions
	c.RelatedCount = stats.RelatedCount
	c.MaxConfidence = stats.MaxConfidence
	c.Events = stats.AssociatedEvents

	markerSet := map[string]bool{}
	for _, sent := range result.Sentences {
		if !mentionsDrug(sent, stats.Drug) || sent.Label != scoring.Related {
			continue
		}
		c.Findings = append(c.Findings, reports.Finding{Text: sent.Text, Confidence: sent.Confidence})
		for _, m := range sent.Markers {
			if !markerSet[m] {
				markerSet[m] = true
				c.Markers = append(c.Markers, m)
			}
		}
	}
	sort.SliceStable(c.Findings, func(i, j int) bool {
		return c.Findings[i].Confidence > c.Findings[j].Confidence
	})

	return c, true
}

func mentionsDrug(sent SentenceResult, drug string) bool {
	for _, d := range sent.Drugs {
		if d == drug {
			return true
		}
	}
	return false
}
