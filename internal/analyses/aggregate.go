package analyses

import (
	"sort"

	"causality-backend/internal/scoring"
)

// Aggregate folds sentence results into per-drug statistics. The fold is
// order-independent: the top sentence for a drug is the one with the highest
// adjusted confidence, with the lowest sentence index breaking ties.
func Aggregate(sentences []SentenceResult) []DrugStatistics {
	byDrug := make(map[string]*DrugStatistics)

	for i := range sentences {
		sent := sentences[i]
		related := sent.Label == scoring.Related
		for _, drug := range sent.Drugs {
			stats, ok := byDrug[drug]
			if !ok {
				stats = &DrugStatistics{Drug: drug, SectionCounts: map[string]int{}}
				byDrug[drug] = stats
			}
			stats.TotalMentions++
			stats.SectionCounts[sent.Section]++
			if !related {
				continue
			}
			stats.RelatedCount++
			if sent.Confidence > stats.MaxConfidence {
				stats.MaxConfidence = sent.Confidence
			}
			stats.AssociatedEvents = mergeEvents(stats.AssociatedEvents, sent.Events)
			if betterTopSentence(stats.TopSentence, sent) {
				top := sent
				stats.TopSentence = &top
			}
		}
	}

	out := make([]DrugStatistics, 0, len(byDrug))
	for _, stats := range byDrug {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RelatedCount != out[j].RelatedCount {
			return out[i].RelatedCount > out[j].RelatedCount
		}
		if out[i].TotalMentions != out[j].TotalMentions {
			return out[i].TotalMentions > out[j].TotalMentions
		}
		return out[i].Drug < out[j].Drug
	})
	return out
}

func betterTopSentence(current *SentenceResult, candidate SentenceResult) bool {
	if current == nil {
		return true
	}
	if candidate.Confidence != current.Confidence {
		return candidate.Confidence > current.Confidence
	}
	return candidate.Index < current.Index
}

func mergeEvents(have, add []string) []string {
	for _, event := range add {
		seen := false
		for _, existing := range have {
			if existing == event {
				seen = true
				break
			}
		}
		if !seen {
			have = append(have, event)
		}
	}
	return have
}
