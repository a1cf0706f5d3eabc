package reports

import (
	"fmt"
	"strings"
	"time"

	"causality-backend/internal/entities"
)

// Finding is one sentence judged related, with its adjusted confidence.
type Finding struct {
	Text       string
	Confidence float64
}

// DrugCase is the single-drug slice of an analysis that every report format
// consumes. A zero Drug means no drug was identified in the document.
type DrugCase struct {
	Drug           string
	Source         string
	Date           time.Time
	TotalSentences int
	RelatedCount   int
	MaxConfidence  float64
	Events         []string
	Findings       []Finding
	Markers        []string
	Demographics   entities.Demographics
	Conditions     []string
	Factors        entities.ContextualFactors

	// ClassifierAvailable is false when the model could not be reached and
	// the reports must fall back to manual-assessment language.
	ClassifierAvailable bool
}

// Overall company assessment buckets, decided by the share of related
// sentences among all sentences mentioning the drug.
const (
	assessRelated    = "related"
	assessPossibly   = "possibly related"
	assessUnlikely   = "unlikely related"
	assessNotRelated = "not related"
)

func (c DrugCase) overallAssessment() string {
	if c.RelatedCount == 0 || c.TotalSentences == 0 {
		return assessNotRelated
	}
	ratio := float64(c.RelatedCount) / float64(c.TotalSentences)
	switch {
	case ratio > 0.7:
		return assessRelated
	case ratio > 0.4:
		return assessPossibly
	default:
		return assessUnlikely
	}
}

func (c DrugCase) drugLabel() string {
	if c.Drug == "" {
		return "Not identified in document"
	}
	return titleWords(c.Drug)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func uniqueMatches(matches []entities.ContextMatch, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range matches {
		if seen[m.Match] {
			continue
		}
		seen[m.Match] = true
		out = append(out, m.Match)
		if len(out) == limit {
			break
		}
	}
	return out
}
