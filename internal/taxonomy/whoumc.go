// Package taxonomy maps aggregated causality evidence onto the WHO-UMC and
// Naranjo assessment scales. Every function here is pure and total.
package taxonomy

import "strings"

// WHO-UMC causality categories.
const (
	WHOUMCCertain      = "Certain/Definite"
	WHOUMCProbable     = "Probable/Likely"
	WHOUMCPossible     = "Possible"
	WHOUMCUnlikely     = "Unlikely"
	WHOUMCConditional  = "Conditional/Unclassified"
	WHOUMCUnassessable = "Unassessable/Unclassifiable"
	WHOUMCUnrelated    = "Unrelated"
)

var (
	confirmationMarkers = []string{"demonstrated", "confirmed", "established"}
	associationMarkers  = []string{"associated", "linked", "related", "induced"}
	hedgeMarkers        = []string{"may", "potential", "suggested"}
)

// WHOUMCFromConfidence maps an adjusted confidence plus the supporting
// sentence text onto a WHO-UMC category. The upper tiers require a lexical
// marker in addition to the confidence cutoff, so a high-confidence sentence
// without the keyword deliberately falls through to a lower tier. Checks run
// top to bottom and the first match wins.
func WHOUMCFromConfidence(confidence float64, sentence string) string {
	lower := strings.ToLower(sentence)
	switch {
	case confidence > 0.99 && containsAny(lower, confirmationMarkers):
		return WHOUMCCertain
	case confidence > 0.95 && containsAny(lower, associationMarkers):
		return WHOUMCProbable
	case confidence > 0.80 && containsAny(lower, hedgeMarkers):
		return WHOUMCPossible
	case confidence > 0.60:
		return WHOUMCUnlikely
	case confidence > 0.50:
		return WHOUMCConditional
	default:
		return WHOUMCUnassessable
	}
}

// Evidence holds the discrete clinical flags used by the structured WHO-UMC
// assessment. AlternativeCauses is true when a plausible alternative
// explanation exists, which counts against causality.
type Evidence struct {
	TemporalRelationship bool
	DoseResponse         bool
	AlternativeCauses    bool
	Dechallenge          bool
	Rechallenge          bool
}

// WHOUMCFromEvidence scores the structured assessment: 3 points for temporal
// relationship, 2 for dose response, 2 for absence of alternative causes,
// 1 each for dechallenge and rechallenge. This deliberately does not agree
// with WHOUMCFromConfidence for the same case; the two scales answer
// different questions.
func WHOUMCFromEvidence(ev Evidence) (int, string) {
	score := 0
	if ev.TemporalRelationship {
		score += 3
	}
	if ev.DoseResponse {
		score += 2
	}
	if !ev.AlternativeCauses {
		score += 2
	}
	if ev.Dechallenge {
		score++
	}
	if ev.Rechallenge {
		score++
	}

	switch {
	case score >= 8:
		return score, WHOUMCCertain
	case score >= 6:
		return score, WHOUMCProbable
	case score >= 4:
		return score, WHOUMCPossible
	case score >= 2:
		return score, WHOUMCUnlikely
	default:
		return score, WHOUMCUnrelated
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
