package scoring

import "strings"

// markerVocabulary lists the explicit causality markers, checked in this
// order against the lowercased original text.
var markerVocabulary = []string{
	"secondary to",
	"caused by",
	"induced by",
	"due to",
	"following",
	"after taking",
	"side effect",
	"adverse effect",
	"adverse event",
	"adr",
	"related to",
	"associated with",
	"untoward effect",
	"drug toxicity",
	"drug-induced",
	"iatrogenic",
}

// DetectMarkers returns the causality markers present in text, in vocabulary
// order. Detection always runs on the raw text, never the normalized form,
// so the boost reflects what the author actually wrote.
func DetectMarkers(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, m := range markerVocabulary {
		if strings.Contains(lower, m) {
			found = append(found, m)
		}
	}
	return found
}
