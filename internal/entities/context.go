package entities

import (
	"regexp"
	"strings"
)

// Demographics holds coarse patient fields pulled from free text.
type Demographics struct {
	Age    string `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// ContextMatch is one regex hit with surrounding text kept for traceability.
type ContextMatch struct {
	Match   string `json:"match"`
	Context string `json:"context"`
}

// ContextualFactors groups the per-category matches used by the company
// comment and confounder sections. Duplicates across patterns are expected
// and are not merged here.
type ContextualFactors struct {
	ConcomitantMedications []ContextMatch `json:"concomitantMedications"`
	TimeToOnset            []ContextMatch `json:"timeToOnset"`
	ConcurrentConditions   []ContextMatch `json:"concurrentConditions"`
	DoseInformation        []ContextMatch `json:"doseInformation"`
	DechallengeRechallenge []ContextMatch `json:"dechallengeRechallenge"`
	PatientDemographics    []ContextMatch `json:"patientDemographics"`
	ClinicalOutcomes       []ContextMatch `json:"clinicalOutcomes"`
	MechanismInformation   []ContextMatch `json:"mechanismInformation"`
	ConfoundingFactors     []ContextMatch `json:"confoundingFactors"`
}

const contextWindow = 100

var (
	agePattern    = regexp.MustCompile(`(?i)(\d{1,3})[\s-]*(?:year|yo|y\.o\.)`)
	genderPattern = regexp.MustCompile(`(?i)\b(male|female|man|woman)\b`)
)

var contextualPatterns = map[string][]*regexp.Regexp{
	"concomitant": {
		regexp.MustCompile(`(?i)(?:concomitant|concurrent|co-administered|combination with|along with|together with)\s+(?:medication|drug|therapy|treatment)`),
		regexp.MustCompile(`(?i)(?:plus|combined with|in combination with)\s+([A-Za-z]+)`),
	},
	"onset": {
		regexp.MustCompile(`(?i)(?:after|within|following)\s+(\d+\s*(?:day|week|month|year|hour)s?)`),
		regexp.MustCompile(`(?i)(?:latency|onset)\s+(?:period|time)?\s*(?:of|was)?\s*(\d+\s*(?:day|week|month|year)s?)`),
		regexp.MustCompile(`(?i)(\d+\s*(?:day|week|month|year)s?)\s+(?:after|following|post)\s+(?:initiation|administration|treatment)`),
	},
	"conditions": {
		regexp.MustCompile(`(?i)(?:underlying|pre-existing|concurrent|comorbid)\s+(?:condition|disease|disorder)`),
		regexp.MustCompile(`(?i)(?:history of|diagnosed with|suffering from)\s+([a-z\s]+(?:disease|disorder|syndrome|condition))`),
	},
	"dose": {
		regexp.MustCompile(`(?i)(\d+\s*(?:mg|g|mcg|IU|units?)(?:/(?:day|kg|m2))?)`),
		regexp.MustCompile(`(?i)(?:dose|dosage|administered)\s+(?:of|was)?\s*(\d+\s*(?:mg|g|mcg))`),
	},
	"dechallenge": {
		regexp.MustCompile(`(?i)(?:discontinu|withdraw|stopp|ceas)(?:ed|ing|ation)`),
		regexp.MustCompile(`(?i)(?:rechallenge|reintroduc|readministr)(?:ed|ing|tion)`),
	},
	"demographics": {
		regexp.MustCompile(`(?i)(\d+)[\s-]year[\s-]old`),
		regexp.MustCompile(`(?i)\b(?:male|female|man|woman)\b`),
		regexp.MustCompile(`(?i)\b(?:elderly|pediatric|geriatric|adult)\b`),
	},
	"outcomes": {
		regexp.MustCompile(`(?i)\b(?:recovered|resolved|improved|worsened|fatal|death)\b`),
		regexp.MustCompile(`(?i)(?:hospitalization|hospital admission|emergency)`),
	},
	"mechanism": {
		regexp.MustCompile(`(?i)\b(?:mechanism|pathophysiology|etiology)\b`),
		regexp.MustCompile(`(?i)(?:pharmacological|biological|physiological)\s+(?:mechanism|basis|explanation)`),
	},
}

var confoundingKeywords = []string{
	"confound", "bias", "alternative explanation", "other cause",
	"may be due to", "possibly related to", "could be attributed to",
	"uncertain", "unclear", "unknown etiology",
}

// ExtractDemographics finds the first age and gender expression in text.
func ExtractDemographics(text string) Demographics {
	var d Demographics
	if m := agePattern.FindStringSubmatch(text); m != nil {
		d.Age = m[1]
	}
	if m := genderPattern.FindStringSubmatch(text); m != nil {
		d.Gender = titleCase(m[1])
	}
	return d
}

// ExtractConditions returns comorbidity keywords present in the text,
// title-cased, in the fixed dictionary order.
func ExtractConditions(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, kw := range comorbidityKeywords {
		if strings.Contains(lower, kw) {
			out = append(out, titleCase(kw))
		}
	}
	return out
}

// ExtractContextualFactors runs every contextual pattern against the text and
// records each match with a ±100 character window.
func ExtractContextualFactors(text string) ContextualFactors {
	var f ContextualFactors
	f.ConcomitantMedications = matchAll(text, contextualPatterns["concomitant"])
	f.TimeToOnset = matchAll(text, contextualPatterns["onset"])
	f.ConcurrentConditions = matchAll(text, contextualPatterns["conditions"])
	f.DoseInformation = matchAll(text, contextualPatterns["dose"])
	f.DechallengeRechallenge = matchAll(text, contextualPatterns["dechallenge"])
	f.PatientDemographics = matchAll(text, contextualPatterns["demographics"])
	f.ClinicalOutcomes = matchAll(text, contextualPatterns["outcomes"])
	f.MechanismInformation = matchAll(text, contextualPatterns["mechanism"])

	lower := strings.ToLower(text)
	for _, kw := range confoundingKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		f.ConfoundingFactors = append(f.ConfoundingFactors, ContextMatch{
			Match:   kw,
			Context: window(text, idx, idx+len(kw)),
		})
	}
	return f
}

func matchAll(text string, patterns []*regexp.Regexp) []ContextMatch {
	var out []ContextMatch
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, ContextMatch{
				Match:   text[loc[0]:loc[1]],
				Context: window(text, loc[0], loc[1]),
			})
		}
	}
	return out
}

func window(text string, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	return strings.TrimSpace(text[lo:hi])
}
