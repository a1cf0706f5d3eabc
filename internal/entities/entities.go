// Package entities identifies known drug names and adverse-event phrases in
// free text via alias dictionaries and regex patterns. Matching is
// case-insensitive substring matching, not tokenized: aliases that happen to
// be substrings of unrelated words can false-positive, which is an accepted
// limitation of the dictionary approach.
package entities

import (
	"sort"
	"strings"
)

// Extractor matches text against the built-in drug and event dictionaries.
// Safe for concurrent use; the dictionaries are immutable.
type Extractor struct {
	drugs  []Drug
	events []Event
}

// NewExtractor returns an Extractor over the built-in reference dictionaries.
func NewExtractor() *Extractor {
	return &Extractor{drugs: drugDictionary, events: eventDictionary}
}

// Drugs returns the canonical drugs with at least one alias substring match.
// Results are sorted by canonical name.
func (e *Extractor) Drugs(text string) []Drug {
	lower := strings.ToLower(text)
	var out []Drug
	for _, d := range e.drugs {
		for _, alias := range d.Aliases {
			if strings.Contains(lower, alias) {
				out = append(out, d)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DrugNames returns matched canonical drug names plus pattern-matched names
// not covered by the dictionary (suffix families like -mab, -statin).
func (e *Extractor) DrugNames(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range e.Drugs(text) {
		if !seen[d.Name] {
			seen[d.Name] = true
			out = append(out, d.Name)
		}
	}
	for _, re := range drugNamePatterns {
		for _, m := range re.FindAllString(text, -1) {
			name := strings.ToLower(strings.TrimSpace(m))
			if name != "" && !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Events returns the canonical adverse events with at least one alias match.
func (e *Extractor) Events(text string) []Event {
	lower := strings.ToLower(text)
	var out []Event
	for _, ev := range e.events {
		for _, alias := range ev.Aliases {
			if strings.Contains(lower, alias) {
				out = append(out, ev)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// EventNames returns matched canonical event names.
func (e *Extractor) EventNames(text string) []string {
	events := e.Events(text)
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Name)
	}
	return out
}

// DrugFrequencies sums substring occurrences of every alias per canonical
// drug. Overlapping alias counts are not deduplicated.
func (e *Extractor) DrugFrequencies(text string) map[string]int {
	lower := strings.ToLower(text)
	out := make(map[string]int)
	for _, d := range e.drugs {
		count := 0
		for _, alias := range d.Aliases {
			count += strings.Count(lower, alias)
		}
		if count > 0 {
			out[d.Name] = count
		}
	}
	return out
}

// Standardize maps an adverse-event phrase onto its MedDRA preferred term.
// Unknown phrases are returned title-cased.
func Standardize(adr string) string {
	lower := strings.ToLower(strings.TrimSpace(adr))
	for _, ev := range eventDictionary {
		if ev.MedDRATerm == "" {
			continue
		}
		for _, alias := range ev.Aliases {
			if strings.Contains(lower, alias) {
				return ev.MedDRATerm
			}
		}
	}
	return titleCase(adr)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
